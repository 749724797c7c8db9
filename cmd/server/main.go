package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/lib/pq"

	"docaudit/internal/audit/compare"
	"docaudit/internal/audit/detect"
	"docaudit/internal/audit/handler"
	auditmetrics "docaudit/internal/audit/metrics"
	"docaudit/internal/audit/service"
	"docaudit/internal/audit/store"
	memorystore "docaudit/internal/audit/store/memory"
	postgresstore "docaudit/internal/audit/store/postgres"
	"docaudit/internal/oracle"
	oraclemetrics "docaudit/internal/oracle/metrics"
	"docaudit/internal/oracle/oraclecache"
	"docaudit/internal/oracle/oraclehttp"
	"docaudit/internal/platform/config"
	"docaudit/internal/platform/httpserver"
	"docaudit/internal/platform/logger"
	platformredis "docaudit/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Audit logic lives in the internal audit packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	resultStore, closeStore, err := buildStore(cfg, log)
	if err != nil {
		log.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	semOracle, err := buildOracle(cfg, redisClient, log)
	if err != nil {
		log.Error("oracle setup failed", "error", err)
		os.Exit(1)
	}

	comparatorOpts := []compare.Option{compare.WithLogger(log)}
	if semOracle != nil {
		comparatorOpts = append(comparatorOpts, compare.WithOracle(semOracle))
	}
	comparator := compare.New(comparatorOpts...)

	detector, err := detect.New(comparator, detect.WithLogger(log))
	if err != nil {
		log.Error("detector setup failed", "error", err)
		os.Exit(1)
	}

	m := auditmetrics.New(prometheus.DefaultRegisterer)
	svc, err := service.New(resultStore, detector, service.WithLogger(log), service.WithMetrics(m))
	if err != nil {
		log.Error("service setup failed", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	handler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "verdict cache unhealthy", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting docaudit", "addr", cfg.Addr,
		"oracle", cfg.Oracle.URL != "", "redis", redisClient != nil, "postgres", cfg.PostgresDSN != "")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildStore selects the PostgreSQL store when a DSN is configured, falling
// back to the in-memory store otherwise.
func buildStore(cfg config.Config, log *slog.Logger) (store.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		log.Info("no postgres DSN configured, using in-memory result store")
		return memorystore.New(), func() {}, nil
	}
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgresstore.New(db), func() { db.Close() }, nil
}

// buildOracle assembles the semantic-equivalence oracle: HTTP client,
// wrapped in the Redis verdict cache when Redis is available. Returns nil
// when no oracle is configured; the comparator then runs fully local.
func buildOracle(cfg config.Config, redisClient *platformredis.Client, log *slog.Logger) (oracle.Oracle, error) {
	if cfg.Oracle.URL == "" {
		log.Info("no semantic oracle configured, comparisons run local-only")
		return nil, nil
	}
	om := oraclemetrics.New(prometheus.DefaultRegisterer)
	client, err := oraclehttp.New(cfg.Oracle.URL, cfg.Oracle.Timeout, oraclehttp.WithMetrics(om))
	if err != nil {
		return nil, err
	}
	if redisClient == nil {
		return client, nil
	}
	cached, err := oraclecache.New(client, oraclecache.NewRedisBackend(redisClient),
		cfg.Redis.VerdictTTL, oraclecache.WithLogger(log), oraclecache.WithMetrics(om))
	if err != nil {
		return nil, err
	}
	return cached, nil
}
