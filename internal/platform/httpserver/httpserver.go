package httpserver

import (
	"net/http"
	"time"
)

// Audit submissions carry up to fifty extracted documents per request, so the
// read and write windows are sized for a full document set rather than the
// usual small-JSON API call.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// New builds the HTTP server that fronts the audit API.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
