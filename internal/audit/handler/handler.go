package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"docaudit/internal/audit/models"
	"docaudit/pkg/httputil"
)

// Service defines the interface for audit operations.
type Service interface {
	Run(ctx context.Context, auditID string, docs []models.DocumentRecord) (*models.AuditResult, error)
	Get(ctx context.Context, auditID string) (*models.AuditResult, error)
}

// Handler wires audit endpoints to the audit service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an audit handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/audits", h.HandleRunAudit)
	r.Get("/v1/audits/{auditID}", h.HandleGetAudit)
}

// HandleRunAudit handles POST /v1/audits requests.
func (h *Handler) HandleRunAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[AuditRequest](w, r, h.logger, ctx)
	if !ok {
		return
	}

	auditID := req.AuditID
	if auditID == "" {
		auditID = uuid.NewString()
	}

	result, err := h.service.Run(ctx, auditID, req.DocumentRecords())
	if err != nil {
		h.logger.WarnContext(ctx, "audit run failed", "auditId", auditID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

// HandleGetAudit handles GET /v1/audits/{auditID} requests.
func (h *Handler) HandleGetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.Get(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
