// Package store defines persistence for completed audit results. Stores are
// pure I/O; all audit logic lives in the pipeline packages.
package store

import (
	"context"
	"errors"

	"docaudit/internal/audit/models"
)

// ErrNotFound is returned by Get when no result exists for the audit ID.
var ErrNotFound = errors.New("audit result not found")

// Store persists audit results keyed by audit ID.
type Store interface {
	Put(ctx context.Context, result models.AuditResult) error
	Get(ctx context.Context, auditID string) (*models.AuditResult, error)
}
