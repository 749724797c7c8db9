// Package postgres persists audit results in PostgreSQL. The result payload
// is stored as JSONB in the exact external shape, so reporting queries can
// index into it without a second mapping layer.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"docaudit/internal/audit/models"
	"docaudit/internal/audit/store"
)

// Store is the PostgreSQL-backed result store. Pure I/O.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema is the table this store expects. Applied by deployment migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_results (
	audit_id   TEXT PRIMARY KEY,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (s *Store) Put(ctx context.Context, result models.AuditResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode audit result: %w", err)
	}
	query := `
		INSERT INTO audit_results (audit_id, result)
		VALUES ($1, $2)
		ON CONFLICT (audit_id) DO UPDATE SET result = EXCLUDED.result
	`
	if _, err := s.db.ExecContext(ctx, query, result.AuditID, payload); err != nil {
		return fmt.Errorf("put audit result: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, auditID string) (*models.AuditResult, error) {
	var payload []byte
	query := `SELECT result FROM audit_results WHERE audit_id = $1`
	if err := s.db.QueryRowContext(ctx, query, auditID).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get audit result: %w", err)
	}
	var result models.AuditResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode audit result: %w", err)
	}
	return &result, nil
}
