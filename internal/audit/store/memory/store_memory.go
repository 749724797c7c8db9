// Package memory is the in-memory result store used in tests and for
// single-process deployments without PostgreSQL configured.
package memory

import (
	"context"
	"sync"

	"docaudit/internal/audit/models"
	"docaudit/internal/audit/store"
)

// Store keeps audit results in a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	results map[string]models.AuditResult
}

func New() *Store {
	return &Store{results: make(map[string]models.AuditResult)}
}

func (s *Store) Put(_ context.Context, result models.AuditResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.AuditID] = result
	return nil
}

func (s *Store) Get(_ context.Context, auditID string) (*models.AuditResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[auditID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &result, nil
}
