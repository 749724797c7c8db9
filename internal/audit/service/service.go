// Package service orchestrates one audit unit end to end: validate the
// document set, detect inconsistencies, build the golden record, score the
// risk, and persist the combined result.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docaudit/internal/audit/detect"
	"docaudit/internal/audit/golden"
	"docaudit/internal/audit/metrics"
	"docaudit/internal/audit/models"
	"docaudit/internal/audit/risk"
	"docaudit/internal/audit/store"
	dErrors "docaudit/pkg/domainerrors"
)

// Service runs audit units. The pipeline itself is pure; the service adds
// persistence, metrics, and logging around it.
type Service struct {
	detector *detect.Detector
	store    store.Store
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(st store.Store, detector *detect.Detector, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("result store is required")
	}
	if detector == nil {
		return nil, fmt.Errorf("detector is required")
	}
	s := &Service{store: st, detector: detector, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run audits one document set. The returned result is a pure function of the
// input set; auditID only names the stored record.
func (s *Service) Run(ctx context.Context, auditID string, docs []models.DocumentRecord) (*models.AuditResult, error) {
	start := time.Now()

	prepared := prepare(docs)
	if !hasIdentifyingField(prepared) {
		if s.metrics != nil {
			s.metrics.IncrementInsufficientData()
		}
		return nil, dErrors.New(dErrors.CodeInsufficientData,
			"no document carries an identifying field; nothing to compare")
	}

	inconsistencies := s.detector.Detect(ctx, prepared)
	goldenRecord := golden.Build(prepared)
	assessment := risk.Assess(inconsistencies, prepared)

	result := &models.AuditResult{
		AuditID:         auditID,
		DocumentCount:   len(prepared),
		Inconsistencies: inconsistencies,
		GoldenRecord:    goldenRecord,
		RiskAssessment:  assessment,
	}

	if err := s.store.Put(ctx, *result); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "persist audit result", err)
	}

	if s.metrics != nil {
		severities := make([]string, len(inconsistencies))
		for i, inc := range inconsistencies {
			severities[i] = string(inc.Severity)
		}
		s.metrics.ObserveAudit(severities, string(assessment.Level))
	}

	s.logger.InfoContext(ctx, "audit completed",
		"auditId", auditID,
		"documents", len(prepared),
		"inconsistencies", len(inconsistencies),
		"riskScore", assessment.Score,
		"riskLevel", assessment.Level,
		"duration", time.Since(start),
	)
	return result, nil
}

// Get fetches a stored audit result.
func (s *Service) Get(ctx context.Context, auditID string) (*models.AuditResult, error) {
	result, err := s.store.Get(ctx, auditID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, dErrors.New(dErrors.CodeNotFound, "audit not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "load audit result", err)
	}
	return result, nil
}

// prepare copies the caller's documents and restores the derived invariants:
// reliability rank follows the document type, and the manual-review flag
// follows the confidence threshold regardless of what the caller sent.
func prepare(docs []models.DocumentRecord) []models.DocumentRecord {
	prepared := make([]models.DocumentRecord, len(docs))
	for i, doc := range docs {
		out := doc
		out.ReliabilityRank = doc.DocumentType.ReliabilityRank()
		out.Fields = make(map[string]models.ExtractedField, len(doc.Fields))
		for field, extracted := range doc.Fields {
			out.Fields[field] = models.NewExtractedField(extracted.Value, extracted.Confidence)
		}
		prepared[i] = out
	}
	return prepared
}

// hasIdentifyingField reports whether any document carries a field that can
// anchor the audit. Without one there is nothing to compare, which is a
// distinct outcome from a clean zero-risk audit.
func hasIdentifyingField(docs []models.DocumentRecord) bool {
	for _, doc := range docs {
		for field, extracted := range doc.Fields {
			if extracted.Value != nil && models.IsIdentifying(field) {
				return true
			}
		}
	}
	return false
}
