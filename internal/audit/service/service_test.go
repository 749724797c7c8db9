package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"docaudit/internal/audit/compare"
	"docaudit/internal/audit/detect"
	"docaudit/internal/audit/models"
	memorystore "docaudit/internal/audit/store/memory"
	dErrors "docaudit/pkg/domainerrors"
)

// =============================================================================
// Audit Service Test Suite
// =============================================================================
// Justification for unit tests: the service owns the insufficient-data
// contract, the ingest invariants (derived rank and review flag), and the
// end-to-end idempotence guarantee.

type ServiceSuite struct {
	suite.Suite
	store   *memorystore.Store
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memorystore.New()
	detector, err := detect.New(compare.New())
	s.Require().NoError(err)
	s.service, err = New(s.store, detector)
	s.Require().NoError(err)
}

func doc(id string, docType models.DocumentType, fields map[string]any) models.DocumentRecord {
	extracted := make(map[string]models.ExtractedField, len(fields))
	for name, value := range fields {
		extracted[name] = models.ExtractedField{Value: value, Confidence: 0.95}
	}
	return models.DocumentRecord{DocumentID: id, DocumentType: docType, Fields: extracted}
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *ServiceSuite) TestNew() {
	detector, err := detect.New(compare.New())
	s.Require().NoError(err)

	s.Run("nil store returns error", func() {
		_, err := New(nil, detector)
		s.Error(err)
		s.Contains(err.Error(), "store is required")
	})

	s.Run("nil detector returns error", func() {
		_, err := New(s.store, nil)
		s.Error(err)
		s.Contains(err.Error(), "detector is required")
	})
}

// =============================================================================
// Run Tests
// =============================================================================

func (s *ServiceSuite) TestRun() {
	ctx := context.Background()

	s.Run("clean document set scores zero and persists", func() {
		docs := []models.DocumentRecord{
			doc("gov", models.DocTypeGovernmentId, map[string]any{"ssn": "123-45-6789", "applicantName": "John Doe"}),
			doc("tax", models.DocTypeTaxFiling, map[string]any{"ssn": "123 45 6789", "applicantName": "Jon Doe"}),
		}
		result, err := s.service.Run(ctx, "audit-1", docs)
		s.Require().NoError(err)
		s.Empty(result.Inconsistencies)
		s.Equal(0, result.RiskAssessment.Score)
		s.Equal(models.RiskLow, result.RiskAssessment.Level)
		s.Equal(2, result.DocumentCount)

		stored, err := s.store.Get(ctx, "audit-1")
		s.Require().NoError(err)
		s.Equal(result, stored)
	})

	s.Run("mismatches flow into the score", func() {
		docs := []models.DocumentRecord{
			doc("gov", models.DocTypeGovernmentId, map[string]any{"ssn": "123-45-6789"}),
			doc("tax", models.DocTypeTaxFiling, map[string]any{"ssn": "123-45-6780"}),
		}
		result, err := s.service.Run(ctx, "audit-2", docs)
		s.Require().NoError(err)
		s.Require().Len(result.Inconsistencies, 1)
		s.Equal(models.SeverityCritical, result.Inconsistencies[0].Severity)
		s.Equal(30, result.RiskAssessment.Score)
		s.Equal(models.RiskMedium, result.RiskAssessment.Level)
	})

	s.Run("ingest restores derived invariants", func() {
		docs := []models.DocumentRecord{{
			DocumentID:      "gov",
			DocumentType:    models.DocTypeGovernmentId,
			ReliabilityRank: 99, // caller-supplied garbage
			Fields: map[string]models.ExtractedField{
				// Caller claims no review needed despite low confidence.
				"applicantName": {Value: "John Doe", Confidence: 0.5, RequiresManualReview: false},
			},
		}}
		result, err := s.service.Run(ctx, "audit-3", docs)
		s.Require().NoError(err)
		// The low-confidence field is scored even though the caller lied.
		s.Equal(10, result.RiskAssessment.Score)
	})

	s.Run("insufficient data is distinct from a clean result", func() {
		docs := []models.DocumentRecord{
			doc("bank", models.DocTypeFinancialStatement, map[string]any{"endingBalance": 1042.55}),
		}
		_, err := s.service.Run(ctx, "audit-4", docs)
		s.Require().Error(err)
		s.Equal(dErrors.CodeInsufficientData, dErrors.CodeOf(err))

		_, err = s.store.Get(ctx, "audit-4")
		s.Error(err, "rejected audits are not persisted")
	})

	s.Run("empty document set is insufficient data", func() {
		_, err := s.service.Run(ctx, "audit-5", nil)
		s.Require().Error(err)
		s.Equal(dErrors.CodeInsufficientData, dErrors.CodeOf(err))
	})
}

// =============================================================================
// Get Tests
// =============================================================================

func (s *ServiceSuite) TestGet() {
	ctx := context.Background()

	s.Run("unknown audit maps to not found", func() {
		_, err := s.service.Get(ctx, "missing")
		s.Require().Error(err)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

// =============================================================================
// Idempotence Property
// =============================================================================

func (s *ServiceSuite) TestIdempotence() {
	ctx := context.Background()
	docs := []models.DocumentRecord{
		doc("gov", models.DocTypeGovernmentId, map[string]any{
			"ssn":           "123-45-6789",
			"applicantName": "John Doe",
			"address":       "123 Main St, Springfield, IL 62704",
		}),
		doc("tax", models.DocTypeTaxFiling, map[string]any{
			"ssn":           "123-45-6780",
			"applicantName": "Jonathan Doesmith",
			"agi":           82000.0,
		}),
		doc("w2", models.DocTypeIncomeStatement, map[string]any{
			"wages": 75000.0,
		}),
	}

	first, err := s.service.Run(ctx, "audit-idem", docs)
	s.Require().NoError(err)

	firstJSON, err := json.Marshal(first)
	s.Require().NoError(err)

	for range 5 {
		again, err := s.service.Run(ctx, "audit-idem", docs)
		s.Require().NoError(err)

		againJSON, err := json.Marshal(again)
		s.Require().NoError(err)
		s.Equal(string(firstJSON), string(againJSON))
	}
}
