package risk

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"docaudit/internal/audit/models"
)

// =============================================================================
// Risk Scorer Test Suite
// =============================================================================
// Justification for unit tests: the scorer's point table, clamping, level
// breakpoints, and monotonicity are contract-level guarantees consumed by
// downstream reporting.

type RiskSuite struct {
	suite.Suite
}

func TestRiskSuite(t *testing.T) {
	suite.Run(t, new(RiskSuite))
}

func inc(field string, severity models.Severity) models.Inconsistency {
	return models.Inconsistency{
		Field:       field,
		Severity:    severity,
		Description: field + " mismatch",
	}
}

// =============================================================================
// Point Allocation
// =============================================================================

func (s *RiskSuite) TestPointAllocation() {
	s.Run("name mismatch contributes 15 points", func() {
		got := Assess([]models.Inconsistency{inc("name", models.SeverityHigh)}, nil)
		s.Equal(15, got.Score)
		s.Require().Len(got.Factors, 1)
		s.Equal(FactorInconsistency, got.Factors[0].Factor)
		s.Equal(15, got.Factors[0].Points)
	})

	s.Run("identifier mismatch contributes 30 points", func() {
		got := Assess([]models.Inconsistency{inc("ssn", models.SeverityCritical)}, nil)
		s.Equal(30, got.Score)
	})

	s.Run("address mismatch contributes 20 points", func() {
		got := Assess([]models.Inconsistency{inc("address", models.SeverityHigh)}, nil)
		s.Equal(20, got.Score)
	})

	s.Run("monetary bands map to 15 and 25 points", func() {
		high := Assess([]models.Inconsistency{inc("income", models.SeverityHigh)}, nil)
		s.Equal(15, high.Score)
		critical := Assess([]models.Inconsistency{inc("income", models.SeverityCritical)}, nil)
		s.Equal(25, critical.Score)
	})

	s.Run("informational findings carry no points and no factor", func() {
		got := Assess([]models.Inconsistency{inc("issueDate", models.SeverityLow)}, nil)
		s.Equal(0, got.Score)
		s.Empty(got.Factors)
	})
}

// =============================================================================
// Quality Signals
// =============================================================================

func (s *RiskSuite) TestQualitySignals() {
	s.Run("ten points per low-confidence field", func() {
		docs := []models.DocumentRecord{{
			DocumentID:   "a",
			DocumentType: models.DocTypeTaxFiling,
			Fields: map[string]models.ExtractedField{
				"ssn":   models.NewExtractedField("123-45-6789", 0.75),
				"wages": models.NewExtractedField(75000.0, 0.60),
			},
		}}
		got := Assess(nil, docs)
		s.Equal(20, got.Score)
		s.Len(got.Factors, 2)
		for _, f := range got.Factors {
			s.Equal(FactorLowConfidence, f.Factor)
		}
	})

	s.Run("five points per illegible document", func() {
		docs := []models.DocumentRecord{
			{DocumentID: "a", HasIllegiblePages: true},
			{DocumentID: "b", HasIllegiblePages: true},
			{DocumentID: "c"},
		}
		got := Assess(nil, docs)
		s.Equal(10, got.Score)
	})

	s.Run("factors appear in processing order", func() {
		docs := []models.DocumentRecord{{
			DocumentID:        "a",
			HasIllegiblePages: true,
			Fields: map[string]models.ExtractedField{
				"ssn": models.NewExtractedField("123-45-6789", 0.5),
			},
		}}
		got := Assess([]models.Inconsistency{inc("name", models.SeverityHigh)}, docs)
		s.Require().Len(got.Factors, 3)
		s.Equal(FactorInconsistency, got.Factors[0].Factor)
		s.Equal(FactorLowConfidence, got.Factors[1].Factor)
		s.Equal(FactorPoorQuality, got.Factors[2].Factor)
		s.Equal(30, got.Score)
	})
}

// =============================================================================
// Clamping and Levels
// =============================================================================

func (s *RiskSuite) TestClampAndLevels() {
	s.Run("score is clamped to 100", func() {
		var many []models.Inconsistency
		for range 10 {
			many = append(many, inc("ssn", models.SeverityCritical))
		}
		got := Assess(many, nil)
		s.Equal(100, got.Score)
		s.Equal(models.RiskCritical, got.Level)
	})

	s.Run("level breakpoints", func() {
		s.Equal(models.RiskLow, LevelFor(0))
		s.Equal(models.RiskLow, LevelFor(24))
		s.Equal(models.RiskMedium, LevelFor(25))
		s.Equal(models.RiskMedium, LevelFor(49))
		s.Equal(models.RiskHigh, LevelFor(50))
		s.Equal(models.RiskHigh, LevelFor(79))
		s.Equal(models.RiskCritical, LevelFor(80))
		s.Equal(models.RiskCritical, LevelFor(100))
	})
}

// =============================================================================
// Monotonicity Property
// =============================================================================

func (s *RiskSuite) TestMonotonicity() {
	base := []models.Inconsistency{
		inc("name", models.SeverityHigh),
		inc("issueDate", models.SeverityLow),
	}
	additions := []models.Inconsistency{
		inc("address", models.SeverityHigh),
		inc("ssn", models.SeverityCritical),
		inc("income", models.SeverityCritical),
		inc("income", models.SeverityHigh),
	}

	prev := Assess(base, nil).Score
	grown := base
	for _, extra := range additions {
		grown = append(grown, extra)
		next := Assess(grown, nil).Score
		s.GreaterOrEqual(next, prev)
		s.GreaterOrEqual(next, 0)
		s.LessOrEqual(next, 100)
		prev = next
	}

	s.Run("quality signals never lower the score", func() {
		without := Assess(base, nil).Score
		with := Assess(base, []models.DocumentRecord{{DocumentID: "a", HasIllegiblePages: true}}).Score
		s.GreaterOrEqual(with, without)
	})
}
