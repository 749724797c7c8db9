// Package risk aggregates detected inconsistencies and extraction-quality
// signals into a bounded, explainable score. The computation is strictly
// additive with a single final clamp, so adding any inconsistency or quality
// signal can never lower the score.
package risk

import (
	"fmt"
	"sort"

	"docaudit/internal/audit/models"
)

// Factor type labels recorded on risk factors.
const (
	FactorInconsistency = "INCONSISTENCY"
	FactorLowConfidence = "LOW_CONFIDENCE"
	FactorPoorQuality   = "POOR_DOCUMENT_QUALITY"
)

// Quality signal point values.
const (
	pointsLowConfidenceField = 10
	pointsIllegibleDocument  = 5
	maxScore                 = 100
)

// Assess scores one audit unit from its inconsistency list and per-document
// quality signals. Factors are recorded in processing order: inconsistencies
// first (already severity-ordered by the detector), then low-confidence
// fields, then illegible documents.
func Assess(inconsistencies []models.Inconsistency, docs []models.DocumentRecord) models.RiskAssessment {
	score := 0
	factors := []models.RiskFactor{}

	for _, inc := range inconsistencies {
		points := models.PointsFor(models.CategoryOf(inc.Field), inc.Severity)
		if points == 0 {
			// Informational findings (dates, free text) carry no score weight.
			continue
		}
		score += points
		factors = append(factors, models.RiskFactor{
			Factor:      FactorInconsistency,
			Points:      points,
			Description: fmt.Sprintf("%d pts: %s", points, inc.Description),
		})
	}

	for _, doc := range orderedDocs(docs) {
		for _, field := range orderedFields(doc) {
			extracted := doc.Fields[field]
			if extracted.Confidence >= models.ConfidenceThreshold {
				continue
			}
			score += pointsLowConfidenceField
			factors = append(factors, models.RiskFactor{
				Factor: FactorLowConfidence,
				Points: pointsLowConfidenceField,
				Description: fmt.Sprintf("%d pts: Low extraction confidence (%.2f) for %s on document %s",
					pointsLowConfidenceField, extracted.Confidence, field, doc.DocumentID),
			})
		}
	}

	for _, doc := range orderedDocs(docs) {
		if !doc.HasIllegiblePages {
			continue
		}
		score += pointsIllegibleDocument
		factors = append(factors, models.RiskFactor{
			Factor: FactorPoorQuality,
			Points: pointsIllegibleDocument,
			Description: fmt.Sprintf("%d pts: Document %s has illegible pages",
				pointsIllegibleDocument, doc.DocumentID),
		})
	}

	if score > maxScore {
		score = maxScore
	}

	return models.RiskAssessment{
		Score:   score,
		Level:   LevelFor(score),
		Factors: factors,
	}
}

// LevelFor maps a clamped score to its discrete risk level.
func LevelFor(score int) models.RiskLevel {
	switch {
	case score < 25:
		return models.RiskLow
	case score < 50:
		return models.RiskMedium
	case score < 80:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}

func orderedDocs(docs []models.DocumentRecord) []models.DocumentRecord {
	ordered := make([]models.DocumentRecord, len(docs))
	copy(ordered, docs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].DocumentID < ordered[j].DocumentID
	})
	return ordered
}

func orderedFields(doc models.DocumentRecord) []string {
	fields := make([]string, 0, len(doc.Fields))
	for field := range doc.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
