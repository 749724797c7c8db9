// Package models holds the audit domain types and the literal lookup tables
// (reliability hierarchy, severity weights, scoring points) the pipeline
// depends on. Keeping the tables here, as plain data, makes the determinism
// and monotonicity guarantees mechanically checkable.
package models

import "fmt"

// ConfidenceThreshold is the extraction confidence below which a field is
// flagged for manual review.
const ConfidenceThreshold = 0.80

// DocumentType classifies a source document. The zero value is invalid.
type DocumentType string

const (
	DocTypeGovernmentId       DocumentType = "GovernmentId"
	DocTypeIdentityDocument   DocumentType = "IdentityDocument"
	DocTypeTaxFiling          DocumentType = "TaxFiling"
	DocTypeIncomeStatement    DocumentType = "IncomeStatement"
	DocTypeFinancialStatement DocumentType = "FinancialStatement"
)

// reliabilityRanks is the fixed trust hierarchy used to merge conflicting
// values. Higher rank wins.
var reliabilityRanks = map[DocumentType]int{
	DocTypeGovernmentId:       5,
	DocTypeIdentityDocument:   4,
	DocTypeTaxFiling:          3,
	DocTypeIncomeStatement:    2,
	DocTypeFinancialStatement: 1,
}

// ParseDocumentType validates a wire-format document type.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if _, ok := reliabilityRanks[t]; !ok {
		return "", fmt.Errorf("unknown document type %q", s)
	}
	return t, nil
}

// ReliabilityRank returns the document type's position in the trust
// hierarchy; unknown types rank 0.
func (t DocumentType) ReliabilityRank() int {
	return reliabilityRanks[t]
}

// ExtractedField is one field as produced by the external extraction service.
// RequiresManualReview must always equal confidence < ConfidenceThreshold;
// NewExtractedField and the service ingest path enforce that.
type ExtractedField struct {
	Value                any     `json:"value"`
	Confidence           float64 `json:"confidence"`
	RequiresManualReview bool    `json:"requiresManualReview"`
}

// NewExtractedField builds a field with the review flag derived from the
// confidence, which is the only valid combination.
func NewExtractedField(value any, confidence float64) ExtractedField {
	return ExtractedField{
		Value:                value,
		Confidence:           confidence,
		RequiresManualReview: confidence < ConfidenceThreshold,
	}
}

// DocumentRecord is one source document's extracted view. Owned by the
// caller; the pipeline treats it as read-only.
type DocumentRecord struct {
	DocumentID        string                    `json:"documentId"`
	DocumentType      DocumentType              `json:"documentType"`
	ReliabilityRank   int                       `json:"reliabilityRank"`
	Fields            map[string]ExtractedField `json:"fields"`
	HasIllegiblePages bool                      `json:"hasIllegiblePages"`
}

// Inconsistency is a detected cross-document mismatch for one field.
type Inconsistency struct {
	Field             string   `json:"field"`
	Severity          Severity `json:"severity"`
	ExpectedValue     any      `json:"expectedValue"`
	ActualValue       any      `json:"actualValue"`
	SourceDocumentIDs []string `json:"sourceDocumentIds"`
	Description       string   `json:"description"`
}

// GoldenField is the authoritative value selected for one field, with the
// rejected distinct values kept for review.
type GoldenField struct {
	Value             any      `json:"value"`
	SourceDocumentID  string   `json:"sourceDocumentId"`
	Confidence        float64  `json:"confidence"`
	AlternativeValues []string `json:"alternativeValues"`
}

// GoldenRecord is the merged authoritative view across all documents.
type GoldenRecord map[string]GoldenField

// RiskLevel is the discrete banding of the numeric score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskFactor is one addend of the risk score.
type RiskFactor struct {
	Factor      string `json:"factor"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// RiskAssessment is the bounded, explainable score for one audit unit.
type RiskAssessment struct {
	Score   int          `json:"score"`
	Level   RiskLevel    `json:"level"`
	Factors []RiskFactor `json:"factors"`
}

// AuditResult is the complete output of one audit unit, in the exact shape
// downstream reporting and storage consume.
type AuditResult struct {
	AuditID         string          `json:"auditId"`
	DocumentCount   int             `json:"documentCount"`
	Inconsistencies []Inconsistency `json:"inconsistencies"`
	GoldenRecord    GoldenRecord    `json:"goldenRecord"`
	RiskAssessment  RiskAssessment  `json:"riskAssessment"`
}
