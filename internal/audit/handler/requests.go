package handler

import (
	"fmt"

	"docaudit/internal/audit/models"
	dErrors "docaudit/pkg/domainerrors"
)

// maxDocumentsPerAudit bounds request size; one application never carries
// more source documents than this.
const maxDocumentsPerAudit = 50

// AuditRequest is the HTTP request body for POST /v1/audits.
type AuditRequest struct {
	AuditID   string            `json:"auditId"`
	Documents []DocumentPayload `json:"documents"`

	// Parsed documents (populated by Validate).
	parsed []models.DocumentRecord
}

// DocumentPayload is one document in the request.
type DocumentPayload struct {
	DocumentID        string                  `json:"documentId"`
	DocumentType      string                  `json:"documentType"`
	Fields            map[string]FieldPayload `json:"fields"`
	HasIllegiblePages bool                    `json:"hasIllegiblePages"`
}

// FieldPayload is one extracted field in the request. The manual-review flag
// is derived server-side and not accepted from callers.
type FieldPayload struct {
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *AuditRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Documents) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one document is required")
	}
	if len(r.Documents) > maxDocumentsPerAudit {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("at most %d documents are accepted per audit", maxDocumentsPerAudit))
	}
	if len(r.AuditID) > 64 {
		return dErrors.New(dErrors.CodeValidation, "auditId must be at most 64 characters")
	}

	seen := make(map[string]bool, len(r.Documents))
	r.parsed = make([]models.DocumentRecord, 0, len(r.Documents))
	for i, doc := range r.Documents {
		if doc.DocumentID == "" {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("documents[%d]: documentId is required", i))
		}
		if seen[doc.DocumentID] {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("documents[%d]: duplicate documentId %q", i, doc.DocumentID))
		}
		seen[doc.DocumentID] = true

		docType, err := models.ParseDocumentType(doc.DocumentType)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("documents[%d]: %v", i, err))
		}

		fields := make(map[string]models.ExtractedField, len(doc.Fields))
		for name, field := range doc.Fields {
			if field.Confidence < 0 || field.Confidence > 1 {
				return dErrors.New(dErrors.CodeValidation,
					fmt.Sprintf("documents[%d]: field %q confidence must be in [0,1]", i, name))
			}
			fields[name] = models.NewExtractedField(field.Value, field.Confidence)
		}

		r.parsed = append(r.parsed, models.DocumentRecord{
			DocumentID:        doc.DocumentID,
			DocumentType:      docType,
			ReliabilityRank:   docType.ReliabilityRank(),
			Fields:            fields,
			HasIllegiblePages: doc.HasIllegiblePages,
		})
	}
	return nil
}

// DocumentRecords returns the parsed documents after a successful Validate.
func (r *AuditRequest) DocumentRecords() []models.DocumentRecord {
	return r.parsed
}
