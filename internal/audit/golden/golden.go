// Package golden builds the single authoritative merged record for an audit
// unit. Build is a pure function of the document set: the selection order is
// (reliability rank, confidence, document ID) with no dependence on map
// iteration order, so identical inputs always produce identical output.
package golden

import (
	"fmt"
	"sort"

	"docaudit/internal/audit/models"
)

// candidate is one document's offer for a field.
type candidate struct {
	value      any
	key        string
	confidence float64
	rank       int
	documentID string
}

// Build selects the authoritative value for every field present in any
// document and records the rejected distinct values as alternatives.
func Build(docs []models.DocumentRecord) models.GoldenRecord {
	byField := make(map[string][]candidate)
	for _, doc := range docs {
		for field, extracted := range doc.Fields {
			if extracted.Value == nil {
				continue
			}
			byField[field] = append(byField[field], candidate{
				value:      extracted.Value,
				key:        fmt.Sprint(extracted.Value),
				confidence: extracted.Confidence,
				rank:       doc.DocumentType.ReliabilityRank(),
				documentID: doc.DocumentID,
			})
		}
	}

	record := make(models.GoldenRecord, len(byField))
	for field, candidates := range byField {
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].rank != candidates[j].rank {
				return candidates[i].rank > candidates[j].rank
			}
			if candidates[i].confidence != candidates[j].confidence {
				return candidates[i].confidence > candidates[j].confidence
			}
			return candidates[i].documentID < candidates[j].documentID
		})

		best := candidates[0]
		record[field] = models.GoldenField{
			Value:             best.value,
			SourceDocumentID:  best.documentID,
			Confidence:        best.confidence,
			AlternativeValues: alternatives(best, candidates[1:]),
		}
	}
	return record
}

// alternatives returns the distinct non-selected values, sorted.
func alternatives(best candidate, rest []candidate) []string {
	seen := map[string]bool{best.key: true}
	var alts []string
	for _, c := range rest {
		if seen[c.key] {
			continue
		}
		seen[c.key] = true
		alts = append(alts, c.key)
	}
	sort.Strings(alts)
	return alts
}
