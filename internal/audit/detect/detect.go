// Package detect orchestrates cross-document comparison for one audit unit:
// full pairwise closure per shared field, concurrent across fields, with a
// deterministic, severity-ordered output.
package detect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"docaudit/internal/audit/compare"
	"docaudit/internal/audit/models"
	"docaudit/internal/audit/normalize"
)

// defaultMaxParallel bounds the per-field fan-out.
const defaultMaxParallel = 8

// Detector finds inconsistencies across a document set.
type Detector struct {
	comparator  *compare.Comparator
	logger      *slog.Logger
	maxParallel int
}

type Option func(*Detector)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// WithMaxParallel overrides the number of fields compared concurrently.
func WithMaxParallel(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.maxParallel = n
		}
	}
}

func New(comparator *compare.Comparator, opts ...Option) (*Detector, error) {
	if comparator == nil {
		return nil, fmt.Errorf("comparator is required")
	}
	d := &Detector{
		comparator:  comparator,
		logger:      slog.Default(),
		maxParallel: defaultMaxParallel,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// valueRef is one occurrence of a field value, normalized, with its sources.
// A synthetic summed value carries every contributing document ID.
type valueRef struct {
	sourceIDs []string
	raw       any
	norm      normalize.Value
}

// Detect runs the full pairwise closure over every field present in two or
// more documents. Absent or malformed fields are skipped, never reported:
// absence is not contradiction. The result ordering is stable regardless of
// the concurrency schedule.
func (d *Detector) Detect(ctx context.Context, docs []models.DocumentRecord) []models.Inconsistency {
	grouped := groupByField(docs)

	fields := make([]string, 0, len(grouped))
	for field, refs := range grouped {
		if len(refs) >= 2 {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	var (
		mu       sync.Mutex
		findings []models.Inconsistency
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.maxParallel)
	for _, field := range fields {
		refs := grouped[field]
		g.Go(func() error {
			found := d.compareField(gctx, field, refs)
			if len(found) > 0 {
				mu.Lock()
				findings = append(findings, found...)
				mu.Unlock()
			}
			return nil
		})
	}
	// Comparison tasks never fail; oracle errors degrade inside the comparator.
	_ = g.Wait()

	sortFindings(findings)
	return findings
}

// compareField runs C(n,2) comparisons over every unordered pair carrying
// the field. Pairs are generated with i < j over a deterministically ordered
// slice, so each unordered pair is compared exactly once.
func (d *Detector) compareField(ctx context.Context, field string, refs []valueRef) []models.Inconsistency {
	category := models.CategoryOf(field)
	var findings []models.Inconsistency
	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			if sameSources(refs[i], refs[j]) {
				// Aliased fields from a single document are not a
				// cross-document contradiction.
				continue
			}
			cmp := d.comparator.Compare(ctx, category, refs[i].norm, refs[j].norm)
			if cmp.Consistent {
				continue
			}
			findings = append(findings, models.Inconsistency{
				Field:             field,
				Severity:          severityOf(category, cmp),
				ExpectedValue:     refs[i].raw,
				ActualValue:       refs[j].raw,
				SourceDocumentIDs: mergeSources(refs[i], refs[j]),
				Description:       compare.Describe(field, category, cmp),
			})
		}
	}
	return findings
}

func severityOf(category models.FieldCategory, cmp compare.Comparison) models.Severity {
	if category == models.CategoryMonetary {
		return models.SeverityForMonetary(cmp.DiscrepancyPct)
	}
	return models.SeverityFor(category)
}

// groupByField collects one normalized valueRef per document per field.
// Documents are walked in documentId order so ref ordering, and with it the
// expected/actual orientation of findings, is reproducible. Monetary values
// carried by income statements are summed into one synthetic ref before the
// closure, so several pay statements are validated against a declared
// aggregate rather than individually.
func groupByField(docs []models.DocumentRecord) map[string][]valueRef {
	ordered := make([]models.DocumentRecord, len(docs))
	copy(ordered, docs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].DocumentID < ordered[j].DocumentID
	})

	grouped := make(map[string][]valueRef)
	for _, doc := range ordered {
		// Field names are walked in sorted order so aliased fields from the
		// same document land in a reproducible sequence.
		for _, field := range sortedFieldNames(doc) {
			extracted := doc.Fields[field]
			if extracted.Value == nil {
				continue
			}
			canonical := models.CanonicalField(field)
			norm := normalize.Field(models.CategoryOf(canonical), extracted.Value)
			if norm.Text == "" {
				continue
			}
			grouped[canonical] = append(grouped[canonical], valueRef{
				sourceIDs: []string{doc.DocumentID},
				raw:       extracted.Value,
				norm:      norm,
			})
		}
	}

	for field, refs := range grouped {
		if models.CategoryOf(field) == models.CategoryMonetary {
			grouped[field] = sumIncomeStatements(docs, field, refs)
		}
	}
	return grouped
}

// sumIncomeStatements folds the income-statement occurrences of a monetary
// field into a single summed ref. Refs that did not parse numerically keep
// their opaque form and stay individual.
func sumIncomeStatements(docs []models.DocumentRecord, field string, refs []valueRef) []valueRef {
	incomeDocs := make(map[string]bool)
	for _, doc := range docs {
		if doc.DocumentType == models.DocTypeIncomeStatement {
			incomeDocs[doc.DocumentID] = true
		}
	}

	var (
		summed  []valueRef
		sources []string
		total   float64
		count   int
	)
	for _, ref := range refs {
		if len(ref.sourceIDs) == 1 && incomeDocs[ref.sourceIDs[0]] && ref.norm.Parsed {
			total += ref.norm.Number
			sources = append(sources, ref.sourceIDs[0])
			count++
			continue
		}
		summed = append(summed, ref)
	}
	if count == 0 {
		return refs
	}
	if count == 1 {
		// A single statement needs no synthetic aggregation.
		return refs
	}
	summed = append(summed, valueRef{
		sourceIDs: sources,
		raw:       total,
		norm:      normalize.Field(models.CategoryMonetary, total),
	})
	return summed
}

func sortedFieldNames(doc models.DocumentRecord) []string {
	fields := make([]string, 0, len(doc.Fields))
	for field := range doc.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func sameSources(a, b valueRef) bool {
	if len(a.sourceIDs) != len(b.sourceIDs) {
		return false
	}
	for i := range a.sourceIDs {
		if a.sourceIDs[i] != b.sourceIDs[i] {
			return false
		}
	}
	return true
}

func mergeSources(a, b valueRef) []string {
	seen := make(map[string]bool, len(a.sourceIDs)+len(b.sourceIDs))
	merged := make([]string, 0, len(a.sourceIDs)+len(b.sourceIDs))
	for _, id := range append(append([]string{}, a.sourceIDs...), b.sourceIDs...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, id)
	}
	sort.Strings(merged)
	return merged
}

// sortFindings orders by severity weight descending, then field ascending,
// then source documents ascending so equal-severity ties are deterministic.
func sortFindings(findings []models.Inconsistency) {
	sort.SliceStable(findings, func(i, j int) bool {
		wi, wj := findings[i].Severity.Weight(), findings[j].Severity.Weight()
		if wi != wj {
			return wi > wj
		}
		if findings[i].Field != findings[j].Field {
			return findings[i].Field < findings[j].Field
		}
		return strings.Join(findings[i].SourceDocumentIDs, ",") < strings.Join(findings[j].SourceDocumentIDs, ",")
	})
}
