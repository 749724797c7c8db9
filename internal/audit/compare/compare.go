// Package compare decides whether two normalized values of one field type
// are consistent. Comparisons are symmetric: Compare(a, b) and Compare(b, a)
// always yield the same verdict.
package compare

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"

	"docaudit/internal/audit/models"
	"docaudit/internal/audit/normalize"
	"docaudit/internal/oracle"
)

// NameEditDistanceMax is the levenshtein distance up to which two names are
// considered the same without consulting the oracle.
const NameEditDistanceMax = 2

// Comparison is the raw verdict for one value pair. Severity and points are
// assigned downstream from the shared category tables.
type Comparison struct {
	Consistent bool
	// Distance is the edit distance for name comparisons.
	Distance int
	// DiscrepancyPct is the relative discrepancy percentage for monetary
	// comparisons.
	DiscrepancyPct float64
	// Components names the mismatching address components.
	Components []string
	// Unverified marks a mismatch the oracle could have rescued but was
	// unavailable for; the verdict is the conservative one.
	Unverified bool
}

// Comparator applies the per-category comparison rules, consulting the
// semantic-equivalence oracle where formatting differences are plausible.
type Comparator struct {
	oracle oracle.Oracle
	logger *slog.Logger
}

type Option func(*Comparator)

// WithOracle enables semantic-equivalence checks. A nil oracle is the
// default and keeps every verdict local and deterministic.
func WithOracle(o oracle.Oracle) Option {
	return func(c *Comparator) {
		c.oracle = o
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparator) {
		c.logger = logger
	}
}

func New(opts ...Option) *Comparator {
	c := &Comparator{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare evaluates a value pair of the given category. The context bounds
// any oracle call; comparison itself never blocks.
func (c *Comparator) Compare(ctx context.Context, category models.FieldCategory, a, b normalize.Value) Comparison {
	switch category {
	case models.CategoryIdentifier:
		return Comparison{Consistent: a.Text == b.Text}
	case models.CategoryName:
		return c.compareNames(ctx, a, b)
	case models.CategoryAddress:
		return c.compareAddresses(ctx, a, b)
	case models.CategoryMonetary:
		return c.compareMonetary(a, b)
	case models.CategoryDate:
		return Comparison{Consistent: a.Text == b.Text}
	default:
		return Comparison{Consistent: a.Text == b.Text}
	}
}

func (c *Comparator) compareNames(ctx context.Context, a, b normalize.Value) Comparison {
	dist := levenshtein.ComputeDistance(a.Text, b.Text)
	if dist <= NameEditDistanceMax {
		return Comparison{Consistent: true, Distance: dist}
	}
	equivalent, unverified := c.askOracle(ctx, a.Text, b.Text, "name")
	return Comparison{Consistent: equivalent, Distance: dist, Unverified: unverified}
}

func (c *Comparator) compareAddresses(ctx context.Context, a, b normalize.Value) Comparison {
	if a.Parsed && b.Parsed {
		components := a.Address.Components(b.Address)
		if len(components) == 0 {
			return Comparison{Consistent: true}
		}
		equivalent, unverified := c.askOracle(ctx, a.Text, b.Text, "address")
		return Comparison{Consistent: equivalent, Components: components, Unverified: unverified}
	}
	// One or both sides failed component splitting; compare the opaque text.
	if a.Text == b.Text {
		return Comparison{Consistent: true}
	}
	equivalent, unverified := c.askOracle(ctx, a.Text, b.Text, "address")
	return Comparison{Consistent: equivalent, Unverified: unverified}
}

func (c *Comparator) compareMonetary(a, b normalize.Value) Comparison {
	if !a.Parsed || !b.Parsed {
		// Unparseable amounts degrade to opaque text comparison.
		return Comparison{Consistent: a.Text == b.Text}
	}
	diff := math.Abs(a.Number - b.Number)
	denom := math.Max(math.Max(math.Abs(a.Number), math.Abs(b.Number)), 1)
	pct := diff / denom * 100
	return Comparison{Consistent: pct <= models.MonetaryTolerancePct, DiscrepancyPct: pct}
}

// askOracle queries the semantic-equivalence oracle for a pair the local
// metric rejected. Fails open to "not equivalent" with unverified=true when
// no oracle is configured or the call errors or times out.
func (c *Comparator) askOracle(ctx context.Context, a, b, fieldType string) (equivalent, unverified bool) {
	if c.oracle == nil {
		return false, false
	}
	// Order the pair so both orientations produce the identical query.
	if a > b {
		a, b = b, a
	}
	verdict, err := c.oracle.Equivalent(ctx, a, b, fieldType)
	if err != nil {
		c.logger.WarnContext(ctx, "semantic oracle unavailable, keeping mismatch",
			"fieldType", fieldType, "error", err)
		return false, true
	}
	return verdict.Equivalent, false
}

// Describe renders the human-readable description for an inconsistent
// comparison, naming the metric that failed.
func Describe(field string, category models.FieldCategory, cmp Comparison) string {
	var desc string
	switch category {
	case models.CategoryIdentifier:
		desc = fmt.Sprintf("Critical %s mismatch detected", field)
	case models.CategoryName:
		desc = fmt.Sprintf("Name mismatch detected (edit distance: %d)", cmp.Distance)
	case models.CategoryAddress:
		if len(cmp.Components) > 0 {
			desc = fmt.Sprintf("Address mismatch detected (components: %s)", strings.Join(cmp.Components, ", "))
		} else {
			desc = "Address mismatch detected"
		}
	case models.CategoryMonetary:
		desc = fmt.Sprintf("Discrepancy of %.2f%% detected for %s", cmp.DiscrepancyPct, field)
	case models.CategoryDate:
		desc = fmt.Sprintf("Date mismatch detected for %s", field)
	default:
		desc = fmt.Sprintf("Value mismatch detected for %s", field)
	}
	if cmp.Unverified {
		desc += " (semantic check unavailable)"
	}
	return desc
}
