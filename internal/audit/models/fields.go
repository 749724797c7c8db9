package models

import "strings"

// FieldCategory selects the comparison and scoring rules for a field.
type FieldCategory string

const (
	CategoryName       FieldCategory = "name"
	CategoryAddress    FieldCategory = "address"
	CategoryMonetary   FieldCategory = "monetary"
	CategoryIdentifier FieldCategory = "identifier"
	CategoryDate       FieldCategory = "date"
	CategoryText       FieldCategory = "text"
)

// knownFields maps the field names the extraction service emits to their
// categories. Unknown fields fall through to the substring heuristics below,
// then to plain text.
var knownFields = map[string]FieldCategory{
	"applicantName":        CategoryName,
	"employeeName":         CategoryName,
	"employerName":         CategoryName,
	"accountHolderName":    CategoryName,
	"address":              CategoryAddress,
	"employeeAddress":      CategoryAddress,
	"mailingAddress":       CategoryAddress,
	"ssn":                  CategoryIdentifier,
	"taxId":                CategoryIdentifier,
	"employerEin":          CategoryIdentifier,
	"licenseNumber":        CategoryIdentifier,
	"documentNumber":       CategoryIdentifier,
	"accountNumber":        CategoryIdentifier,
	"dateOfBirth":          CategoryIdentifier,
	"wages":                CategoryMonetary,
	"agi":                  CategoryMonetary,
	"totalIncome":          CategoryMonetary,
	"declaredIncome":       CategoryMonetary,
	"beginningBalance":     CategoryMonetary,
	"endingBalance":        CategoryMonetary,
	"issueDate":            CategoryDate,
	"expirationDate":       CategoryDate,
	"statementPeriodStart": CategoryDate,
	"statementPeriodEnd":   CategoryDate,
}

// identifierHints are checked before dateHints so dateOfBirth-style fields
// take the zero-tolerance path rather than the informational date path.
var (
	identifierHints = []string{"ssn", "ein", "taxid", "dateofbirth", "dob", "number"}
	monetaryHints   = []string{"income", "wages", "balance", "amount", "agi", "salary"}
	nameHints       = []string{"name"}
	addressHints    = []string{"address", "street", "city"}
	dateHints       = []string{"date", "period"}
)

// fieldAliases folds the extractor's per-document field names onto one
// comparison key, so a W2's wages and a tax filing's adjusted gross income
// are validated against each other rather than past each other. Golden
// record building keeps the original field names; only cross-document
// comparison uses the canonical key.
var fieldAliases = map[string]string{
	"applicantName":     "name",
	"employeeName":      "name",
	"accountHolderName": "name",
	"wages":             "income",
	"agi":               "income",
	"totalIncome":       "income",
	"declaredIncome":    "income",
	"employeeAddress":   "address",
	"mailingAddress":    "address",
	"taxId":             "ssn",
}

// CanonicalField resolves a field name to its cross-document comparison key.
func CanonicalField(field string) string {
	if canonical, ok := fieldAliases[field]; ok {
		return canonical
	}
	return field
}

// CategoryOf resolves a field name to its category.
func CategoryOf(field string) FieldCategory {
	if cat, ok := knownFields[field]; ok {
		return cat
	}
	lower := strings.ToLower(field)
	for _, h := range identifierHints {
		if strings.Contains(lower, h) {
			return CategoryIdentifier
		}
	}
	for _, h := range monetaryHints {
		if strings.Contains(lower, h) {
			return CategoryMonetary
		}
	}
	for _, h := range nameHints {
		if strings.Contains(lower, h) {
			return CategoryName
		}
	}
	for _, h := range addressHints {
		if strings.Contains(lower, h) {
			return CategoryAddress
		}
	}
	for _, h := range dateHints {
		if strings.Contains(lower, h) {
			return CategoryDate
		}
	}
	return CategoryText
}

// IsIdentifying reports whether the field can anchor an audit: an audit unit
// with no identifying field on any document is rejected as insufficient data.
func IsIdentifying(field string) bool {
	switch CategoryOf(field) {
	case CategoryName, CategoryIdentifier:
		return true
	}
	return false
}

// MonetaryCriticalPct is the relative discrepancy above which a monetary
// mismatch escalates from HIGH to CRITICAL. MonetaryTolerancePct is the
// consistency threshold; at or below it no inconsistency exists.
const (
	MonetaryTolerancePct = 5.0
	MonetaryCriticalPct  = 10.0
)

// categorySeverities fixes the severity per category. Monetary severity is
// band-dependent and resolved by SeverityForMonetary instead.
var categorySeverities = map[FieldCategory]Severity{
	CategoryName:       SeverityHigh,
	CategoryAddress:    SeverityHigh,
	CategoryIdentifier: SeverityCritical,
	CategoryDate:       SeverityLow,
	CategoryText:       SeverityLow,
}

// SeverityFor returns the severity of a mismatch in the given category.
func SeverityFor(cat FieldCategory) Severity {
	if s, ok := categorySeverities[cat]; ok {
		return s
	}
	return SeverityLow
}

// SeverityForMonetary bands a monetary discrepancy percentage.
func SeverityForMonetary(discrepancyPct float64) Severity {
	if discrepancyPct > MonetaryCriticalPct {
		return SeverityCritical
	}
	return SeverityHigh
}

// categoryPoints is the risk scoring table keyed by field category. Monetary
// points are band-dependent and resolved by PointsFor via severity.
var categoryPoints = map[FieldCategory]int{
	CategoryName:       15,
	CategoryAddress:    20,
	CategoryIdentifier: 30,
	CategoryDate:       0,
	CategoryText:       0,
}

const (
	monetaryPointsHigh     = 15
	monetaryPointsCritical = 25
)

// PointsFor returns the risk points one inconsistency contributes. The
// monetary band is recovered from the severity the detector assigned, so the
// percentage thresholds live in exactly one place.
func PointsFor(cat FieldCategory, severity Severity) int {
	if cat == CategoryMonetary {
		if severity == SeverityCritical {
			return monetaryPointsCritical
		}
		return monetaryPointsHigh
	}
	return categoryPoints[cat]
}
