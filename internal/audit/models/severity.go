package models

// Severity grades an inconsistency. Weights drive the stable output ordering.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

var severityWeights = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// Weight returns the sort weight of the severity; unknown severities weigh 0.
func (s Severity) Weight() int {
	return severityWeights[s]
}
