// Package oracle defines the port for the external semantic-equivalence
// service: a capability that judges whether two differently formatted values
// denote the same real-world fact (nickname/full-name pairs, abbreviated
// street suffixes). The core must stay correct with no oracle at all, so
// every consumer treats a nil Oracle, a timeout, or an error identically:
// keep the local verdict.
package oracle

import "context"

// Verdict is the oracle's judgement on one value pair.
type Verdict struct {
	Equivalent bool    `json:"equivalent"`
	Confidence float64 `json:"confidence"`
}

// Oracle judges semantic equivalence of two normalized values. fieldType
// gives the oracle domain context ("name", "address").
type Oracle interface {
	Equivalent(ctx context.Context, a, b, fieldType string) (*Verdict, error)
}
