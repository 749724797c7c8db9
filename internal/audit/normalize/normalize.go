// Package normalize canonicalizes raw extracted values before comparison.
// Normalization never fails: anything unparseable degrades to opaque text
// with Parsed=false so comparators can soften strictness downstream.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"docaudit/internal/audit/models"
)

// Address is the component split of a postal address.
type Address struct {
	Street     string
	City       string
	Region     string
	PostalCode string
}

// Value is the canonical shape of one normalized field. Text is always set
// and is the fallback representation for every category; Number, Date and
// Address are populated only when Parsed is true for their category.
type Value struct {
	Category models.FieldCategory
	Text     string
	Number   float64
	Date     time.Time
	Address  *Address
	// Parsed is false when the raw value did not fit the category's canonical
	// shape and Text is the opaque fallback.
	Parsed bool
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Field normalizes a raw value for the given category. Pure, no side effects.
func Field(category models.FieldCategory, raw any) Value {
	text := collapse(fmt.Sprint(raw))

	switch category {
	case models.CategoryIdentifier:
		return Value{Category: category, Text: stripSeparators(text), Parsed: true}

	case models.CategoryMonetary:
		if n, ok := parseAmount(raw); ok {
			return Value{Category: category, Text: strconv.FormatFloat(n, 'f', -1, 64), Number: n, Parsed: true}
		}
		return Value{Category: category, Text: text}

	case models.CategoryDate:
		if d, ok := parseDate(text); ok {
			return Value{Category: category, Text: d.Format("2006-01-02"), Date: d, Parsed: true}
		}
		return Value{Category: category, Text: text}

	case models.CategoryAddress:
		if addr, ok := parseAddress(text); ok {
			return Value{Category: category, Text: text, Address: addr, Parsed: true}
		}
		return Value{Category: category, Text: text}

	default:
		return Value{Category: category, Text: text, Parsed: true}
	}
}

// collapse lower-cases, trims, and squeezes internal whitespace runs.
func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// stripSeparators removes the cosmetic separators identifiers are written
// with, so "123-45-6789" and "123 45 6789" normalize identically.
func stripSeparators(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '-', '.', '/':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseAmount(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	s := strings.TrimSpace(fmt.Sprint(raw))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
		// Layouts with month names need the original casing restored.
		if d, err := time.Parse(layout, titleCase(s)); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func titleCase(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		out := r
		if prev == ' ' {
			out = unicode.ToUpper(r)
		}
		prev = r
		return out
	}, s)
}

// parseAddress splits "street, city, region postal" forms. Anything with
// fewer than three comma-separated parts is left opaque.
func parseAddress(s string) (*Address, bool) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	addr := &Address{
		Street: parts[0],
		City:   parts[1],
	}
	rest := strings.Fields(strings.Join(parts[2:], " "))
	for _, tok := range rest {
		if isPostalCode(tok) && addr.PostalCode == "" {
			addr.PostalCode = tok
			continue
		}
		if addr.Region == "" {
			addr.Region = tok
		} else {
			addr.Region += " " + tok
		}
	}
	if addr.Street == "" || addr.City == "" {
		return nil, false
	}
	return addr, true
}

func isPostalCode(tok string) bool {
	digits := 0
	for _, r := range tok {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 3
}

// Components compares two parsed addresses and names the mismatching parts.
func (a *Address) Components(b *Address) []string {
	var diff []string
	if a.Street != b.Street {
		diff = append(diff, "street")
	}
	if a.City != b.City {
		diff = append(diff, "city")
	}
	if a.Region != b.Region {
		diff = append(diff, "region")
	}
	if a.PostalCode != b.PostalCode {
		diff = append(diff, "postalCode")
	}
	return diff
}
