// Package parse converts raw spreadsheet cell text into typed values.
// Every parser is total: malformed input yields nil, never a panic.
package parse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// Decimal coerces a cell to an exact decimal. Thousands separators and a
// leading currency symbol are stripped; a trailing "%" is accepted and the
// numeric value is kept as-is (3.5% -> 3.5). Empty or unparseable input
// yields nil.
func Decimal(val string) *decimal.Decimal {
	s := strings.TrimSpace(val)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &d
}

// Int coerces a cell to an integer by way of Decimal, truncating any
// fractional part.
func Int(val string) *int {
	d := Decimal(val)
	if d == nil {
		return nil
	}
	n := int(d.IntPart())
	return &n
}

// Float coerces a cell to a decimal rounded to one place. Used for bath
// counts, where the sheet carries values like "2.5".
func Float(val string) *decimal.Decimal {
	d := Decimal(val)
	if d == nil {
		return nil
	}
	r := d.Round(1)
	return &r
}

// Date coerces free-text cells like "3/14/2024" or "March 14, 2024" to a
// date. Time-of-day, if any, is discarded.
func Date(val string) *time.Time {
	s := strings.TrimSpace(val)
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

// Text trims a cell and returns nil for empty.
func Text(val string) *string {
	s := strings.TrimSpace(val)
	if s == "" {
		return nil
	}
	return &s
}
