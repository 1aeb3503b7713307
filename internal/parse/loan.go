package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical loan-type codes stored on the loan table.
const (
	LoanVA        = "VA"
	LoanFHA       = "FHA"
	LoanNVVA      = "NVVA"
	LoanMaybeNVVA = "Maybe_NVVA"
	LoanConv      = "CONV"
)

// LoanTypeTable maps exact sheet spellings to canonical codes. It is the
// lookup companion to the keyword classifier in LoanType, for callers that
// want strict matching only.
var LoanTypeTable = map[string]string{
	"VA":                   LoanVA,
	"FHA":                  LoanFHA,
	"Non-Veteran VA":       LoanNVVA,
	"Non Veteran VA":       LoanNVVA,
	"Maybe Non-Veteran VA": LoanMaybeNVVA,
	"Maybe Non Veteran VA": LoanMaybeNVVA,
	"Conventional":         LoanConv,
}

// LookupLoanType resolves a raw cell against an exact-spelling table.
func LookupLoanType(raw string, table map[string]string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if code, ok := table[s]; ok {
		return &code
	}
	return nil
}

// LoanType classifies a loan-type cell by keyword. "NON-VETERAN" spellings
// are normalized before matching, and the checks run in priority order so
// that e.g. "Maybe Non Veteran VA" lands on NVVA rather than VA.
func LoanType(raw string) *string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return nil
	}
	v = strings.ReplaceAll(v, "NON-VETERAN", "NON VETERAN")
	v = strings.ReplaceAll(v, "NONVETERAN", "NON VETERAN")

	switch {
	case strings.Contains(v, "NON") && strings.Contains(v, "VA"):
		return strPtr(LoanNVVA)
	case v == "NON VETERAN VA":
		return strPtr(LoanNVVA)
	case strings.Contains(v, "FHA"):
		return strPtr(LoanFHA)
	case v == "VA":
		return strPtr(LoanVA)
	case strings.Contains(v, "CONV") || strings.Contains(v, "CONVENTIONAL"):
		return strPtr(LoanConv)
	case strings.Contains(v, "MAYBE") && strings.Contains(v, "VA"):
		return strPtr(LoanMaybeNVVA)
	}
	return nil
}

var rateFractionCutoff = decimal.New(5, -1) // 0.5

// NormalizeRate coerces an interest-rate cell to a percentage with three
// decimal places. Values at or below 0.5 (a signed comparison) are treated
// as fractions and scaled: 0.035 -> 3.500, "3.5%" -> 3.500.
func NormalizeRate(raw string) *decimal.Decimal {
	d := Decimal(raw)
	if d == nil {
		return nil
	}
	var out decimal.Decimal
	if d.LessThanOrEqual(rateFractionCutoff) {
		out = d.Mul(decimal.NewFromInt(100)).Round(3)
	} else {
		out = d.Round(3)
	}
	return &out
}
