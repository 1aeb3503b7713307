package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/peacachucarrots/assumable-properties/internal/models"
)

var noFeeTokens = map[string]bool{
	"none": true, "no hoa": true, "n/a": true, "na": true, "0": true,
}

var (
	nonNumericRe    = regexp.MustCompile(`[^\d.]`)
	leadingAmountRe = regexp.MustCompile(`^\$?\s*(\d[\d,]*\.?\d*)`)
)

// Cadence-tagged dollar amounts, e.g. "$52 Quarterly".
var (
	hoaQuarterRe = regexp.MustCompile(`(?i)\$?(\d[\d,.]*)\s*Quarterly`)
	hoaSemiRe    = regexp.MustCompile(`(?i)\$?(\d[\d,.]*)\s*Semi[- ]*Annual`)
	hoaAnnualRe  = regexp.MustCompile(`(?i)\$?(\d[\d,.]*)\s*Annual`)
	hoaMonthRe   = regexp.MustCompile(`(?i)\$?(\d[\d,.]*)\s*Monthly?`)
)

// HOA extracts the fee amount and billing cadence from an HOA cell. The
// amount is in the cadence's raw units, not per-month. "none"/"n/a"-style
// cells yield (nil, nil). The cadence defaults to Monthly when no keyword
// is present; the amount falls back to the leading numeric run, then to
// stripping non-numeric characters.
func HOA(raw string) (*decimal.Decimal, *string) {
	s := strings.TrimSpace(raw)
	if s == "" || noFeeTokens[strings.ToLower(s)] {
		return nil, nil
	}

	amount := Decimal(s)
	if amount == nil {
		if m := leadingAmountRe.FindStringSubmatch(s); m != nil {
			amount = Decimal(m[1])
		}
	}
	if amount == nil {
		amount = Decimal(nonNumericRe.ReplaceAllString(s, ""))
	}

	freq := models.FreqMonthly
	sl := strings.ToLower(s)
	switch {
	case strings.Contains(sl, "quarter"):
		freq = models.FreqQuarterly
	case strings.Contains(sl, "semi"):
		freq = models.FreqSemiAnnual
	case strings.Contains(sl, "annual") || strings.Contains(sl, "year"):
		freq = models.FreqAnnual
	}
	return amount, &freq
}

// MonthlyHOA converts an HOA cell to dollars per month. Multiple mentions
// of the same cadence are summed before dividing by that cadence's month
// count, so "$52 Quarterly & $43 Quarterly" is (52+43)/3. A bare number is
// treated as already monthly. Returns nil when nothing numeric is found.
func MonthlyHOA(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	monthly := sumMatches(hoaMonthRe, s) +
		sumMatches(hoaQuarterRe, s)/3.0 +
		sumMatches(hoaSemiRe, s)/6.0 +
		sumMatches(hoaAnnualRe, s)/12.0

	if monthly != 0 {
		return &monthly
	}

	plain := strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	v, err := strconv.ParseFloat(plain, 64)
	if err != nil {
		return nil
	}
	return &v
}

func sumMatches(re *regexp.Regexp, s string) float64 {
	var total float64
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err == nil {
			total += v
		}
	}
	return total
}
