package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/peacachucarrots/assumable-properties/internal/models"
)

func TestCheck(t *testing.T) {
	v := NewRowValidator()

	sp := func(s string) *string { return &s }
	dp := func(s string) *decimal.Decimal { d := decimal.RequireFromString(s); return &d }

	t.Run("clean row", func(t *testing.T) {
		row := &models.Row{
			Street: sp("123 Main St"), City: sp("Denver"), State: sp("CO"), Zip: sp("80202"),
			InterestRate: dp("3.5"), AskingPrice: dp("250000"),
		}
		if warnings := v.Check(row); len(warnings) != 0 {
			t.Fatalf("clean row produced warnings: %v", warnings)
		}
	})

	t.Run("implausible rate", func(t *testing.T) {
		row := &models.Row{InterestRate: dp("350")}
		if !hasWarning(v.Check(row), "interest rate") {
			t.Fatal("expected interest rate warning")
		}
	})

	t.Run("negative price", func(t *testing.T) {
		row := &models.Row{AskingPrice: dp("-1")}
		if !hasWarning(v.Check(row), "asking price") {
			t.Fatal("expected asking price warning")
		}
	})

	t.Run("partial address", func(t *testing.T) {
		row := &models.Row{Street: sp("123 Main St"), City: sp("Denver")}
		if !hasWarning(v.Check(row), "partial address") {
			t.Fatal("expected partial address warning")
		}
	})

	t.Run("bad state tag", func(t *testing.T) {
		row := &models.Row{State: sp("Colorado"), Zip: sp("80202"), Street: sp("x"), City: sp("Denver")}
		if !hasWarning(v.Check(row), "State") {
			t.Fatal("expected state length warning")
		}
	})

	t.Run("bad loan type tag", func(t *testing.T) {
		row := &models.Row{LoanType: sp("JUMBO")}
		if !hasWarning(v.Check(row), "LoanType") {
			t.Fatal("expected loan type warning")
		}
	})
}

func hasWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
