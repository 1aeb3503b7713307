package parse

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoanType(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" means nil
	}{
		{"VA", LoanVA},
		{"va", LoanVA},
		{"FHA", LoanFHA},
		{"FHA Assumable", LoanFHA},
		{"Non-Veteran VA", LoanNVVA},
		{"Non Veteran VA", LoanNVVA},
		{"NonVeteran VA", LoanNVVA},
		{"Maybe Non Veteran VA", LoanNVVA},
		{"Conventional", LoanConv},
		{"CONV", LoanConv},
		{"", ""},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := LoanType(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("LoanType(%q) = %q, want nil", tt.in, *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Fatalf("LoanType(%q) = %v, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLookupLoanType(t *testing.T) {
	if got := LookupLoanType("Non-Veteran VA", LoanTypeTable); got == nil || *got != LoanNVVA {
		t.Fatalf("exact table lookup failed: %v", got)
	}
	if got := LookupLoanType("non-veteran va", LoanTypeTable); got != nil {
		t.Fatalf("table lookup should be case-sensitive, got %q", *got)
	}
}

func TestNormalizeRate(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" means nil
	}{
		{"3.5", "3.5"},
		{"3.5%", "3.5"},
		{"0.035", "3.5"},
		{"0.5", "50"},
		{"6.125", "6.125"},
		{"2.8755", "2.876"},
		{"", ""},
		{"unknown", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeRate(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("NormalizeRate(%q) = %s, want nil", tt.in, got)
				}
				return
			}
			want := decimal.RequireFromString(tt.want)
			if got == nil || !got.Equal(want) {
				t.Fatalf("NormalizeRate(%q) = %v, want %s", tt.in, got, want)
			}
		})
	}
}

// A sheet that carries "3.5%" in one export and "0.035" in another must
// land on the same stored percentage.
func TestNormalizeRateConsistency(t *testing.T) {
	a := NormalizeRate("3.5%")
	b := NormalizeRate("0.035")
	if a == nil || b == nil || !a.Equal(*b) {
		t.Fatalf("3.5%% normalized to %v but 0.035 to %v", a, b)
	}
}
