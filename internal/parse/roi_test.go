package parse

import "testing"

func TestROI(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantPass string // "true", "false", or "" for nil
		wantCat  string // "" means nil
	}{
		{"investor verdict", "Yes! Assumable Investor", "true", "Assumable Investor"},
		{"potential investor folds into investor", "Yes! Potential Assumable Investor", "true", "Assumable Investor"},
		{"fha verdict", "Yes! FHA", "true", "FHA"},
		{"va verdict", "yes va", "true", "VA"},
		{"conventional verdict", "Yes! Conventional", "true", "CONV"},
		{"plain yes", "Yes", "true", ""},
		{"no verdict", "No", "false", ""},
		{"no with category", "No - VA numbers don't work", "false", "VA"},
		{"unknown", "pending", "", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass, cat := ROI(tt.in)
			switch tt.wantPass {
			case "":
				if pass != nil {
					t.Fatalf("ROI(%q) pass = %v, want nil", tt.in, *pass)
				}
			case "true":
				if pass == nil || !*pass {
					t.Fatalf("ROI(%q) pass = %v, want true", tt.in, pass)
				}
			case "false":
				if pass == nil || *pass {
					t.Fatalf("ROI(%q) pass = %v, want false", tt.in, pass)
				}
			}
			if tt.wantCat == "" {
				if cat != nil {
					t.Fatalf("ROI(%q) category = %q, want nil", tt.in, *cat)
				}
			} else if cat == nil || *cat != tt.wantCat {
				t.Fatalf("ROI(%q) category = %v, want %q", tt.in, cat, tt.wantCat)
			}
		})
	}
}
