package parse

import "testing"

func TestBool(t *testing.T) {
	trueCases := []string{"yes", "Yes", "Y", "TRUE", "1", "Done", "completed", "x", "✓", "Yes, sent 3/14"}
	for _, in := range trueCases {
		if got := Bool(in); got == nil || !*got {
			t.Errorf("Bool(%q) = %v, want true", in, got)
		}
	}

	falseCases := []string{"no", "N", "false", "0", "Not done", "incomplete", "not yet"}
	for _, in := range falseCases {
		if got := Bool(in); got == nil || *got {
			t.Errorf("Bool(%q) = %v, want false", in, got)
		}
	}

	unknownCases := []string{"", "   ", "maybe", "?"}
	for _, in := range unknownCases {
		if got := Bool(in); got != nil {
			t.Errorf("Bool(%q) = %v, want nil", in, *got)
		}
	}
}

func TestBoolishCustomTokens(t *testing.T) {
	yes := map[string]bool{"si": true}
	no := map[string]bool{"nope": true}
	if got := Boolish("si", yes, no); got == nil || !*got {
		t.Fatalf("custom true token not honored: %v", got)
	}
	if got := Boolish("nope", yes, no); got == nil || *got {
		t.Fatalf("custom false token not honored: %v", got)
	}
}
