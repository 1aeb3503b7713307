package parse

import "strings"

// Default token sets for boolean-ish cells. Callers may pass their own
// sets to Boolish.
var (
	DefaultTrueTokens = map[string]bool{
		"yes": true, "y": true, "true": true, "t": true, "1": true,
		"done": true, "complete": true, "completed": true,
		"x": true, "✓": true, "✔": true,
	}
	DefaultFalseTokens = map[string]bool{
		"no": true, "n": true, "false": true, "f": true, "0": true,
		"not done": true, "incomplete": true,
	}
)

// Boolish interprets a cell against the given token sets, case-insensitively.
// Tokens not in either set fall back to substring heuristics: anything
// containing "yes" is true, anything starting with "no" is false.
func Boolish(val string, trueTokens, falseTokens map[string]bool) *bool {
	s := strings.ToLower(strings.TrimSpace(val))
	if s == "" {
		return nil
	}
	if trueTokens[s] {
		return boolPtr(true)
	}
	if falseTokens[s] {
		return boolPtr(false)
	}
	if strings.Contains(s, "yes") {
		return boolPtr(true)
	}
	if strings.HasPrefix(s, "no") {
		return boolPtr(false)
	}
	return nil
}

// Bool is Boolish with the default token sets.
func Bool(val string) *bool {
	return Boolish(val, DefaultTrueTokens, DefaultFalseTokens)
}

func boolPtr(b bool) *bool { return &b }
