package parse

import (
	"regexp"
	"strings"
)

// splitRealtorRe separates co-listing agents: "Alice Smith / Bob Jones",
// "Smith, Jones", "Alice & Bob", "Alice and Bob".
var splitRealtorRe = regexp.MustCompile(`(?i)[/,&]| and `)

// SplitRealtors returns the individual agent names in a realtor cell.
func SplitRealtors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var names []string
	for _, p := range splitRealtorRe.Split(raw, -1) {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
