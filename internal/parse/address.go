package parse

import (
	"regexp"
	"strings"
)

var (
	// stateZipRe captures "CO 80202" or "CO 80202-1234" tails.
	stateZipRe = regexp.MustCompile(`\b([A-Z]{2})\s+(\d{5}(?:-\d{4})?)\b`)
	// unitRe captures unit/suite designators embedded in a street line.
	unitRe = regexp.MustCompile(`(?i)\b(?:Apt|Unit|#|Ste|Suite)\s*([A-Za-z0-9\-]+)`)
)

// Address is a decomposed property address. Nil fields could not be
// recovered from the raw cell.
type Address struct {
	Street *string
	Unit   *string
	City   *string
	State  *string
	Zip    *string
}

// ParseAddress splits a free-form address cell on commas.
//
// Three or more segments: first is the street, second-to-last the city,
// last the "ST ZIP" pair (with token fallbacks when the pattern misses).
// Exactly two segments: the second is scanned for a trailing state/zip and
// the remainder becomes the city. Unit tokens (Apt/Unit/#/Ste/Suite) are
// pulled out of the street, with "Suite" canonicalized to "Ste".
func ParseAddress(raw string) Address {
	var a Address
	s := strings.TrimSpace(raw)
	if s == "" {
		return a
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch {
	case len(parts) >= 3:
		a.Street = strPtr(parts[0])
		a.City = strPtr(parts[len(parts)-2])
		stZip := parts[len(parts)-1]
		if m := stateZipRe.FindStringSubmatch(stZip); m != nil {
			a.State = strPtr(m[1])
			a.Zip = strPtr(m[2])
		} else {
			tokens := strings.Fields(stZip)
			if len(tokens) == 1 && len(tokens[0]) == 2 {
				a.State = strPtr(tokens[0])
			} else if len(tokens) >= 2 && len(tokens[0]) == 2 {
				a.State = strPtr(tokens[0])
				a.Zip = strPtr(tokens[1])
			}
		}
	case len(parts) == 2:
		a.Street = strPtr(parts[0])
		stZip := parts[1]
		if loc := stateZipRe.FindStringSubmatchIndex(stZip); loc != nil {
			a.State = strPtr(stZip[loc[2]:loc[3]])
			a.Zip = strPtr(stZip[loc[4]:loc[5]])
			city := strings.TrimRight(strings.TrimSpace(stZip[:loc[0]]), ",")
			if city != "" {
				a.City = strPtr(city)
			}
		} else {
			a.City = strPtr(stZip)
		}
	}

	if a.Street != nil {
		if um := unitRe.FindString(*a.Street); um != "" {
			unit := strings.ReplaceAll(um, "Suite", "Ste")
			a.Unit = strPtr(unit)
			street := unitRe.ReplaceAllString(*a.Street, "")
			street = strings.TrimSpace(strings.ReplaceAll(street, "  ", " "))
			a.Street = strPtr(street)
		}
	}
	return a
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
