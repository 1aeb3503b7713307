package parse

import (
	"regexp"
	"strings"
)

var (
	// mlsIDRe finds a digit run of 5+ preceded by "mls" or "listing".
	mlsIDRe = regexp.MustCompile(`(?i)(?:mls|listing)[^\d]*(\d{5,})`)
	// anyDigitsRe is the fallback: any bare digit run of 5+.
	anyDigitsRe = regexp.MustCompile(`(\d{5,})`)
)

// MLSID pulls an MLS identifier out of a listing URL.
func MLSID(link string) *string {
	s := strings.TrimSpace(link)
	if s == "" {
		return nil
	}
	if m := mlsIDRe.FindStringSubmatch(s); m != nil {
		return &m[1]
	}
	if m := anyDigitsRe.FindStringSubmatch(s); m != nil {
		return &m[1]
	}
	return nil
}
