package parse

import "strings"

// roiTruePhrases are the verdict spellings the screening sheet uses.
var roiTruePhrases = []string{
	"yes! assumable investor",
	"yes! potential assumable investor",
	"yes! fha",
	"yes! va",
	"yes! conventional",
	"yes assumable investor",
	"yes fha",
	"yes va",
}

// ROI extracts the pass verdict and screening category from an ROI cell.
// Category matching is substring-based in priority order; the verdict is
// true for any of the known "yes!" phrases or a leading "yes", false for a
// leading "no", otherwise unknown.
func ROI(raw string) (pass *bool, category *string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	sl := strings.ToLower(s)

	switch {
	case strings.Contains(sl, "assumable investor"):
		category = strPtr("Assumable Investor")
	case strings.Contains(sl, "potential assumable investor"):
		category = strPtr("Potential Assumable Investor")
	case strings.Contains(sl, "fha"):
		category = strPtr("FHA")
	case strings.Contains(sl, "va"):
		category = strPtr("VA")
	case strings.Contains(sl, "conventional") || strings.Contains(sl, "conv"):
		category = strPtr("CONV")
	}

	for _, phrase := range roiTruePhrases {
		if strings.Contains(sl, phrase) {
			return boolPtr(true), category
		}
	}
	if strings.HasPrefix(sl, "yes") {
		return boolPtr(true), category
	}
	if strings.HasPrefix(sl, "no") {
		return boolPtr(false), category
	}
	return nil, category
}
