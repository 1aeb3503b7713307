// Package columns maps a sheet's messy header row onto the canonical
// field set the loader understands.
package columns

import "strings"

// Canonical field labels. These are the headers the sheet family is
// supposed to carry; real exports drift, which is what Resolve absorbs.
const (
	FieldDateAdded    = "Date Added"
	FieldRealtorName  = "Realtor Name"
	FieldMLSLink      = "MLS Listing link"
	FieldAddress      = "Property Address"
	FieldLoanType     = "Type of Assumable (FHA, VA, Non Veteran VA)"
	FieldInterestRate = "Assumable Interest Rate"
	FieldPITI         = "PITI"
	FieldAskingPrice  = "Asking Price"
	FieldLoanBalance  = "Assumable Loan Balance"
	FieldEquity       = "Equity To Cover"
	FieldRealtorNote  = "Response from Realtor/Seller"
	FieldDoneNumbers  = "Done running numbers?"
	FieldROI          = "Does it pass ROI number criteria?"
	FieldSentClients  = "Sent to clients"
	FieldAnalysisLink = "Link to Property Analysis"
	FieldBeds         = "Beds"
	FieldBaths        = "Baths"
	FieldSqft         = "Sqft"
	FieldHOA          = "HOA/Month"
	FieldMLSStatus    = "MLS Status"
	FieldLoanServicer = "Loan Servicer"
	FieldInvestorOK   = "Allow investor to assume the VA loan?"
	FieldReviewerNote = "Full response from Amy"
)

// Fields is the canonical field list in sheet order.
var Fields = []string{
	FieldDateAdded, FieldRealtorName, FieldMLSLink, FieldAddress,
	FieldLoanType, FieldInterestRate, FieldPITI, FieldAskingPrice,
	FieldLoanBalance, FieldEquity, FieldRealtorNote, FieldDoneNumbers,
	FieldROI, FieldSentClients, FieldAnalysisLink, FieldBeds, FieldBaths,
	FieldSqft, FieldHOA, FieldMLSStatus, FieldLoanServicer,
	FieldInvestorOK, FieldReviewerNote,
}

// Config carries the immutable matching tables. Tokens maps a lowercased
// canonical label to the keywords scored during fuzzy resolution; a header
// is accepted when it contains at least max(2, len(tokens)-1) of them.
type Config struct {
	Tokens map[string][]string
}

// DefaultConfig returns the curated token lists for the known sheet family.
func DefaultConfig() Config {
	return Config{Tokens: map[string][]string{
		"date added":           {"date", "added"},
		"realtor name":         {"realtor", "agent", "broker", "name"},
		"mls listing link":     {"mls", "listing", "link", "url"},
		"property address":     {"property", "address", "addr", "street"},
		"type of assumable (fha, va, non veteran va)": {"type", "assumable", "va", "fha", "loan"},
		"assumable interest rate":                     {"rate", "interest", "assumable", "apr"},
		"piti":                                        {"piti", "payment"},
		"asking price":                                {"price", "asking", "list"},
		"assumable loan balance":                      {"assumable", "balance", "loan", "remaining", "principal"},
		"equity to cover":                             {"equity"},
		"response from realtor/seller":                {"response", "remarks", "realtor", "seller", "agent", "comment", "note"},
		"done running numbers?":                       {"done", "numbers", "complete", "finished", "calc", "analy"},
		"does it pass roi number criteria?":           {"roi", "pass", "criteria", "investor", "fha", "va"},
		"sent to clients":                             {"sent", "clients", "emailed", "notified", "shared"},
		"link to property analysis":                   {"analysis", "link", "sheet", "google", "docs"},
		"beds":                                        {"beds", "br", "bedrooms"},
		"baths":                                       {"baths", "ba", "bathrooms"},
		"sqft":                                        {"sqft", "square feet", "sf"},
		"hoa/month":                                   {"hoa"},
		"mls status":                                  {"mls", "status"},
		"loan servicer":                               {"servicer", "loan servicer"},
		"allow investor to assume the va loan?":       {"investor", "assume", "va", "allowed", "permit"},
		"full response from amy":                      {"amy", "response", "note", "comment"},
	}}
}

// Normalize collapses embedded newlines to spaces and trims each header.
func Normalize(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.ReplaceAll(h, "\n", " ")
		h = strings.ReplaceAll(h, "\r", " ")
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// Match finds the actual header for one canonical field, or "" if none.
// Resolution order: case-insensitive exact match, whitespace-collapsed
// match, then token-overlap scoring against the configured keyword list.
func (c Config) Match(headers []string, want string) string {
	wantLower := strings.ToLower(want)
	for _, h := range headers {
		if strings.ToLower(h) == wantLower {
			return h
		}
	}

	wantCollapsed := collapse(wantLower)
	for _, h := range headers {
		if collapse(strings.ToLower(h)) == wantCollapsed {
			return h
		}
	}

	if tokens, ok := c.Tokens[wantLower]; ok {
		need := len(tokens) - 1
		if need < 2 {
			need = 2
		}
		for _, h := range headers {
			hl := strings.ToLower(h)
			hits := 0
			for _, t := range tokens {
				if strings.Contains(hl, t) {
					hits++
				}
			}
			if hits >= need {
				return h
			}
		}
	}
	return ""
}

// Resolve maps every canonical field to its actual header. Fields with no
// acceptable header map to "" and every dependent value parses to absent.
func (c Config) Resolve(headers []string, want []string) map[string]string {
	resolved := make(map[string]string, len(want))
	for _, w := range want {
		resolved[w] = c.Match(headers, w)
	}
	return resolved
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
