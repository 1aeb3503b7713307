package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HOA billing cadences accepted by the property table.
const (
	FreqMonthly    = "Monthly"
	FreqQuarterly  = "Quarterly"
	FreqSemiAnnual = "Semi-Annual"
	FreqAnnual     = "Annual"
)

// Response authors accepted by the response table check constraint.
const (
	AuthorRealtor  = "Realtor/Seller"
	AuthorReviewer = "Amy"
)

// Realtor is an agent or broker attached to one or more listings.
// Identity key: name (unique).
type Realtor struct {
	ID   int64  `json:"realtor_id" db:"realtor_id"`
	Name string `json:"name" db:"name" validate:"required"`
}

// PropertyKey is the identity tuple for a property. Absent components
// compare as empty strings, matching the COALESCE('') lookups in SQL.
type PropertyKey struct {
	Street string
	Unit   string
	City   string
	State  string
	Zip    string
}

// Property is a physical address with its descriptive facts. All facts are
// coalesce-updated: an absent incoming value never clears a stored one.
type Property struct {
	ID           int64            `json:"property_id" db:"property_id"`
	Street       *string          `json:"street" db:"street"`
	Unit         *string          `json:"unit" db:"unit"`
	City         *string          `json:"city" db:"city"`
	State        *string          `json:"state" db:"state" validate:"omitempty,len=2"`
	Zip          *string          `json:"zip" db:"zip"`
	Beds         *int             `json:"beds" db:"beds" validate:"omitempty,gte=0"`
	Baths        *decimal.Decimal `json:"baths" db:"baths"`
	Sqft         *int             `json:"sqft" db:"sqft" validate:"omitempty,gte=0"`
	HOAAmount    *decimal.Decimal `json:"hoa_amount" db:"hoa_amount"`
	HOAFrequency *string          `json:"hoa_frequency" db:"hoa_frequency" validate:"omitempty,oneof=Monthly Quarterly Semi-Annual Annual"`
	Latitude     *float64         `json:"latitude" db:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64         `json:"longitude" db:"longitude" validate:"omitempty,longitude"`
}

// Key returns the property's identity tuple with nil components coalesced
// to empty strings.
func (p *Property) Key() PropertyKey {
	return PropertyKey{
		Street: deref(p.Street),
		Unit:   deref(p.Unit),
		City:   deref(p.City),
		State:  deref(p.State),
		Zip:    deref(p.Zip),
	}
}

// Loan is the assumable loan on a property. One loan per property.
type Loan struct {
	ID              int64            `json:"loan_id" db:"loan_id"`
	PropertyID      int64            `json:"property_id" db:"property_id" validate:"required"`
	LoanType        *string          `json:"loan_type" db:"loan_type"`
	InterestRate    *decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	Balance         *decimal.Decimal `json:"balance" db:"balance"`
	PITI            *decimal.Decimal `json:"piti" db:"piti"`
	LoanServicer    *string          `json:"loan_servicer" db:"loan_servicer"`
	InvestorAllowed *bool            `json:"investor_allowed" db:"investor_allowed"`
}

// Listing ties a property to the realtor marketing it.
// Identity key: (property_id, realtor_id, mls_link) with empty-string
// coalescing on the link.
type Listing struct {
	ID            int64            `json:"listing_id" db:"listing_id"`
	PropertyID    int64            `json:"property_id" db:"property_id" validate:"required"`
	RealtorID     int64            `json:"realtor_id" db:"realtor_id" validate:"required"`
	DateAdded     *time.Time       `json:"date_added" db:"date_added"`
	MLSID         *string          `json:"mls_id" db:"mls_id"`
	MLSLink       *string          `json:"mls_link" db:"mls_link"`
	MLSStatus     *string          `json:"mls_status" db:"mls_status"`
	EquityToCover *decimal.Decimal `json:"equity_to_cover" db:"equity_to_cover"`
	SentToClients *bool            `json:"sent_to_clients" db:"sent_to_clients"`
}

// PriceSnapshot is an append-only asking-price observation for a listing.
type PriceSnapshot struct {
	ID            int64           `json:"price_id" db:"price_id"`
	ListingID     int64           `json:"listing_id" db:"listing_id" validate:"required"`
	EffectiveDate time.Time       `json:"effective_date" db:"effective_date"`
	Price         decimal.Decimal `json:"price" db:"price"`
}

// Analysis records an ROI screening run against a listing.
type Analysis struct {
	ID          int64      `json:"analysis_id" db:"analysis_id"`
	ListingID   int64      `json:"listing_id" db:"listing_id" validate:"required"`
	URL         *string    `json:"url" db:"url"`
	ROICategory *string    `json:"roi_category" db:"roi_category"`
	ROIPass     *bool      `json:"roi_pass" db:"roi_pass"`
	RunComplete *bool      `json:"run_complete" db:"run_complete"`
	RunDate     *time.Time `json:"run_date" db:"run_date"`
}

// Response is an append-only free-text note against a listing.
type Response struct {
	ID        int64     `json:"response_id" db:"response_id"`
	ListingID int64     `json:"listing_id" db:"listing_id" validate:"required"`
	Author    string    `json:"author" db:"author" validate:"required,oneof=Realtor/Seller Amy"`
	NoteText  string    `json:"note_text" db:"note_text" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
