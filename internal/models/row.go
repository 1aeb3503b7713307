package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is a single spreadsheet row after column resolution and field
// parsing. Nil means the source cell was absent, unresolved, or
// unparseable; downstream stages treat nil as "no information".
type Row struct {
	Index int `json:"index"`

	DateAdded   *time.Time `json:"date_added"`
	RealtorName *string    `json:"realtor_name"`
	MLSLink     *string    `json:"mls_link"`
	MLSID       *string    `json:"mls_id"`

	Street *string `json:"street"`
	Unit   *string `json:"unit"`
	City   *string `json:"city"`
	State  *string `json:"state" validate:"omitempty,len=2,alpha"`
	Zip    *string `json:"zip" validate:"omitempty,min=5"`

	LoanType     *string          `json:"loan_type" validate:"omitempty,oneof=VA FHA NVVA Maybe_NVVA CONV"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	PITI         *decimal.Decimal `json:"piti"`
	AskingPrice  *decimal.Decimal `json:"asking_price"`
	Balance      *decimal.Decimal `json:"balance"`
	Equity       *decimal.Decimal `json:"equity"`
	LoanServicer *string          `json:"loan_servicer"`
	InvestorOK   *bool            `json:"investor_ok"`

	Beds         *int             `json:"beds" validate:"omitempty,gte=0,lte=50"`
	Baths        *decimal.Decimal `json:"baths"`
	Sqft         *int             `json:"sqft" validate:"omitempty,gte=0"`
	HOAAmount    *decimal.Decimal `json:"hoa_amount"`
	HOAFrequency *string          `json:"hoa_frequency" validate:"omitempty,oneof=Monthly Quarterly Semi-Annual Annual"`
	MLSStatus    *string          `json:"mls_status"`

	DoneNumbers   *bool   `json:"done_numbers"`
	ROIPass       *bool   `json:"roi_pass"`
	ROICategory   *string `json:"roi_category"`
	SentToClients *bool   `json:"sent_to_clients"`
	AnalysisLink  *string `json:"analysis_link"`

	RealtorNote  *string `json:"realtor_note"`
	ReviewerNote *string `json:"reviewer_note"`
}

// HasAddress reports whether any address component was recovered.
func (r *Row) HasAddress() bool {
	return r.Street != nil || r.City != nil || r.State != nil || r.Zip != nil
}

// FullAddress reports whether all four components needed for geocoding
// are present.
func (r *Row) FullAddress() bool {
	return r.Street != nil && r.City != nil && r.State != nil && r.Zip != nil
}
