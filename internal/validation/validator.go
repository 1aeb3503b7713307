// Package validation runs post-parse sanity checks over normalized rows.
// Findings are warnings for the debug report, never gates: a suspect row
// still flows through reconciliation with the suspect fields intact.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/peacachucarrots/assumable-properties/internal/models"
)

// RowValidator checks normalized rows against the struct tags on
// models.Row plus a few cross-field rules the tags cannot express.
type RowValidator struct {
	validate *validator.Validate
}

// NewRowValidator creates a validator for normalized rows.
func NewRowValidator() *RowValidator {
	return &RowValidator{validate: validator.New()}
}

// Check returns human-readable warnings for a row, empty when clean.
func (v *RowValidator) Check(row *models.Row) []string {
	var warnings []string

	if err := v.validate.Struct(row); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				warnings = append(warnings, fmt.Sprintf("field %s failed %q check", fe.Field(), fe.Tag()))
			}
		} else {
			warnings = append(warnings, err.Error())
		}
	}

	if row.InterestRate != nil {
		if rate, _ := row.InterestRate.Float64(); rate < 0 || rate > 25 {
			warnings = append(warnings, fmt.Sprintf("interest rate %s%% outside plausible range", row.InterestRate))
		}
	}
	if row.AskingPrice != nil && row.AskingPrice.IsNegative() {
		warnings = append(warnings, "negative asking price")
	}
	if row.Balance != nil && row.Balance.IsNegative() {
		warnings = append(warnings, "negative loan balance")
	}
	if row.HasAddress() && !row.FullAddress() {
		warnings = append(warnings, "partial address; row cannot be geocoded")
	}

	return warnings
}
