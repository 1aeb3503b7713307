package pipeline

import (
	"context"
	"log"

	"github.com/peacachucarrots/assumable-properties/internal/models"
	"github.com/peacachucarrots/assumable-properties/internal/parse"
)

// backfillBalances is the second pass: rows that carry a loan balance but
// whose property predates balance tracking get their loan record patched.
// Properties are matched on the exact address key only; nothing is created
// except a stub loan when a matched property has none.
func (p *Pipeline) backfillBalances(ctx context.Context, in Input) (updated, inserted, skipped int, err error) {
	if !in.HasAddressColumn || !in.HasBalanceColumn {
		log.Printf("Backfill: missing column mapping for address or balance; skipping.")
		return 0, 0, 0, nil
	}

	for i := range in.Rows {
		row := &in.Rows[i]
		if row.Balance == nil || !row.HasAddress() {
			skipped++
			continue
		}

		key := models.PropertyKey{}
		if row.Street != nil {
			key.Street = *row.Street
		}
		if row.Unit != nil {
			key.Unit = *row.Unit
		}
		if row.City != nil {
			key.City = *row.City
		}
		if row.State != nil {
			key.State = *row.State
		}
		if row.Zip != nil {
			key.Zip = *row.Zip
		}

		propertyID, found, ferr := p.store.FindProperty(ctx, key)
		if ferr != nil {
			return updated, inserted, skipped, ferr
		}
		if !found {
			skipped++
			continue
		}

		_, hasLoan, ferr := p.store.FindLoan(ctx, propertyID)
		if ferr != nil {
			return updated, inserted, skipped, ferr
		}

		if p.opts.DryRun {
			if hasLoan {
				updated++
			} else {
				inserted++
			}
			continue
		}

		if hasLoan {
			if uerr := p.store.UpdateLoanBalance(ctx, propertyID, *row.Balance); uerr != nil {
				return updated, inserted, skipped, uerr
			}
			updated++
		} else {
			loanType := parse.LoanConv
			cerr := p.store.CreateLoan(ctx, &models.Loan{
				PropertyID: propertyID,
				LoanType:   &loanType,
				Balance:    row.Balance,
			})
			if cerr != nil {
				return updated, inserted, skipped, cerr
			}
			inserted++
		}
	}

	if p.opts.DryRun {
		log.Printf("Backfill (dry run): would update %d, insert %d stubs, skip %d", updated, inserted, skipped)
	} else {
		log.Printf("Backfill: updated %d, inserted %d stubs, skipped %d", updated, inserted, skipped)
	}
	return updated, inserted, skipped, nil
}
