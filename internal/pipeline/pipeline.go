// Package pipeline is the reconciliation engine: it walks normalized sheet
// rows and resolves each one into realtor, property, loan, listing, price,
// analysis, and response records, creating or coalesce-updating as the
// identity keys dictate.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peacachucarrots/assumable-properties/internal/geocode"
	"github.com/peacachucarrots/assumable-properties/internal/models"
	"github.com/peacachucarrots/assumable-properties/internal/parse"
	"github.com/peacachucarrots/assumable-properties/internal/validation"
)

// NegativeEquityMode decides what lands in equity_to_cover when the sheet
// carries a negative value.
type NegativeEquityMode string

const (
	// NegativeEquityNull stores NULL.
	NegativeEquityNull NegativeEquityMode = "null"
	// NegativeEquitySkip abandons all remaining stages for the row.
	NegativeEquitySkip NegativeEquityMode = "skip"
	// NegativeEquityZero stores 0.
	NegativeEquityZero NegativeEquityMode = "zero"
	// NegativeEquityAbs stores the absolute value.
	NegativeEquityAbs NegativeEquityMode = "abs"
)

// ParseNegativeEquityMode validates a CLI flag value.
func ParseNegativeEquityMode(s string) (NegativeEquityMode, error) {
	switch NegativeEquityMode(s) {
	case NegativeEquityNull, NegativeEquitySkip, NegativeEquityZero, NegativeEquityAbs:
		return NegativeEquityMode(s), nil
	}
	return "", fmt.Errorf("invalid negative-equity mode %q (want null|skip|zero|abs)", s)
}

// Store is the per-entity datastore contract the engine writes through.
// The row-transaction methods scope each row's writes so a failing row
// rolls back alone. db.Tx implements this against Postgres; tests use an
// in-memory fake.
type Store interface {
	BeginRow(ctx context.Context) error
	CommitRow(ctx context.Context) error
	RollbackRow(ctx context.Context) error

	FindRealtor(ctx context.Context, name string) (int64, bool, error)
	CreateRealtor(ctx context.Context, name string) (int64, error)

	FindProperty(ctx context.Context, key models.PropertyKey) (int64, bool, error)
	CreateProperty(ctx context.Context, p *models.Property) (int64, error)
	UpdatePropertyFacts(ctx context.Context, id int64, beds *int, baths *decimal.Decimal, sqft *int, hoaAmount *decimal.Decimal, hoaFreq *string) error
	UpdateCoordinates(ctx context.Context, id int64, lat, lon float64) error

	FindListing(ctx context.Context, propertyID, realtorID int64, mlsLink *string) (int64, bool, error)
	CreateListing(ctx context.Context, l *models.Listing) (int64, error)
	UpdateListing(ctx context.Context, id int64, dateAdded *time.Time, mlsID, mlsStatus *string, equity *decimal.Decimal, sentToClients *bool) error

	FindLoan(ctx context.Context, propertyID int64) (int64, bool, error)
	CreateLoan(ctx context.Context, l *models.Loan) error
	UpdateLoan(ctx context.Context, propertyID int64, loanType *string, rate, balance, piti *decimal.Decimal, servicer *string, investorAllowed *bool) error
	UpdateLoanBalance(ctx context.Context, propertyID int64, balance decimal.Decimal) error

	PriceExists(ctx context.Context, listingID int64, price decimal.Decimal, effectiveDate time.Time) (bool, error)
	InsertPrice(ctx context.Context, listingID int64, effectiveDate time.Time, price decimal.Decimal) error

	FindLatestAnalysis(ctx context.Context, listingID int64, url *string) (int64, bool, error)
	CreateAnalysis(ctx context.Context, a *models.Analysis) error
	UpdateAnalysis(ctx context.Context, id int64, url, roiCategory *string, roiPass, runComplete *bool) error

	InsertResponse(ctx context.Context, listingID int64, author, noteText string) error
}

// Geocoder is the address-to-coordinates capability. Implementations fail
// soft by returning nil.
type Geocoder interface {
	Geocode(ctx context.Context, street, city, state, zip string, unit *string) *geocode.Coordinates
}

// Options configures one ingest run.
type Options struct {
	NegativeEquity NegativeEquityMode
	SkipBackfill   bool
	DryRun         bool // backfill only; the main load still writes
	Debug          bool
}

// DefaultOptions returns the default run options.
func DefaultOptions() Options {
	return Options{NegativeEquity: NegativeEquityNull}
}

// Input is one run's worth of normalized rows plus what the column
// resolver managed to find; the backfill pass needs to know whether the
// address and balance columns resolved at all.
type Input struct {
	Rows             []models.Row
	HasAddressColumn bool
	HasBalanceColumn bool
}

// Report aggregates what a run did.
type Report struct {
	RunID            string
	RowsProcessed    int
	RowsSkipped      int
	RowErrors        int
	BackfillRan      bool
	BackfillUpdated  int
	BackfillInserted int
	BackfillSkipped  int
}

// Pipeline drives one run against an open transaction.
type Pipeline struct {
	opts      Options
	store     Store
	geocoder  Geocoder
	validator *validation.RowValidator
}

// New creates a pipeline writing through store. geocoder may be nil when
// no provider is configured.
func New(store Store, geocoder Geocoder, opts Options) *Pipeline {
	return &Pipeline{
		opts:      opts,
		store:     store,
		geocoder:  geocoder,
		validator: validation.NewRowValidator(),
	}
}

// Run processes every row, isolating failures per row, then runs the
// balance backfill pass unless disabled. The error return is reserved for
// run-fatal transaction problems; ordinary row failures are counted and
// logged.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Report, error) {
	report := &Report{RunID: uuid.NewString()[:8]}
	log.Printf("Run %s: processing %d rows", report.RunID, len(in.Rows))

	for i := range in.Rows {
		row := &in.Rows[i]

		if p.opts.Debug {
			for _, w := range p.validator.Check(row) {
				log.Printf("Row %d warning: %s", row.Index, w)
			}
		}

		if err := p.store.BeginRow(ctx); err != nil {
			return report, err
		}
		skipped, err := p.processRow(ctx, row)
		if err != nil {
			if rbErr := p.store.RollbackRow(ctx); rbErr != nil {
				return report, rbErr
			}
			log.Printf("Row %d error: %v", row.Index, err)
			report.RowErrors++
			continue
		}
		if err := p.store.CommitRow(ctx); err != nil {
			return report, err
		}
		if skipped {
			report.RowsSkipped++
		} else {
			report.RowsProcessed++
		}
	}

	if p.opts.SkipBackfill {
		log.Printf("Run %s: backfill pass skipped by flag", report.RunID)
	} else {
		updated, inserted, skipped, err := p.backfillBalances(ctx, in)
		if err != nil {
			return report, err
		}
		report.BackfillRan = true
		report.BackfillUpdated = updated
		report.BackfillInserted = inserted
		report.BackfillSkipped = skipped
	}

	log.Printf("Run %s: %d processed, %d skipped, %d errors",
		report.RunID, report.RowsProcessed, report.RowsSkipped, report.RowErrors)
	return report, nil
}

// processRow executes the stage sequence for one row inside its savepoint.
// The skipped return means the negative-equity policy abandoned the row's
// remaining stages; whatever was already written stays.
func (p *Pipeline) processRow(ctx context.Context, row *models.Row) (skipped bool, err error) {
	// Stage 1: realtor. Co-listed names are all created; the listing
	// belongs to the first.
	var realtorID int64
	var haveRealtor bool
	if row.RealtorName != nil {
		for i, name := range parse.SplitRealtors(*row.RealtorName) {
			id, found, err := p.store.FindRealtor(ctx, name)
			if err != nil {
				return false, err
			}
			if !found {
				if id, err = p.store.CreateRealtor(ctx, name); err != nil {
					return false, err
				}
			}
			if i == 0 {
				realtorID, haveRealtor = id, true
			}
		}
	}

	// Stage 2: property.
	var propertyID int64
	var haveProperty bool
	if row.HasAddress() {
		prop := &models.Property{
			Street: row.Street, Unit: row.Unit, City: row.City,
			State: row.State, Zip: row.Zip,
			Beds: row.Beds, Baths: row.Baths, Sqft: row.Sqft,
			HOAAmount: row.HOAAmount, HOAFrequency: row.HOAFrequency,
		}
		id, found, err := p.store.FindProperty(ctx, prop.Key())
		if err != nil {
			return false, err
		}
		if found {
			if err := p.store.UpdatePropertyFacts(ctx, id, row.Beds, row.Baths, row.Sqft, row.HOAAmount, row.HOAFrequency); err != nil {
				return false, err
			}
		} else {
			if id, err = p.store.CreateProperty(ctx, prop); err != nil {
				return false, err
			}
		}
		propertyID, haveProperty = id, true
	}

	// Stage 3: geocoding, only with a complete address. The store guards
	// against rewriting identical coordinates.
	if haveProperty && row.FullAddress() && p.geocoder != nil {
		coords := p.geocoder.Geocode(ctx, *row.Street, *row.City, *row.State, *row.Zip, row.Unit)
		if coords != nil {
			if err := p.store.UpdateCoordinates(ctx, propertyID, coords.Lat, coords.Lon); err != nil {
				return false, err
			}
		}
	}

	// Stage 4: listing, with the negative-equity policy applied first.
	var listingID int64
	var haveListing bool
	if haveProperty && haveRealtor {
		equity, skip := p.equityValue(row.Equity)
		if skip {
			return true, nil
		}

		id, found, err := p.store.FindListing(ctx, propertyID, realtorID, row.MLSLink)
		if err != nil {
			return false, err
		}
		if found {
			if err := p.store.UpdateListing(ctx, id, row.DateAdded, row.MLSID, row.MLSStatus, equity, row.SentToClients); err != nil {
				return false, err
			}
		} else {
			id, err = p.store.CreateListing(ctx, &models.Listing{
				PropertyID: propertyID, RealtorID: realtorID,
				DateAdded: row.DateAdded, MLSID: row.MLSID, MLSLink: row.MLSLink,
				MLSStatus: row.MLSStatus, EquityToCover: equity, SentToClients: row.SentToClients,
			})
			if err != nil {
				return false, err
			}
		}
		listingID, haveListing = id, true
	}

	// Stage 5: loan. Missing loan type defaults to CONV here, not in the
	// parser.
	if haveProperty {
		loanType := parse.LoanConv
		if row.LoanType != nil {
			loanType = *row.LoanType
		}
		_, found, err := p.store.FindLoan(ctx, propertyID)
		if err != nil {
			return false, err
		}
		if found {
			if err := p.store.UpdateLoan(ctx, propertyID, &loanType, row.InterestRate, row.Balance, row.PITI, row.LoanServicer, row.InvestorOK); err != nil {
				return false, err
			}
		} else {
			err = p.store.CreateLoan(ctx, &models.Loan{
				PropertyID: propertyID, LoanType: &loanType,
				InterestRate: row.InterestRate, Balance: row.Balance,
				PITI: row.PITI, LoanServicer: row.LoanServicer, InvestorAllowed: row.InvestorOK,
			})
			if err != nil {
				return false, err
			}
		}
	}

	// Stage 6: price snapshot, suppressed when identical to one on file.
	if haveListing && row.AskingPrice != nil {
		effDate := time.Now().UTC().Truncate(24 * time.Hour)
		if row.DateAdded != nil {
			effDate = *row.DateAdded
		}
		exists, err := p.store.PriceExists(ctx, listingID, *row.AskingPrice, effDate)
		if err != nil {
			return false, err
		}
		if !exists {
			if err := p.store.InsertPrice(ctx, listingID, effDate, *row.AskingPrice); err != nil {
				return false, err
			}
		}
	}

	// Stage 7: analysis, keyed on (listing, url) with null-safe url match.
	if haveListing && (row.AnalysisLink != nil || row.DoneNumbers != nil || row.ROIPass != nil || row.ROICategory != nil) {
		id, found, err := p.store.FindLatestAnalysis(ctx, listingID, row.AnalysisLink)
		if err != nil {
			return false, err
		}
		if found {
			if err := p.store.UpdateAnalysis(ctx, id, row.AnalysisLink, row.ROICategory, row.ROIPass, row.DoneNumbers); err != nil {
				return false, err
			}
		} else {
			err = p.store.CreateAnalysis(ctx, &models.Analysis{
				ListingID: listingID, URL: row.AnalysisLink,
				ROICategory: row.ROICategory, ROIPass: row.ROIPass, RunComplete: row.DoneNumbers,
			})
			if err != nil {
				return false, err
			}
		}
	}

	// Stage 8: response notes, append-only.
	if haveListing && row.RealtorNote != nil {
		if err := p.store.InsertResponse(ctx, listingID, models.AuthorRealtor, *row.RealtorNote); err != nil {
			return false, err
		}
	}
	if haveListing && row.ReviewerNote != nil {
		if err := p.store.InsertResponse(ctx, listingID, models.AuthorReviewer, *row.ReviewerNote); err != nil {
			return false, err
		}
	}

	return false, nil
}

// equityValue applies the negative-equity policy. skip is only ever true
// in NegativeEquitySkip mode.
func (p *Pipeline) equityValue(equity *decimal.Decimal) (*decimal.Decimal, bool) {
	if equity == nil || !equity.IsNegative() {
		return equity, false
	}
	switch p.opts.NegativeEquity {
	case NegativeEquitySkip:
		return nil, true
	case NegativeEquityZero:
		zero := decimal.Zero
		return &zero, false
	case NegativeEquityAbs:
		abs := equity.Abs()
		return &abs, false
	default:
		return nil, false
	}
}
