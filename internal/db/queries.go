package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/peacachucarrots/assumable-properties/internal/models"
)

// EnsureSchemaGuards brings an older database up to the current contract:
// the HOA columns on property and the listing identity index. The index
// guard is best-effort since existing duplicate rows would make it fail.
func (t *Tx) EnsureSchemaGuards(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, `
		DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM information_schema.columns
			               WHERE table_name='property' AND column_name='hoa_amount') THEN
				ALTER TABLE property ADD COLUMN hoa_amount numeric(12,2);
			END IF;
			IF NOT EXISTS (SELECT 1 FROM information_schema.columns
			               WHERE table_name='property' AND column_name='hoa_frequency') THEN
				ALTER TABLE property ADD COLUMN hoa_frequency text
					CHECK (hoa_frequency in ('Monthly','Quarterly','Semi-Annual','Annual'));
			END IF;
		END $$;
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure hoa columns: %w", err)
	}

	_, err = t.tx.ExecContext(ctx, `
		DO $$ BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_indexes WHERE schemaname='public' AND indexname='uniq_listing_property_realtor_link'
			) THEN
				CREATE UNIQUE INDEX uniq_listing_property_realtor_link
				ON listing (property_id, realtor_id, COALESCE(mls_link, ''));
			END IF;
		END $$;
	`)
	if err != nil {
		log.Printf("Listing identity index guard failed (continuing): %v", err)
	}
	return nil
}

// FindRealtor looks a realtor up by exact name.
func (t *Tx) FindRealtor(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, `SELECT realtor_id FROM realtor WHERE name=$1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find realtor: %w", err)
	}
	return id, true, nil
}

// CreateRealtor inserts a realtor and returns its id.
func (t *Tx) CreateRealtor(ctx context.Context, name string) (int64, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, `INSERT INTO realtor(name) VALUES ($1) RETURNING realtor_id`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to create realtor: %w", err)
	}
	return id, nil
}

// FindProperty resolves a property by its identity tuple, comparing
// absent components as empty strings on both sides.
func (t *Tx) FindProperty(ctx context.Context, key models.PropertyKey) (int64, bool, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, `
		SELECT property_id FROM property
		 WHERE COALESCE(street,'')=$1
		   AND COALESCE(unit,'')=$2
		   AND COALESCE(city,'')=$3
		   AND COALESCE(state,'')=$4
		   AND COALESCE(zip,'')=$5
	`, key.Street, key.Unit, key.City, key.State, key.Zip)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find property: %w", err)
	}
	return id, true, nil
}

// CreateProperty inserts a property with its facts and returns its id.
func (t *Tx) CreateProperty(ctx context.Context, p *models.Property) (int64, error) {
	rows, err := sqlx.NamedQueryContext(ctx, t.tx, `
		INSERT INTO property (street, city, state, zip, unit, beds, baths, sqft, hoa_amount, hoa_frequency)
		VALUES (:street, :city, :state, :zip, :unit, :beds, :baths, :sqft, :hoa_amount, :hoa_frequency)
		RETURNING property_id
	`, p)
	if err != nil {
		return 0, fmt.Errorf("failed to create property: %w", err)
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan property id: %w", err)
		}
	}
	return id, nil
}

// UpdatePropertyFacts coalesce-updates the mutable numeric and HOA fields:
// incoming nils never clear stored values.
func (t *Tx) UpdatePropertyFacts(ctx context.Context, id int64, beds *int, baths *decimal.Decimal, sqft *int, hoaAmount *decimal.Decimal, hoaFreq *string) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE property SET
		  beds = COALESCE($1, beds),
		  baths = COALESCE($2, baths),
		  sqft = COALESCE($3, sqft),
		  hoa_amount = COALESCE($4, hoa_amount),
		  hoa_frequency = COALESCE($5, hoa_frequency)
		WHERE property_id=$6
	`, beds, baths, sqft, hoaAmount, hoaFreq, id)
	if err != nil {
		return fmt.Errorf("failed to update property facts: %w", err)
	}
	return nil
}

// UpdateCoordinates stores geocoded coordinates, writing only when they
// differ from what is already stored.
func (t *Tx) UpdateCoordinates(ctx context.Context, id int64, lat, lon float64) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE property
		   SET latitude = $1, longitude = $2
		 WHERE property_id=$3
		   AND (latitude IS DISTINCT FROM $1 OR longitude IS DISTINCT FROM $2)
	`, lat, lon, id)
	if err != nil {
		return fmt.Errorf("failed to update coordinates: %w", err)
	}
	return nil
}

// FindListing resolves a listing by its identity tuple, treating an
// absent MLS link as the empty string.
func (t *Tx) FindListing(ctx context.Context, propertyID, realtorID int64, mlsLink *string) (int64, bool, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, `
		SELECT listing_id FROM listing
		 WHERE property_id=$1 AND realtor_id=$2 AND COALESCE(mls_link,'')=COALESCE($3,'')
	`, propertyID, realtorID, mlsLink)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find listing: %w", err)
	}
	return id, true, nil
}

// CreateListing inserts a listing and returns its id.
func (t *Tx) CreateListing(ctx context.Context, l *models.Listing) (int64, error) {
	rows, err := sqlx.NamedQueryContext(ctx, t.tx, `
		INSERT INTO listing (property_id, realtor_id, date_added, mls_id, mls_link, mls_status, equity_to_cover, sent_to_clients)
		VALUES (:property_id, :realtor_id, :date_added, :mls_id, :mls_link, :mls_status, :equity_to_cover, :sent_to_clients)
		RETURNING listing_id
	`, l)
	if err != nil {
		return 0, fmt.Errorf("failed to create listing: %w", err)
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan listing id: %w", err)
		}
	}
	return id, nil
}

// UpdateListing coalesce-updates the mutable listing fields.
func (t *Tx) UpdateListing(ctx context.Context, id int64, dateAdded *time.Time, mlsID, mlsStatus *string, equity *decimal.Decimal, sentToClients *bool) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE listing SET
		  date_added = COALESCE($1, date_added),
		  mls_id = COALESCE($2, mls_id),
		  mls_status = COALESCE($3, mls_status),
		  equity_to_cover = COALESCE($4, equity_to_cover),
		  sent_to_clients = COALESCE($5, sent_to_clients)
		WHERE listing_id=$6
	`, dateAdded, mlsID, mlsStatus, equity, sentToClients, id)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return nil
}

// FindLoan resolves a property's loan; one loan per property.
func (t *Tx) FindLoan(ctx context.Context, propertyID int64) (int64, bool, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, `SELECT loan_id FROM loan WHERE property_id=$1`, propertyID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find loan: %w", err)
	}
	return id, true, nil
}

// CreateLoan inserts a loan for a property.
func (t *Tx) CreateLoan(ctx context.Context, l *models.Loan) error {
	_, err := sqlx.NamedExecContext(ctx, t.tx, `
		INSERT INTO loan (property_id, loan_type, interest_rate, balance, piti, loan_servicer, investor_allowed)
		VALUES (:property_id, :loan_type, :interest_rate, :balance, :piti, :loan_servicer, :investor_allowed)
	`, l)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// UpdateLoan coalesce-updates a property's loan.
func (t *Tx) UpdateLoan(ctx context.Context, propertyID int64, loanType *string, rate, balance, piti *decimal.Decimal, servicer *string, investorAllowed *bool) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE loan SET
		  loan_type = COALESCE($1, loan_type),
		  interest_rate = COALESCE($2, interest_rate),
		  balance = COALESCE($3, balance),
		  piti = COALESCE($4, piti),
		  loan_servicer = COALESCE($5, loan_servicer),
		  investor_allowed = COALESCE($6, investor_allowed)
		WHERE property_id=$7
	`, loanType, rate, balance, piti, servicer, investorAllowed, propertyID)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	return nil
}

// UpdateLoanBalance overwrites a loan's balance; used by the backfill pass.
func (t *Tx) UpdateLoanBalance(ctx context.Context, propertyID int64, balance decimal.Decimal) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE loan SET balance = $1 WHERE property_id = $2`, balance, propertyID)
	if err != nil {
		return fmt.Errorf("failed to update loan balance: %w", err)
	}
	return nil
}

// PriceExists reports whether an identical snapshot is already recorded.
func (t *Tx) PriceExists(ctx context.Context, listingID int64, price decimal.Decimal, effectiveDate time.Time) (bool, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, `
		SELECT price_id FROM price_history
		 WHERE listing_id=$1 AND price=$2 AND effective_date=$3
	`, listingID, price, effectiveDate)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check price history: %w", err)
	}
	return true, nil
}

// InsertPrice appends a price snapshot.
func (t *Tx) InsertPrice(ctx context.Context, listingID int64, effectiveDate time.Time, price decimal.Decimal) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO price_history (listing_id, effective_date, price)
		VALUES ($1, $2, $3)
	`, listingID, effectiveDate, price)
	if err != nil {
		return fmt.Errorf("failed to insert price snapshot: %w", err)
	}
	return nil
}

// FindLatestAnalysis resolves the most recent analysis for a listing and
// url, matching a nil url against NULL.
func (t *Tx) FindLatestAnalysis(ctx context.Context, listingID int64, url *string) (int64, bool, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, `
		SELECT analysis_id
		  FROM analysis
		 WHERE listing_id = $1
		   AND (($2::text IS NULL AND url IS NULL) OR url = $2)
		 ORDER BY run_date DESC, analysis_id DESC
		 LIMIT 1
	`, listingID, url)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find analysis: %w", err)
	}
	return id, true, nil
}

// CreateAnalysis inserts an analysis row.
func (t *Tx) CreateAnalysis(ctx context.Context, a *models.Analysis) error {
	_, err := sqlx.NamedExecContext(ctx, t.tx, `
		INSERT INTO analysis (listing_id, url, roi_category, roi_pass, run_complete)
		VALUES (:listing_id, :url, :roi_category, :roi_pass, :run_complete)
	`, a)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// UpdateAnalysis coalesce-updates an existing analysis row.
func (t *Tx) UpdateAnalysis(ctx context.Context, id int64, url, roiCategory *string, roiPass, runComplete *bool) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE analysis
		   SET url = COALESCE($1, url),
		       roi_category = COALESCE($2, roi_category),
		       roi_pass = COALESCE($3, roi_pass),
		       run_complete = COALESCE($4, run_complete)
		 WHERE analysis_id = $5
	`, url, roiCategory, roiPass, runComplete, id)
	if err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}
	return nil
}

// InsertResponse appends a note against a listing.
func (t *Tx) InsertResponse(ctx context.Context, listingID int64, author, noteText string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO response (listing_id, author, note_text)
		VALUES ($1, $2, $3)
	`, listingID, author, noteText)
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}
