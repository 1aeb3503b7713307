// Package loader is the public entry point: open a workbook, resolve its
// columns, and reconcile every row into the database in one transaction.
package loader

import (
	"context"
	"fmt"
	"log"

	"github.com/peacachucarrots/assumable-properties/internal/columns"
	"github.com/peacachucarrots/assumable-properties/internal/db"
	"github.com/peacachucarrots/assumable-properties/internal/geocode"
	"github.com/peacachucarrots/assumable-properties/internal/pipeline"
	"github.com/peacachucarrots/assumable-properties/internal/sheet"
)

// Options configures a Loader.
type Options struct {
	// DBConnString overrides the environment-derived connection settings.
	DBConnString string
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string

	NegativeEquity pipeline.NegativeEquityMode
	SkipBackfill   bool
	DryRun         bool
	Debug          bool

	// GoogleMapsKey enables geocoding; empty disables it.
	GoogleMapsKey string
	GeocodeQPS    float64
	// RedisAddr enables the cross-run geocode cache; empty disables it.
	RedisAddr string
}

// Loader owns the database pool and geocoding client for repeated ingests.
type Loader struct {
	opts     Options
	store    *db.Store
	geocoder *geocode.Client
}

// New connects to the database and prepares the geocoder.
func New(opts Options) (*Loader, error) {
	if opts.NegativeEquity == "" {
		opts.NegativeEquity = pipeline.DefaultOptions().NegativeEquity
	}

	store, err := db.Open(opts.DBConnString)
	if err != nil {
		return nil, err
	}

	var geocoder *geocode.Client
	if opts.GoogleMapsKey != "" {
		geocoder = geocode.New(opts.GoogleMapsKey, opts.GeocodeQPS)
		if opts.RedisAddr != "" {
			geocoder = geocoder.WithRedisCache(geocode.NewRedisCache(opts.RedisAddr))
		}
	} else {
		log.Printf("No Google Maps API key configured; geocoding disabled")
	}

	return &Loader{opts: opts, store: store, geocoder: geocoder}, nil
}

// ListSheets returns the workbook's sheet names.
func (l *Loader) ListSheets(path string) ([]string, error) {
	return sheet.ListSheets(path)
}

// ListSheetNames inspects a workbook without a database connection.
func ListSheetNames(path string) ([]string, error) {
	return sheet.ListSheets(path)
}

// Ingest runs one full load of the workbook at path: read, resolve,
// reconcile, backfill, commit. Row-level failures are absorbed into the
// report; the returned error means the run itself could not complete and
// nothing was committed.
func (l *Loader) Ingest(ctx context.Context, path string) (*pipeline.Report, error) {
	s, err := sheet.Load(path, l.opts.Sheet)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded sheet %q: %d records", s.Name, len(s.Records))

	cfg := columns.DefaultConfig()
	resolved := cfg.Resolve(s.Headers, columns.Fields)
	if l.opts.Debug {
		printColumnReport(resolved)
	}

	rows := sheet.BuildRows(s, resolved)
	in := pipeline.Input{
		Rows:             rows,
		HasAddressColumn: resolved[columns.FieldAddress] != "",
		HasBalanceColumn: resolved[columns.FieldLoanBalance] != "",
	}

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.EnsureSchemaGuards(ctx); err != nil {
		tx.Rollback()
		return nil, err
	}

	popts := pipeline.Options{
		NegativeEquity: l.opts.NegativeEquity,
		SkipBackfill:   l.opts.SkipBackfill,
		DryRun:         l.opts.DryRun,
		Debug:          l.opts.Debug,
	}
	var g pipeline.Geocoder
	if l.geocoder != nil {
		g = l.geocoder
	}

	report, err := pipeline.New(tx, g, popts).Run(ctx, in)
	if err != nil {
		tx.Rollback()
		return report, fmt.Errorf("run aborted: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return report, err
	}
	return report, nil
}

// Close releases the database pool.
func (l *Loader) Close() error {
	return l.store.Close()
}

// printColumnReport logs the canonical-field-to-header mapping in sheet
// order so a drifted export is easy to diagnose.
func printColumnReport(resolved map[string]string) {
	log.Printf("Column resolution:")
	for _, f := range columns.Fields {
		header := resolved[f]
		if header == "" {
			header = "(unresolved)"
		}
		log.Printf("  %-45s -> %s", f, header)
	}
}
