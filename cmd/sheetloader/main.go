// Command sheetloader ingests an assumable-listings workbook into Postgres.
//
// Usage:
//
//	sheetloader [flags] <workbook.xlsx>
//
// Connection settings come from the environment (or a .env file); the
// GOOGLE_MAPS_KEY and REDIS_ADDR variables enable geocoding and its
// cross-run cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"

	"github.com/peacachucarrots/assumable-properties/internal/geocode"
	"github.com/peacachucarrots/assumable-properties/internal/pipeline"
	"github.com/peacachucarrots/assumable-properties/pkg/loader"
)

func main() {
	var (
		sheetName    = flag.String("sheet", "", "worksheet name (default: first sheet)")
		dbConn       = flag.String("db", "", "Postgres connection string (default: from environment)")
		listSheets   = flag.Bool("list-sheets", false, "print the workbook's sheet names and exit")
		debug        = flag.Bool("debug", false, "print the column resolution report and row warnings")
		negEquity    = flag.String("on-negative-equity", "null", "negative equity policy: null|skip|zero|abs")
		skipBackfill = flag.Bool("skip-backfill", false, "skip the loan balance backfill pass")
		dryRun       = flag.Bool("dry-run", false, "backfill pass reports what it would change without writing")
		schedule     = flag.String("schedule", "", "cron expression for repeated ingest (e.g. \"0 6 * * *\"); empty runs once")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <workbook.xlsx>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *listSheets {
		names, err := loader.ListSheetNames(path)
		if err != nil {
			log.Fatalf("Failed to list sheets: %v", err)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	mode, err := pipeline.ParseNegativeEquityMode(*negEquity)
	if err != nil {
		log.Fatalf("%v", err)
	}

	qps := geocode.DefaultQPS
	if v := os.Getenv("GEOCODE_QPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			qps = f
		}
	}

	l, err := loader.New(loader.Options{
		DBConnString:   *dbConn,
		Sheet:          *sheetName,
		NegativeEquity: mode,
		SkipBackfill:   *skipBackfill,
		DryRun:         *dryRun,
		Debug:          *debug,
		GoogleMapsKey:  os.Getenv("GOOGLE_MAPS_KEY"),
		GeocodeQPS:     qps,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize loader: %v", err)
	}
	defer l.Close()

	if *schedule == "" {
		runOnce(l, path)
		return
	}

	// Scheduled mode: run immediately, then on the cron cadence until
	// interrupted.
	runOnce(l, path)
	c := cron.New()
	if _, err := c.AddFunc(*schedule, func() { runOnce(l, path) }); err != nil {
		log.Fatalf("Invalid schedule %q: %v", *schedule, err)
	}
	log.Printf("Scheduled ingest of %s (%s)", path, *schedule)
	c.Run()
}

func runOnce(l *loader.Loader, path string) {
	report, err := l.Ingest(context.Background(), path)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}

	fmt.Printf("Run %s: %d rows processed, %d skipped, %d errors\n",
		report.RunID, report.RowsProcessed, report.RowsSkipped, report.RowErrors)
	if report.BackfillRan {
		fmt.Printf("Backfill pass: updated=%d, inserted_stub=%d, skipped=%d\n",
			report.BackfillUpdated, report.BackfillInserted, report.BackfillSkipped)
	} else {
		fmt.Println("Backfill pass skipped by flag.")
	}
	fmt.Println("Done.")
}
