// Package db implements the datastore contract over PostgreSQL. The
// reconciliation engine only sees the Tx type through its Store interface,
// so the SQL lives here and nowhere else.
package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Store owns the connection pool.
type Store struct {
	db *sqlx.DB
}

// Open connects using an explicit connection string, falling back to the
// environment-derived config when conn is empty.
func Open(conn string) (*Store, error) {
	if conn == "" {
		cfg := DefaultConfig()
		conn = cfg.DSN()
		defer log.Printf("Connected to database at %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	}

	db, err := sqlx.Connect("postgres", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &Store{db: db}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		log.Printf("Closing database connection")
		return s.db.Close()
	}
	return nil
}

// Begin opens the outer transaction for one ingest run.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx is one run's outer transaction. Row-scoped writes nest inside it via
// savepoints so a bad row rolls back alone while earlier rows stand.
type Tx struct {
	tx *sqlx.Tx
	sp int
}

// Commit commits the whole run.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Rollback abandons the whole run.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// BeginRow opens a savepoint for the next row's writes.
func (t *Tx) BeginRow(ctx context.Context) error {
	t.sp++
	_, err := t.tx.ExecContext(ctx, fmt.Sprintf("SAVEPOINT row_%d", t.sp))
	if err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}
	return nil
}

// CommitRow releases the current row's savepoint, keeping its writes.
func (t *Tx) CommitRow(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, fmt.Sprintf("RELEASE SAVEPOINT row_%d", t.sp))
	if err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

// RollbackRow discards the current row's writes only.
func (t *Tx) RollbackRow(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, fmt.Sprintf("ROLLBACK TO SAVEPOINT row_%d", t.sp))
	if err != nil {
		return fmt.Errorf("failed to roll back savepoint: %w", err)
	}
	_, err = t.tx.ExecContext(ctx, fmt.Sprintf("RELEASE SAVEPOINT row_%d", t.sp))
	if err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}
