package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"scout/internal/models"
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS scout_runs (
	id         UUID PRIMARY KEY,
	batch_id   TEXT NOT NULL,
	variant    TEXT NOT NULL,
	query      TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

const insertRun = `
INSERT INTO scout_runs (id, batch_id, variant, query, outcome, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Ledger records the outcome of every query handled in batch mode.
type Ledger interface {
	Record(ctx context.Context, run models.Run) error
	Close()
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresLedger writes runs to the scout_runs table.
type PostgresLedger struct {
	db    execer
	close func()
}

// NewLedger connects to databaseURL and ensures the runs table exists. An
// empty URL yields a ledger that discards every run.
func NewLedger(ctx context.Context, databaseURL string) (Ledger, error) {
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, run ledger disabled")
		return NopLedger{}, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	l, err := newPostgresLedger(ctx, pool, pool.Close)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return l, nil
}

func newPostgresLedger(ctx context.Context, db execer, closeFn func()) (*PostgresLedger, error) {
	if _, err := db.Exec(ctx, createRunsTable); err != nil {
		return nil, fmt.Errorf("failed to create scout_runs table: %w", err)
	}
	return &PostgresLedger{db: db, close: closeFn}, nil
}

func (l *PostgresLedger) Record(ctx context.Context, run models.Run) error {
	_, err := l.db.Exec(ctx, insertRun,
		run.ID, run.BatchID, string(run.Variant), run.Query, string(run.Outcome), run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

func (l *PostgresLedger) Close() {
	if l.close != nil {
		l.close()
	}
}

// NopLedger discards runs.
type NopLedger struct{}

func (NopLedger) Record(context.Context, models.Run) error { return nil }

func (NopLedger) Close() {}
