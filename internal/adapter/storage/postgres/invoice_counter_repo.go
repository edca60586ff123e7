package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// invoiceLockKey is the transaction-scoped advisory lock that serializes
// invoice allocation across API instances.
const invoiceLockKey int64 = 0x1ed6e4

// InvoiceCounterRepo implements ports.InvoiceCounterRepository with one counter
// row per calendar day.
type InvoiceCounterRepo struct{}

func NewInvoiceCounterRepo() *InvoiceCounterRepo {
	return &InvoiceCounterRepo{}
}

// Acquire blocks until tx holds the allocation lock, then reads the database
// clock. Holders run one after another, so the returned instants increase in
// the same order as the sequence values handed out under the lock.
func (r *InvoiceCounterRepo) Acquire(ctx context.Context, tx pgx.Tx) (time.Time, error) {
	query := `SELECT clock_timestamp() FROM (SELECT pg_advisory_xact_lock($1)) AS l`

	var at time.Time
	if err := tx.QueryRow(ctx, query, invoiceLockKey).Scan(&at); err != nil {
		return time.Time{}, fmt.Errorf("acquire invoice lock: %w", err)
	}
	return at, nil
}

// Next bumps the counter for day and returns the new value. The upsert takes
// the row lock, so concurrent allocators of the same day queue behind tx and a
// rollback hands the value back.
func (r *InvoiceCounterRepo) Next(ctx context.Context, tx pgx.Tx, day time.Time) (int64, error) {
	query := `INSERT INTO invoice_counters (day, last_value) VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_value = invoice_counters.last_value + 1
		RETURNING last_value`

	var seq int64
	if err := tx.QueryRow(ctx, query, day).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice sequence for %s: %w", day.Format(time.DateOnly), err)
	}
	return seq, nil
}
