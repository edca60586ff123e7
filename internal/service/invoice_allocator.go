package service

import (
	"context"
	"fmt"
	"time"

	"balance-ledger/internal/core/domain"
	"balance-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// InvoiceAllocator hands out INV{DDMMYYYY}-{SEQ} numbers. The sequence is
// global per calendar day and lives in a counter row that stays locked until
// the caller's transaction ends, so two allocators of the same day can never
// observe the same value.
type InvoiceAllocator struct {
	counters ports.InvoiceCounterRepository
	loc      *time.Location
}

// NewInvoiceAllocator creates an allocator whose calendar days are taken in loc.
func NewInvoiceAllocator(counters ports.InvoiceCounterRepository, loc *time.Location) *InvoiceAllocator {
	if loc == nil {
		loc = time.UTC
	}
	return &InvoiceAllocator{counters: counters, loc: loc}
}

// Allocate reserves the next invoice number within tx and returns it with the
// entry timestamp. Both come from one database clock read taken under the
// allocation lock, so the invoice date always matches the timestamp's day and
// timestamps follow sequence order.
func (a *InvoiceAllocator) Allocate(ctx context.Context, tx pgx.Tx) (string, time.Time, error) {
	at, err := a.counters.Acquire(ctx, tx)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("allocate invoice: %w", err)
	}
	day := domain.InvoiceDay(at, a.loc)

	seq, err := a.counters.Next(ctx, tx, day)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("allocate invoice: %w", err)
	}

	return domain.FormatInvoiceNumber(day, seq), at.UTC(), nil
}
