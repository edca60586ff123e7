package ports

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks balance-ledger/internal/core/ports UserRepository,BalanceRepository,LedgerRepository,InvoiceCounterRepository,ServiceRepository,DBTransactor

import (
	"context"
	"errors"
	"time"

	"balance-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ErrDuplicateKey is returned by repositories when an insert hits a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository defines persistence operations for identities.
type UserRepository interface {
	// Create inserts the user inside tx and sets its ID and CreatedAt.
	Create(ctx context.Context, tx pgx.Tx, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// BalanceRepository defines persistence operations for balances.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type BalanceRepository interface {
	// Provision inserts the zero balance row for a freshly created identity.
	Provision(ctx context.Context, tx pgx.Tx, identityID int64) error
	Get(ctx context.Context, identityID int64) (*domain.Balance, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, identityID int64) (*domain.Balance, error)
	UpdateAmount(ctx context.Context, tx pgx.Tx, identityID int64, amount int64) error
}

// LedgerRepository defines persistence operations for ledger entries.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	ListByIdentity(ctx context.Context, identityID int64, offset, limit int) ([]domain.LedgerEntry, error)
	Totals(ctx context.Context, identityID int64) (*LedgerTotals, error)
}

// LedgerTotals holds aggregated entry sums for one identity.
type LedgerTotals struct {
	Entries      int64
	TotalTopup   int64
	TotalPayment int64
}

// InvoiceCounterRepository hands out the per-day invoice sequence.
type InvoiceCounterRepository interface {
	// Acquire takes the allocation lock for tx and returns the database clock
	// read once the lock is held. The lock is released when tx ends.
	Acquire(ctx context.Context, tx pgx.Tx) (time.Time, error)
	// Next increments the counter for day inside tx and returns the new value.
	// The counter row stays locked until tx ends.
	Next(ctx context.Context, tx pgx.Tx, day time.Time) (int64, error)
}

// ServiceRepository reads the service catalog.
type ServiceRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
