package ports

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks balance-ledger/internal/core/ports HashService,TokenService,ServiceCache,EventPublisher,LedgerService,HistoryService,CatalogService,AccountService

import (
	"context"
	"time"

	"balance-ledger/internal/core/domain"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(identityID int64, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	IdentityID int64
	Email      string
}

// ServiceCache is the Redis read-through layer in front of the catalog.
type ServiceCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, code string) (*domain.Service, error)
	Set(ctx context.Context, svc *domain.Service) error
}

// EventPublisher announces committed ledger entries to downstream consumers.
type EventPublisher interface {
	PublishEntryCreated(ctx context.Context, entry *domain.LedgerEntry, balance int64) error
}

// --- Service Ports (Business Logic) ---

// LedgerService mutates balances. Every mutation writes exactly one ledger entry
// in the same database transaction.
type LedgerService interface {
	GetBalance(ctx context.Context, identityID int64) (int64, error)
	TopUp(ctx context.Context, identityID int64, amount int64) (int64, error)
	Pay(ctx context.Context, identityID int64, serviceCode string) (*PaymentResult, error)
}

// PaymentResult is the summary returned after a successful payment.
type PaymentResult struct {
	InvoiceNumber string
	ServiceCode   string
	ServiceName   string
	Kind          domain.EntryKind
	Amount        int64
	CreatedOn     time.Time
}

// History page bounds.
const (
	DefaultHistoryLimit = 5
	MaxHistoryLimit     = 100
)

// ClampHistoryLimit caps limit at MaxHistoryLimit. Values below one are left
// for the caller to reject.
func ClampHistoryLimit(limit int) int {
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// HistoryService reads ledger entries back.
type HistoryService interface {
	ListHistory(ctx context.Context, identityID int64, offset, limit int) ([]domain.LedgerEntry, error)
	Summary(ctx context.Context, identityID int64) (*LedgerSummary, error)
}

// LedgerSummary aggregates an identity's history. Net equals the balance when
// the ledger is consistent.
type LedgerSummary struct {
	Entries      int64
	TotalTopup   int64
	TotalPayment int64
	Net          int64
}

// CatalogService resolves service codes to priced catalog items.
type CatalogService interface {
	GetByCode(ctx context.Context, code string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
}

// AccountService creates identities and authenticates them.
type AccountService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for identity registration.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}
