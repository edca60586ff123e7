package postgres

import (
	"context"
	"fmt"

	"balance-ledger/internal/core/domain"
	"balance-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Create inserts an entry within tx and sets its generated ID.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (identity_id, invoice_number, service_id, service_code, description, amount, kind, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := tx.QueryRow(ctx, query,
		e.IdentityID, e.InvoiceNumber, e.ServiceID, e.ServiceCode,
		e.Description, e.Amount, e.Kind, e.CreatedOn,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert ledger entry %s: %w", e.InvoiceNumber, ports.ErrDuplicateKey)
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByIdentity returns one page of entries, newest first. Ties on created_on
// are broken by id so pages never overlap.
func (r *LedgerRepo) ListByIdentity(ctx context.Context, identityID int64, offset, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT id, identity_id, invoice_number, service_id, service_code, description, amount, kind, created_on
		FROM ledger_entries WHERE identity_id = $1
		ORDER BY created_on DESC, id DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, identityID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, limit)
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(
			&e.ID, &e.IdentityID, &e.InvoiceNumber, &e.ServiceID, &e.ServiceCode,
			&e.Description, &e.Amount, &e.Kind, &e.CreatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entry rows: %w", err)
	}
	return entries, nil
}

// Totals aggregates all entries of an identity.
func (r *LedgerRepo) Totals(ctx context.Context, identityID int64) (*ports.LedgerTotals, error) {
	query := `SELECT
		COUNT(*) AS entries,
		COALESCE(SUM(amount) FILTER (WHERE kind = 'TOPUP'), 0) AS topup,
		COALESCE(SUM(amount) FILTER (WHERE kind = 'PAYMENT'), 0) AS payment
		FROM ledger_entries WHERE identity_id = $1`

	t := &ports.LedgerTotals{}
	err := r.pool.QueryRow(ctx, query, identityID).Scan(&t.Entries, &t.TotalTopup, &t.TotalPayment)
	if err != nil {
		return nil, fmt.Errorf("ledger totals: %w", err)
	}
	return t, nil
}
