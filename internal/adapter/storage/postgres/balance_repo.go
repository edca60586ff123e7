package postgres

import (
	"context"
	"errors"
	"fmt"

	"balance-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// BalanceRepo implements ports.BalanceRepository.
type BalanceRepo struct {
	pool Pool
}

// NewBalanceRepo creates a new BalanceRepo.
func NewBalanceRepo(pool Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

// Provision inserts the zero balance row for identityID within tx.
func (r *BalanceRepo) Provision(ctx context.Context, tx pgx.Tx, identityID int64) error {
	query := `INSERT INTO balances (identity_id, amount) VALUES ($1, 0)`

	if _, err := tx.Exec(ctx, query, identityID); err != nil {
		return fmt.Errorf("provision balance: %w", err)
	}
	return nil
}

// Get reads the committed balance without locking.
func (r *BalanceRepo) Get(ctx context.Context, identityID int64) (*domain.Balance, error) {
	query := `SELECT identity_id, amount, updated_at FROM balances WHERE identity_id = $1`
	return r.scanBalance(r.pool.QueryRow(ctx, query, identityID), "get balance")
}

// GetForUpdate reads the balance and locks its row until tx ends.
// This MUST be called within a transaction.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, identityID int64) (*domain.Balance, error) {
	query := `SELECT identity_id, amount, updated_at FROM balances WHERE identity_id = $1 FOR UPDATE`
	return r.scanBalance(tx.QueryRow(ctx, query, identityID), "get balance for update")
}

// UpdateAmount writes the new balance within tx.
func (r *BalanceRepo) UpdateAmount(ctx context.Context, tx pgx.Tx, identityID int64, amount int64) error {
	query := `UPDATE balances SET amount = $1, updated_at = NOW() WHERE identity_id = $2`

	tag, err := tx.Exec(ctx, query, amount, identityID)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("balance not found: identity %d", identityID)
	}
	return nil
}

func (r *BalanceRepo) scanBalance(row pgx.Row, op string) (*domain.Balance, error) {
	b := &domain.Balance{}
	if err := row.Scan(&b.IdentityID, &b.Amount, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}
