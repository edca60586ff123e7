package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"balance-ledger/internal/core/domain"
	"balance-ledger/internal/core/ports"
	"balance-ledger/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService.
//
// Every mutation runs in one database transaction: lock the balance row, write
// the new amount, allocate an invoice, insert the entry, commit. Locks are
// always taken in that order (balance row, then day counter). Any error rolls
// the whole unit back; nothing is retried.
type LedgerServiceImpl struct {
	balances   ports.BalanceRepository
	entries    ports.LedgerRepository
	invoices   *InvoiceAllocator
	catalog    ports.CatalogService
	transactor ports.DBTransactor
	events     ports.EventPublisher // optional
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl. events may be nil.
func NewLedgerService(
	balances ports.BalanceRepository,
	entries ports.LedgerRepository,
	invoices *InvoiceAllocator,
	catalog ports.CatalogService,
	transactor ports.DBTransactor,
	events ports.EventPublisher,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		balances:   balances,
		entries:    entries,
		invoices:   invoices,
		catalog:    catalog,
		transactor: transactor,
		events:     events,
		log:        log,
	}
}

// GetBalance reads the last committed balance without taking locks.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, identityID int64) (int64, error) {
	bal, err := s.balances.Get(ctx, identityID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("read balance: %w", err))
	}
	if bal == nil {
		return 0, apperror.ErrAccountNotFound(identityID)
	}
	return bal.Amount, nil
}

// TopUp credits amount and records a TOPUP entry. Returns the new balance.
func (s *LedgerServiceImpl) TopUp(ctx context.Context, identityID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	bal, err := s.lockBalance(ctx, dbTx, identityID)
	if err != nil {
		return 0, err
	}

	if bal.Amount > math.MaxInt64-amount {
		return 0, apperror.Validation("Top up would overflow the balance")
	}
	newAmount := bal.Amount + amount

	if err := s.balances.UpdateAmount(ctx, dbTx, identityID, newAmount); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	entry, err := s.appendEntry(ctx, dbTx, func(invoice string, at time.Time) *domain.LedgerEntry {
		return domain.NewTopupEntry(identityID, amount, invoice, at)
	})
	if err != nil {
		return 0, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.publish(ctx, entry, newAmount)

	s.log.Info().
		Int64("identity_id", identityID).
		Str("invoice_number", entry.InvoiceNumber).
		Int64("amount", amount).
		Int64("balance", newAmount).
		Msg("top up recorded")

	return newAmount, nil
}

// Pay debits the tariff of serviceCode and records a PAYMENT entry.
func (s *LedgerServiceImpl) Pay(ctx context.Context, identityID int64, serviceCode string) (*ports.PaymentResult, error) {
	svc, err := s.catalog.GetByCode(ctx, serviceCode)
	if err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	bal, err := s.lockBalance(ctx, dbTx, identityID)
	if err != nil {
		return nil, err
	}

	if !bal.CanCover(svc.Tariff) {
		return nil, apperror.ErrInsufficientBalance()
	}
	newAmount := bal.Amount - svc.Tariff

	if err := s.balances.UpdateAmount(ctx, dbTx, identityID, newAmount); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	entry, err := s.appendEntry(ctx, dbTx, func(invoice string, at time.Time) *domain.LedgerEntry {
		return domain.NewPaymentEntry(identityID, svc, invoice, at)
	})
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.publish(ctx, entry, newAmount)

	s.log.Info().
		Int64("identity_id", identityID).
		Str("invoice_number", entry.InvoiceNumber).
		Str("service_code", svc.Code).
		Int64("amount", svc.Tariff).
		Int64("balance", newAmount).
		Msg("payment recorded")

	return &ports.PaymentResult{
		InvoiceNumber: entry.InvoiceNumber,
		ServiceCode:   svc.Code,
		ServiceName:   svc.Name,
		Kind:          entry.Kind,
		Amount:        entry.Amount,
		CreatedOn:     entry.CreatedOn,
	}, nil
}

// lockBalance takes the row lock that serializes all mutations of one identity.
func (s *LedgerServiceImpl) lockBalance(ctx context.Context, tx pgx.Tx, identityID int64) (*domain.Balance, error) {
	bal, err := s.balances.GetForUpdate(ctx, tx, identityID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}
	if bal == nil {
		return nil, apperror.ErrAccountNotFound(identityID)
	}
	return bal, nil
}

func (s *LedgerServiceImpl) appendEntry(
	ctx context.Context,
	tx pgx.Tx,
	build func(invoice string, at time.Time) *domain.LedgerEntry,
) (*domain.LedgerEntry, error) {
	invoice, at, err := s.invoices.Allocate(ctx, tx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	entry := build(invoice, at)
	if err := s.entries.Create(ctx, tx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("insert ledger entry: %w", err))
	}
	return entry, nil
}

// publish is best-effort: the entry is already committed.
func (s *LedgerServiceImpl) publish(ctx context.Context, entry *domain.LedgerEntry, balance int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEntryCreated(ctx, entry, balance); err != nil {
		s.log.Warn().Err(err).Str("invoice_number", entry.InvoiceNumber).Msg("failed to publish ledger event")
	}
}
