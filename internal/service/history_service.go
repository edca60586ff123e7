package service

import (
	"context"
	"fmt"

	"balance-ledger/internal/core/domain"
	"balance-ledger/internal/core/ports"
	"balance-ledger/pkg/apperror"
)

// HistoryServiceImpl implements ports.HistoryService.
type HistoryServiceImpl struct {
	entries ports.LedgerRepository
}

// NewHistoryService creates a HistoryServiceImpl reading from entries.
func NewHistoryService(entries ports.LedgerRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{entries: entries}
}

// ListHistory returns entries newest first. A limit above MaxHistoryLimit is
// capped. An offset past the end yields an empty page, not an error.
func (s *HistoryServiceImpl) ListHistory(ctx context.Context, identityID int64, offset, limit int) ([]domain.LedgerEntry, error) {
	if offset < 0 {
		return nil, apperror.Validation("offset must be zero or greater")
	}
	if limit < 1 {
		return nil, apperror.Validation("limit must be at least 1")
	}
	limit = ports.ClampHistoryLimit(limit)

	entries, err := s.entries.ListByIdentity(ctx, identityID, offset, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list history: %w", err))
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, nil
}

// Summary totals an identity's entries. Net should always equal the balance.
func (s *HistoryServiceImpl) Summary(ctx context.Context, identityID int64) (*ports.LedgerSummary, error) {
	totals, err := s.entries.Totals(ctx, identityID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("ledger totals: %w", err))
	}

	return &ports.LedgerSummary{
		Entries:      totals.Entries,
		TotalTopup:   totals.TotalTopup,
		TotalPayment: totals.TotalPayment,
		Net:          totals.TotalTopup - totals.TotalPayment,
	}, nil
}
