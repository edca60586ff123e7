package postgres

import (
	"context"
	"errors"
	"fmt"

	"balance-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ServiceRepo implements ports.ServiceRepository.
type ServiceRepo struct {
	pool Pool
}

// NewServiceRepo creates a new ServiceRepo.
func NewServiceRepo(pool Pool) *ServiceRepo {
	return &ServiceRepo{pool: pool}
}

// GetByCode fetches a catalog service. Returns nil, nil when the code is unknown.
func (r *ServiceRepo) GetByCode(ctx context.Context, code string) (*domain.Service, error) {
	query := `SELECT id, code, name, tariff FROM services WHERE code = $1`

	s := &domain.Service{}
	err := r.pool.QueryRow(ctx, query, code).Scan(&s.ID, &s.Code, &s.Name, &s.Tariff)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by code: %w", err)
	}
	return s, nil
}

// List returns the whole catalog ordered by id.
func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	query := `SELECT id, code, name, tariff FROM services ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Tariff); err != nil {
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service rows: %w", err)
	}
	return services, nil
}
