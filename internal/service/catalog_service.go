package service

import (
	"context"
	"fmt"

	"balance-ledger/internal/core/domain"
	"balance-ledger/internal/core/ports"
	"balance-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// CatalogServiceImpl implements ports.CatalogService with a read-through cache.
type CatalogServiceImpl struct {
	repo  ports.ServiceRepository
	cache ports.ServiceCache // optional
	log   zerolog.Logger
}

// NewCatalogService creates a catalog service. cache may be nil.
func NewCatalogService(repo ports.ServiceRepository, cache ports.ServiceCache, log zerolog.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{repo: repo, cache: cache, log: log}
}

// GetByCode resolves a service code. Cache failures fall through to the database.
func (s *CatalogServiceImpl) GetByCode(ctx context.Context, code string) (*domain.Service, error) {
	if code == "" {
		return nil, apperror.Validation("service_code is required")
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, code)
		if err != nil {
			s.log.Warn().Err(err).Str("service_code", code).Msg("catalog cache read failed, falling through to DB")
		}
		if cached != nil {
			return cached, nil
		}
	}

	svc, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup service %s: %w", code, err))
	}
	if svc == nil {
		return nil, apperror.ErrServiceNotFound()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, svc); err != nil {
			s.log.Warn().Err(err).Str("service_code", code).Msg("failed to cache catalog service")
		}
	}
	return svc, nil
}

// List returns the full catalog straight from the database.
func (s *CatalogServiceImpl) List(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list services: %w", err))
	}
	return services, nil
}
