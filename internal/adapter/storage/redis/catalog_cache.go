package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"balance-ledger/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// CatalogCache implements ports.ServiceCache. Entries are JSON documents keyed
// by service code and expire after ttl so tariff changes eventually show up.
type CatalogCache struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewCatalogCache creates a Redis-backed catalog cache. A zero ttl keeps entries forever.
func NewCatalogCache(client goredis.UniversalClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		prefix: "catalog:service:",
		ttl:    ttl,
	}
}

// Get returns the cached service, or nil, nil on a miss.
func (c *CatalogCache) Get(ctx context.Context, code string) (*domain.Service, error) {
	data, err := c.client.Get(ctx, c.prefix+code).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis catalog get: %w", err)
	}

	var svc domain.Service
	if err := json.Unmarshal(data, &svc); err != nil {
		return nil, fmt.Errorf("decoding cached service %s: %w", code, err)
	}
	return &svc, nil
}

func (c *CatalogCache) Set(ctx context.Context, svc *domain.Service) error {
	data, err := json.Marshal(svc)
	if err != nil {
		return fmt.Errorf("encoding service %s: %w", svc.Code, err)
	}
	if err := c.client.Set(ctx, c.prefix+svc.Code, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis catalog set: %w", err)
	}
	return nil
}
