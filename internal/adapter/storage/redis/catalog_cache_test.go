package redis_test

import (
	"context"
	"testing"
	"time"

	"balance-ledger/internal/adapter/storage/redis"
	"balance-ledger/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := redis.NewCatalogCache(client, time.Minute)
	ctx := context.Background()

	t.Run("miss returns nil", func(t *testing.T) {
		svc, err := cache.Get(ctx, "PLN")
		require.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, &domain.Service{ID: 2, Code: "PLN", Name: "Listrik", Tariff: 10000}))

		svc, err := cache.Get(ctx, "PLN")
		require.NoError(t, err)
		require.NotNil(t, svc)
		assert.Equal(t, int64(2), svc.ID)
		assert.Equal(t, "Listrik", svc.Name)
		assert.Equal(t, int64(10000), svc.Tariff)
		assert.Equal(t, time.Minute, mr.TTL("catalog:service:PLN"))
	})

	t.Run("expires after ttl", func(t *testing.T) {
		mr.FastForward(61 * time.Second)

		svc, err := cache.Get(ctx, "PLN")
		require.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("corrupt entry is an error", func(t *testing.T) {
		require.NoError(t, mr.Set("catalog:service:BAD", "{not json"))

		_, err := cache.Get(ctx, "BAD")
		assert.Error(t, err)
	})
}
