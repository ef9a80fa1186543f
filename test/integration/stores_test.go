package integration

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samod99/NourishFoods-sub000/internal/core"
	docpg "github.com/Samod99/NourishFoods-sub000/internal/docstore/postgres"
	kvredis "github.com/Samod99/NourishFoods-sub000/internal/kvstore/redis"
	"github.com/Samod99/NourishFoods-sub000/pkg/logging"
)

func TestBackingStores(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()
	env, err := Setup(ctx)
	if err != nil {
		t.Skipf("containers unavailable: %v", err)
	}
	defer env.Teardown(ctx)

	log := logging.New("error")

	t.Run("postgres documents", func(t *testing.T) {
		pool, err := pgxpool.New(ctx, env.PGURL)
		require.NoError(t, err)
		defer pool.Close()

		docs := docpg.NewStore(log, pool)
		require.NoError(t, docs.Migrate(ctx))

		id, err := docs.Save(ctx, "orders", "", map[string]any{"userId": "u1", "total": "19.99"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		// Upsert under the same id replaces fields.
		_, err = docs.Save(ctx, "orders", id, map[string]any{"userId": "u1", "total": "24.99"})
		require.NoError(t, err)

		got, err := docs.List(ctx, "orders", map[string]any{"userId": "u1"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "24.99", got[0].Fields["total"])

		none, err := docs.List(ctx, "orders", map[string]any{"userId": "someone-else"})
		require.NoError(t, err)
		assert.Empty(t, none)

		require.NoError(t, docs.Delete(ctx, "orders", id))
		err = docs.Delete(ctx, "orders", id)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("redis key-value", func(t *testing.T) {
		rdb := goredis.NewClient(&goredis.Options{Addr: env.RedisAddr})
		defer rdb.Close()

		kv := kvredis.NewStore(rdb, 0)
		require.NoError(t, kv.Save(ctx, "cart:u1", []byte(`[]`)))

		raw, ok, err := kv.Load(ctx, "cart:u1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `[]`, string(raw))

		require.NoError(t, kv.Delete(ctx, "cart:u1"))
		_, ok, err = kv.Load(ctx, "cart:u1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
