// internal/adapters/redisstore/store_test.go
package redisstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/stitchstock-be/internal/adapters/redisstore"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
	"github.com/avasquez/stitchstock-be/test/helpers"
)

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	tr := helpers.SetupTestRedis(t)
	store := redisstore.New(tr.Client, "stitchstock", helpers.TestLogger())

	t.Run("absent_key_is_not_an_error", func(t *testing.T) {
		value, found, err := store.Get(ctx, ports.KeyInventory)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set_then_get_round_trips", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, ports.KeyInventory, `{"100-SHIRT-RED-M":3}`))

		value, found, err := store.Get(ctx, ports.KeyInventory)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"100-SHIRT-RED-M":3}`, value)
	})

	t.Run("set_replaces_previous_value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, ports.KeySalesHistory, `[]`))
		require.NoError(t, store.Set(ctx, ports.KeySalesHistory, `[{"sku":"A-A-A-A"}]`))

		value, found, err := store.Get(ctx, ports.KeySalesHistory)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"sku":"A-A-A-A"}]`, value)
	})

	t.Run("keys_are_namespaced_by_prefix", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "blob", "v"))
		assert.True(t, tr.Server.Exists("stitchstock:blob"))
	})
}

func TestStore_Ping(t *testing.T) {
	ctx := context.Background()
	tr := helpers.SetupTestRedis(t)
	store := redisstore.New(tr.Client, "", helpers.TestLogger())

	require.NoError(t, store.Ping(ctx))

	tr.Server.Close()
	assert.Error(t, store.Ping(ctx))
}

func TestStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	tr := helpers.SetupTestRedis(t)
	store := redisstore.New(tr.Client, "stitchstock", helpers.TestLogger())

	tr.Server.Close()

	_, _, err := store.Get(ctx, ports.KeyInventory)
	assert.Error(t, err)

	assert.Error(t, store.Set(ctx, ports.KeyInventory, "{}"))
}
