package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sz10101/vym/pkg/domain"
	"github.com/sz10101/vym/pkg/ports"
)

// RunClipboardStoreContract runs a suite of tests to verify that a ClipboardStore
// implementation adheres to the defined interface contract. The store must start empty.
func RunClipboardStoreContract(t *testing.T, store ports.ClipboardStore) {
	ctx := context.Background()

	t.Run("Get Empty", func(t *testing.T) {
		_, err := store.Get(ctx)
		assert.ErrorIs(t, err, domain.ErrClipboardEmpty)
	})

	t.Run("Put and Get", func(t *testing.T) {
		err := store.Put(ctx, []byte(`{"heading":"copied"}`))
		require.NoError(t, err, "Put should not return error")

		data, err := store.Get(ctx)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, `{"heading":"copied"}`, string(data))
	})

	t.Run("Put Replaces", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, []byte("first")))
		require.NoError(t, store.Put(ctx, []byte("second")))

		data, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
	})

	t.Run("Get Is Repeatable", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, []byte("again")))
		for i := 0; i < 2; i++ {
			data, err := store.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "again", string(data))
		}
	})
}
