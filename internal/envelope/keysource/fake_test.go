package keysource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeSource(t *testing.T) {
	t.Run("returns generated key by default", func(t *testing.T) {
		fake := NewFakeSource()

		key, err := fake.PrivateKey(context.Background())
		require.NoError(t, err)

		assert.NotNil(t, key)
		assert.Equal(t, 1, fake.PrivateKeyCalls)

		// Subsequent calls return the same key
		key2, err := fake.PrivateKey(context.Background())
		require.NoError(t, err)
		assert.Same(t, key, key2)
		assert.Equal(t, 2, fake.PrivateKeyCalls)
	})

	t.Run("returns configured key", func(t *testing.T) {
		fake := NewFakeSourceWithKey(testKey())

		key, err := fake.PrivateKey(context.Background())
		require.NoError(t, err)
		assert.Same(t, testKey(), key)
	})

	t.Run("returns configured error", func(t *testing.T) {
		wantErr := errors.New("key server on fire")
		fake := NewFakeSourceWithError(wantErr)

		_, err := fake.PrivateKey(context.Background())
		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, fake.PrivateKeyCalls)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fake := NewFakeSource()

		_, err := fake.PrivateKey(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
