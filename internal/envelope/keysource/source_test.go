package keysource

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tucanbot/flowgate/internal/envelope"
)

var (
	testKeyOnce     sync.Once
	internalTestKey *rsa.PrivateKey
)

func testKey() *rsa.PrivateKey {
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic("failed to generate test RSA key: " + err.Error())
		}

		internalTestKey = key
	})

	return internalTestKey
}

func testKeyPEM(t *testing.T) []byte {
	t.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(testKey())
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, testKeyPEM(t), 0600))

	key, err := FileSource{Path: path}.PrivateKey(context.Background())
	require.NoError(t, err)
	assert.True(t, key.Equal(testKey()))
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "absent.pem")}.PrivateKey(context.Background())
	require.ErrorIs(t, err, envelope.ErrKeyUnavailable)
}

func TestFileSourceUnreadableMaterial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))

	_, err := FileSource{Path: path}.PrivateKey(context.Background())
	require.ErrorIs(t, err, envelope.ErrKeyUnavailable)
}

func TestStaticSource(t *testing.T) {
	key, err := StaticSource{PEM: testKeyPEM(t)}.PrivateKey(context.Background())
	require.NoError(t, err)
	assert.True(t, key.Equal(testKey()))
}

func TestProviderCachesKeys(t *testing.T) {
	provider := NewProvider()
	fake := NewFakeSourceWithKey(testKey())

	first, err := provider.Load(context.Background(), "primary", fake)
	require.NoError(t, err)

	second, err := provider.Load(context.Background(), "primary", fake)
	require.NoError(t, err)

	// The source is read exactly once; later loads are cache hits and
	// return the same instance.
	assert.Equal(t, 1, fake.PrivateKeyCalls)
	assert.Same(t, first, second)
}

func TestProviderDoesNotCacheFailures(t *testing.T) {
	provider := NewProvider()
	fake := NewFakeSourceWithError(envelope.ErrKeyUnavailable)

	_, err := provider.Load(context.Background(), "primary", fake)
	require.ErrorIs(t, err, envelope.ErrKeyUnavailable)

	// A failed load must not poison the cache.
	fake.Err = nil
	fake.Key = testKey()

	key, err := provider.Load(context.Background(), "primary", fake)
	require.NoError(t, err)
	assert.True(t, key.Equal(testKey()))
	assert.Equal(t, 2, fake.PrivateKeyCalls)
}

func TestProviderSeparateNames(t *testing.T) {
	provider := NewProvider()
	fakeA := NewFakeSourceWithKey(testKey())
	fakeB := NewFakeSource()

	keyA, err := provider.Load(context.Background(), "a", fakeA)
	require.NoError(t, err)

	keyB, err := provider.Load(context.Background(), "b", fakeB)
	require.NoError(t, err)

	assert.False(t, keyA.Equal(keyB))
}
