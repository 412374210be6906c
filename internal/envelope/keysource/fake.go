package keysource

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// Compile-time check that FakeSource implements Source
var _ Source = (*FakeSource)(nil)

// FakeSource is a fake implementation of Source for testing.
// It can be configured to return a specific key or error for testing
// different scenarios.
type FakeSource struct {
	// Key is the private key that will be returned by PrivateKey.
	// If nil, a random key will be generated on the first call.
	Key *rsa.PrivateKey

	// Err is the error that will be returned by PrivateKey.
	// If both Key and Err are set, Err takes precedence.
	Err error

	// PrivateKeyCalls tracks how many times PrivateKey was called
	PrivateKeyCalls int
}

// NewFakeSource creates a new fake source for testing.
func NewFakeSource() *FakeSource {
	return &FakeSource{}
}

// NewFakeSourceWithKey creates a new fake source that returns the specified key.
func NewFakeSourceWithKey(key *rsa.PrivateKey) *FakeSource {
	return &FakeSource{Key: key}
}

// NewFakeSourceWithError creates a new fake source that returns the specified error.
func NewFakeSourceWithError(err error) *FakeSource {
	return &FakeSource{Err: err}
}

// PrivateKey implements Source for testing.
// It returns the configured key or error, or generates a random key if none
// is configured.
func (f *FakeSource) PrivateKey(ctx context.Context) (*rsa.PrivateKey, error) {
	f.PrivateKeyCalls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.Err != nil {
		return nil, f.Err
	}

	if f.Key == nil {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("failed to generate fake RSA key: %w", err)
		}

		f.Key = key
	}

	return f.Key, nil
}
