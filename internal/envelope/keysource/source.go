// Package keysource resolves the server's RSA private key material from a
// configured source and caches it for the process lifetime. The key is read
// once, at startup; decryption never touches the source again.
package keysource

import (
	"context"
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/pmylund/go-cache"

	"github.com/tucanbot/flowgate/internal/envelope"
)

// Source yields the server's RSA private key material.
type Source interface {
	// PrivateKey reads and parses the key material from the source.
	PrivateKey(ctx context.Context) (*rsa.PrivateKey, error)
}

// Compile-time checks that the sources implement Source.
var (
	_ Source = FileSource{}
	_ Source = StaticSource{}
)

// FileSource reads a PEM-encoded private key from disk. Passphrase, if set,
// decrypts an encrypted PEM block; it is never logged and never appears in
// errors.
type FileSource struct {
	Path       string
	Passphrase []byte
}

// PrivateKey reads and parses the key file.
func (s FileSource) PrivateKey(ctx context.Context) (*rsa.PrivateKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pemBytes, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", s.Path, envelope.ErrKeyUnavailable)
	}

	return envelope.ParsePrivateKey(pemBytes, s.Passphrase)
}

// StaticSource serves a key parsed from in-memory PEM bytes. It exists so
// tests and embedders can run the codec without touching the filesystem.
type StaticSource struct {
	PEM        []byte
	Passphrase []byte
}

// PrivateKey parses the in-memory key material.
func (s StaticSource) PrivateKey(ctx context.Context) (*rsa.PrivateKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return envelope.ParsePrivateKey(s.PEM, s.Passphrase)
}

// Provider loads keys from sources and caches the parsed material so that
// repeated loads after startup return the same instance. Entries never
// expire; key rotation means a process restart.
type Provider struct {
	keys *cache.Cache
}

// NewProvider creates an empty Provider.
func NewProvider() *Provider {
	return &Provider{
		keys: cache.New(cache.NoExpiration, 0),
	}
}

// Load resolves the key for the named source, returning the cached instance
// when one exists. The name keys the cache; use the key path or another
// stable identifier.
func (p *Provider) Load(ctx context.Context, name string, source Source) (*rsa.PrivateKey, error) {
	if cached, ok := p.keys.Get(name); ok {
		return cached.(*rsa.PrivateKey), nil
	}

	key, err := source.PrivateKey(ctx)
	if err != nil {
		return nil, err
	}

	p.keys.Set(name, key, cache.NoExpiration)

	return key, nil
}
