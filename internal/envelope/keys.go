package envelope

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// This file contains helpers for parsing private key material. Reading the
// material from its configured source is the keysource package's job.

// ParsePrivateKey parses an RSA private key from PEM-encoded bytes.
// The PEM block should be of type "PRIVATE KEY" (PKCS#8) or
// "RSA PRIVATE KEY" (PKCS#1). If the block is encrypted, passphrase is used
// to decrypt it; passphrase is ignored otherwise.
//
// All failures wrap ErrKeyUnavailable. The passphrase is never included in
// error messages.
func ParsePrivateKey(pemBytes, passphrase []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block: %w", ErrKeyUnavailable)
	}

	der := block.Bytes

	// Legacy OpenSSL keys are encrypted at the PEM layer. The x509 helpers
	// for this are deprecated upstream, but the format is still what the
	// messaging platform's own key-generation instructions produce.
	//nolint:staticcheck
	if x509.IsEncryptedPEMBlock(block) {
		decrypted, err := x509.DecryptPEMBlock(block, passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt PEM block: %w", ErrKeyUnavailable)
		}

		der = decrypted
	}

	switch block.Type {
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS#8 private key: %w", ErrKeyUnavailable)
		}

		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an RSA private key, got %T: %w", key, ErrKeyUnavailable)
		}

		return rsaKey, nil

	case "RSA PRIVATE KEY":
		rsaKey, err := x509.ParsePKCS1PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS#1 private key: %w", ErrKeyUnavailable)
		}

		return rsaKey, nil
	}

	return nil, fmt.Errorf("unsupported PEM block type %q (expected PRIVATE KEY or RSA PRIVATE KEY): %w", block.Type, ErrKeyUnavailable)
}
