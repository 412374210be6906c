package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Decryptor recovers the clear payload from request envelopes using the
// server's RSA private key. It is stateless apart from the immutable key and
// is safe for concurrent use.
type Decryptor struct {
	privateKey *rsa.PrivateKey
}

// NewDecryptor creates a new Decryptor with the provided RSA private key.
func NewDecryptor(privateKey *rsa.PrivateKey) (*Decryptor, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("RSA private key cannot be nil: %w", ErrInvalidKeyMaterial)
	}

	return &Decryptor{privateKey: privateKey}, nil
}

// Decrypt decodes and decrypts a request envelope.
//
// The returned symmetric key and IV must be passed to EncryptResponse to
// produce the response the client expects. Failures are never partial: on
// error no plaintext is returned.
func (d *Decryptor) Decrypt(env *RequestEnvelope) (*DecryptedRequest, error) {
	if env == nil {
		return nil, fmt.Errorf("envelope cannot be nil: %w", ErrMalformedEnvelope)
	}

	if env.EncryptedAESKey == "" {
		return nil, fmt.Errorf("encryptedAesKey is empty: %w", ErrMalformedEnvelope)
	}

	if env.EncryptedFlowData == "" {
		return nil, fmt.Errorf("encryptedFlowData is empty: %w", ErrMalformedEnvelope)
	}

	if env.InitialVector == "" {
		return nil, fmt.Errorf("initialVector is empty: %w", ErrMalformedEnvelope)
	}

	wrappedKey, err := base64.StdEncoding.DecodeString(env.EncryptedAESKey)
	if err != nil {
		return nil, fmt.Errorf("encryptedAesKey is not valid base64: %w", ErrMalformedEnvelope)
	}

	flowData, err := base64.StdEncoding.DecodeString(env.EncryptedFlowData)
	if err != nil {
		return nil, fmt.Errorf("encryptedFlowData is not valid base64: %w", ErrMalformedEnvelope)
	}

	rawIV, err := base64.StdEncoding.DecodeString(env.InitialVector)
	if err != nil {
		return nil, fmt.Errorf("initialVector is not valid base64: %w", ErrMalformedEnvelope)
	}

	if len(rawIV) < nonceSize {
		return nil, fmt.Errorf("initialVector is %d bytes, need %d: %w", len(rawIV), nonceSize, ErrMalformedEnvelope)
	}

	// Clients may send a longer vector; only the leading nonceSize bytes are
	// used by the cipher.
	iv := rawIV[:nonceSize]

	symmetricKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, d.privateKey, wrappedKey, nil)
	if err != nil || len(symmetricKey) != symmetricKeySize {
		// A wrong-size result means the unwrap produced garbage under a
		// mismatched key pair. Reported identically to a padding failure so
		// the distinction cannot be probed from outside.
		return nil, ErrKeyUnwrap
	}

	if len(flowData) < tagSize {
		return nil, fmt.Errorf("encryptedFlowData is %d bytes, shorter than the %d-byte tag: %w", len(flowData), tagSize, ErrMalformedEnvelope)
	}

	block, err := aes.NewCipher(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct AES cipher: %w", ErrInvalidKeyMaterial)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to construct GCM: %w", ErrInvalidKeyMaterial)
	}

	// Open expects the tag appended to the ciphertext, which is exactly the
	// wire layout. It fails closed: no plaintext comes back on a bad tag.
	payload, err := aead.Open(nil, iv, flowData, nil)
	if err != nil {
		return nil, ErrAuthentication
	}

	if !utf8.Valid(payload) || !json.Valid(payload) {
		return nil, fmt.Errorf("%d bytes of cleartext: %w", len(payload), ErrPayloadDecode)
	}

	return &DecryptedRequest{
		Payload:      json.RawMessage(payload),
		SymmetricKey: symmetricKey,
		IV:           iv,
	}, nil
}
