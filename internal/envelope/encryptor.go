package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncryptResponse serializes value and encrypts it under the symmetric key
// recovered from the originating request.
//
// The response IV is the bitwise complement of the request IV. The client
// derives the same value independently, so the envelope carries no session
// identifier; the complement rule alone binds the response to its request.
func EncryptResponse(value any, symmetricKey, requestIV []byte) (*ResponseEnvelope, error) {
	if len(symmetricKey) != symmetricKeySize {
		return nil, fmt.Errorf("symmetric key is %d bytes, want %d: %w", len(symmetricKey), symmetricKeySize, ErrInvalidKeyMaterial)
	}

	if len(requestIV) != nonceSize {
		return nil, fmt.Errorf("request IV is %d bytes, want %d: %w", len(requestIV), nonceSize, ErrInvalidKeyMaterial)
	}

	cleartext, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrSerialization)
	}

	responseIV := invertIV(requestIV)

	block, err := aes.NewCipher(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct AES cipher: %w", ErrInvalidKeyMaterial)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to construct GCM: %w", ErrInvalidKeyMaterial)
	}

	// Seal appends the 16-byte tag to the ciphertext, matching the wire
	// layout the client expects.
	sealed := aead.Seal(nil, responseIV, cleartext, nil)

	return &ResponseEnvelope{
		EncryptedFlowData: base64.StdEncoding.EncodeToString(sealed),
		InitialVector:     base64.StdEncoding.EncodeToString(responseIV),
	}, nil
}

// invertIV flips every bit of iv. Applying it twice returns the input.
func invertIV(iv []byte) []byte {
	out := make([]byte, len(iv))
	for i, b := range iv {
		out[i] = b ^ 0xFF
	}

	return out
}
