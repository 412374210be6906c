package envelope

import "encoding/json"

const (
	// symmetricKeySize is the AES key size in bytes. The client wraps a fresh
	// 128-bit key for every exchange; aes.NewCipher selects AES-128 from the
	// key length.
	symmetricKeySize = 16

	// nonceSize is the GCM nonce size in bytes. The Flow client uses a
	// 16-byte initial vector rather than the 12-byte GCM default, so the
	// AEAD must be constructed with an explicit nonce size.
	nonceSize = 16

	// tagSize is the GCM authentication tag size in bytes. On the wire the
	// tag is always the trailing tagSize bytes of the ciphertext buffer,
	// never a separate field.
	tagSize = 16
)

// These constants are a wire contract with the WhatsApp client, not
// configuration. Changing any of them breaks interoperability and would need
// an explicit protocol version bump.

// RequestEnvelope is the encrypted data-exchange request as delivered by the
// client. All three fields are base64 (standard alphabet, padded). The JSON
// field names are fixed by the client and must not be renamed.
type RequestEnvelope struct {
	// EncryptedAESKey is the symmetric key, wrapped with the server's RSA
	// public key using OAEP with SHA-256.
	EncryptedAESKey string `json:"encryptedAesKey"`

	// EncryptedFlowData is the AES-GCM ciphertext of the form payload with
	// the authentication tag appended.
	EncryptedFlowData string `json:"encryptedFlowData"`

	// InitialVector is the GCM nonce used for EncryptedFlowData.
	InitialVector string `json:"initialVector"`
}

// ResponseEnvelope is the encrypted screen-transition response. The
// ciphertext field deliberately reuses the request's field name.
type ResponseEnvelope struct {
	EncryptedFlowData string `json:"encryptedFlowData"`
	InitialVector     string `json:"initialVector"`
}

// DecryptedRequest is the result of decrypting a RequestEnvelope.
//
// SymmetricKey and IV must be retained by the caller and handed to
// EncryptResponse to produce the matching response; the codec keeps no
// per-request state of its own.
type DecryptedRequest struct {
	// Payload is the clear form payload, validated to be well-formed JSON.
	Payload json.RawMessage

	// SymmetricKey is the recovered 16-byte AES key.
	SymmetricKey []byte

	// IV is the request initial vector, normalized to nonceSize bytes.
	IV []byte
}
