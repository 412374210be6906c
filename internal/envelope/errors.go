package envelope

import "errors"

// The decrypt-side kinds below are for the handler and its logs only. The
// external response must not distinguish between them: revealing whether an
// envelope failed on padding, tag verification or parsing would hand an
// attacker a decryption oracle. None of these failures are retryable.
var (
	// ErrKeyUnavailable means the configured private key source is absent,
	// unreadable or malformed. Process startup should fail on it.
	ErrKeyUnavailable = errors.New("private key unavailable")

	// ErrMalformedEnvelope means a required envelope field is missing, is not
	// valid base64, the initial vector is too short, or the ciphertext is
	// shorter than its trailing tag.
	ErrMalformedEnvelope = errors.New("malformed request envelope")

	// ErrKeyUnwrap means the RSA-OAEP unwrap of the symmetric key failed.
	// Padding failures and wrong-key failures are reported identically.
	ErrKeyUnwrap = errors.New("symmetric key unwrap failed")

	// ErrAuthentication means the GCM tag did not verify: the envelope was
	// tampered with or was encrypted under different key material.
	ErrAuthentication = errors.New("payload authentication failed")

	// ErrPayloadDecode means the decrypted bytes are not valid UTF-8 JSON.
	ErrPayloadDecode = errors.New("decrypted payload is not valid JSON")

	// ErrSerialization means the response value could not be serialized to
	// JSON.
	ErrSerialization = errors.New("response serialization failed")

	// ErrInvalidKeyMaterial means the symmetric key or IV handed to the
	// encryptor has the wrong length.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
)
