// Package envelope implements the encrypted data-exchange codec used by
// WhatsApp Flow screens. The client submits form data as a hybrid-encryption
// envelope: a fresh 128-bit AES key wrapped with the server's RSA public key
// (OAEP, SHA-256), the form payload encrypted with that key using AES-GCM,
// and the GCM initial vector, all base64 encoded.
//
// Decryption recovers the clear JSON payload together with the symmetric key
// and initial vector. The screen-transition response is encrypted under the
// same symmetric key with the bitwise complement of the request IV, which
// ties each response to its originating request without any server-side
// session state. The complement rule is a protocol convention of the client
// and must be preserved exactly.
//
// In some documentation, the asymmetric key is called the "key encryption key"
// (KEK) and the symmetric key is called the "data encryption key" (DEK).
package envelope
