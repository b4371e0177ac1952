// Package crypto exposes the symmetric primitives used by the KDC and its
// participants.
//
// Contents
//
//   - Authenticated encryption with XChaCha20-Poly1305 (AEAD, Encrypt, Decrypt)
//   - Long-term and session key generation from crypto/rand
//     (GenerateLongTermKey, GenerateSessionKey)
//   - Short key fingerprints for display (Fingerprint)
//   - Base64 helpers for printing ciphertexts (B64)
//
// # Notes
//
// Every ciphertext is nonce||sealed, with a fresh 24-byte random nonce per
// call, so encrypting the same plaintext twice never yields the same bytes.
// Decrypt returns ErrDecrypt for every failure mode; callers translate that
// into their own error kind without learning why it failed.
package crypto
