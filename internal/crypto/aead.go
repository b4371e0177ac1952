package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"

	"kdcsim/internal/domain"
)

const (
	KeyBytes   = chacha20poly1305.KeySize
	NonceBytes = chacha20poly1305.NonceSizeX
	// Overhead is the number of bytes a ciphertext adds to its plaintext.
	Overhead = NonceBytes + chacha20poly1305.Overhead
)

var (
	// ErrDecrypt is returned for any ciphertext that does not open under the key.
	ErrDecrypt = errors.New("crypto: message authentication failed")

	errKeySize = errors.New("crypto: invalid key size")
)

// AEAD implements domain.Cipher with XChaCha20-Poly1305.
type AEAD struct{}

// NewAEAD returns the protocol cipher.
func NewAEAD() *AEAD { return &AEAD{} }

// Encrypt seals plaintext under key with a fresh random nonce.
func (AEAD) Encrypt(key, plaintext []byte) ([]byte, error) {
	return Encrypt(key, plaintext)
}

// Decrypt opens a ciphertext produced by Encrypt.
func (AEAD) Decrypt(key, ciphertext []byte) ([]byte, error) {
	return Decrypt(key, ciphertext)
}

// Encrypt returns nonce||ciphertext for plaintext sealed under key.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeyBytes {
		return nil, errKeySize
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, NonceBytes, NonceBytes+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, err
	}
	return aead.Seal(out, out[:NonceBytes], plaintext, nil), nil
}

// Decrypt splits the nonce off ciphertext and opens the remainder under key.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	if len(key) != KeyBytes {
		return nil, errKeySize
	}
	if len(ciphertext) < Overhead {
		return nil, ErrDecrypt
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, ciphertext[:NonceBytes], ciphertext[NonceBytes:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return pt, nil
}

// Compile-time assertion that AEAD implements domain.Cipher.
var _ domain.Cipher = AEAD{}
