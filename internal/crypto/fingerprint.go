package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"kdcsim/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a key.
//
// It hashes with SHA-256 under a fixed label and truncates to 10 bytes
// (20 hex chars).
func Fingerprint(key []byte) domain.Fingerprint {
	h := sha256.New()
	h.Write([]byte("kdcsim-fingerprint"))
	h.Write(key)
	sum := h.Sum(nil)
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
