package crypto

import (
	"crypto/rand"

	"kdcsim/internal/domain"
)

// GenerateLongTermKey returns a fresh random long-term key.
func GenerateLongTermKey() (k domain.LongTermKey, err error) {
	_, err = rand.Read(k[:])
	return k, err
}

// GenerateSessionKey returns a fresh random session key. Each call draws new
// bytes from crypto/rand; nothing is derived from earlier keys.
func GenerateSessionKey() (k domain.SessionKey, err error) {
	_, err = rand.Read(k[:])
	return k, err
}
