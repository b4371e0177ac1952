// Package memzero wipes key material from memory on a best-effort basis.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites b with zeros in a constant-time friendly way.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
	runtime.KeepAlive(b)
}

// Key wipes a fixed-size 32-byte key in place.
func Key(k *[32]byte) {
	if k == nil {
		return
	}
	Zero(k[:])
}
