package types

// KeySize is the length in bytes of every symmetric key in the protocol.
const KeySize = 32

// LongTermKey is the static key shared between one participant and the KDC.
type LongTermKey [KeySize]byte

// Slice returns the key as a []byte.
func (k *LongTermKey) Slice() []byte { return k[:] }

// SessionKey is the ephemeral key shared by the two sides of a transaction.
type SessionKey [KeySize]byte

// Slice returns the key as a []byte.
func (k *SessionKey) Slice() []byte { return k[:] }
