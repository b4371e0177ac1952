package types

import (
	"time"

	"github.com/google/uuid"
)

// KeyRequest is what a participant asks the KDC for. It only ever travels
// encrypted under the requester's long-term key.
type KeyRequest struct {
	Receiver  Identity
	Timestamp int64 // Unix seconds
}

// SessionKeyGrant delivers a session key to one side of a transaction. It
// only ever travels encrypted under the holder's long-term key.
type SessionKeyGrant struct {
	SessionKey SessionKey
	Peer       Identity
	Role       GrantRole
	IssuedAt   int64 // Unix seconds
	ValidUntil int64 // Unix seconds
}

// Expired reports whether the grant is no longer usable at now.
func (g *SessionKeyGrant) Expired(now time.Time) bool {
	return now.Unix() > g.ValidUntil
}

// GrantPair is the KDC's answer to one request: the sender-bound grant and
// the receiver-bound grant, each already encrypted.
type GrantPair struct {
	ForSender   []byte
	ForReceiver []byte
}

// Transaction is the KDC's transient view of one key exchange. It is never
// retained past the request that created it.
type Transaction struct {
	ID         uuid.UUID
	Requester  Identity
	Receiver   Identity
	SessionKey SessionKey
	IssuedAt   time.Time
	ValidUntil time.Time
}
