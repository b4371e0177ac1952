package interfaces

import (
	"context"

	domaintypes "kdcsim/internal/domain/types"
)

// KDCChannel carries an encrypted key request from a participant to the KDC
// and brings back the pair of encrypted grants.
type KDCChannel interface {
	RequestSessionKey(
		ctx context.Context,
		sender domaintypes.Identity,
		encryptedRequest []byte,
	) (domaintypes.GrantPair, error)
}
