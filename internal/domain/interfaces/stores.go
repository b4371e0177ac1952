package interfaces

import domaintypes "kdcsim/internal/domain/types"

// KeyRegistry maps participant identities to their long-term keys.
type KeyRegistry interface {
	Register(id domaintypes.Identity) (domaintypes.LongTermKey, error)
	Lookup(id domaintypes.Identity) (domaintypes.LongTermKey, error)
	Identities() []domaintypes.Identity
}
