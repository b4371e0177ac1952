package domain

import (
	interfaces "kdcsim/internal/domain/interfaces"
	types "kdcsim/internal/domain/types"
)

// KeySize is the length in bytes of long-term and session keys.
const KeySize = types.KeySize

// Grant roles re-exported for compact imports.
const (
	RoleInitiator = types.RoleInitiator
	RoleResponder = types.RoleResponder
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Identity        = types.Identity
	Fingerprint     = types.Fingerprint
	GrantRole       = types.GrantRole
	LongTermKey     = types.LongTermKey
	SessionKey      = types.SessionKey
	KeyRequest      = types.KeyRequest
	SessionKeyGrant = types.SessionKeyGrant
	GrantPair       = types.GrantPair
	Transaction     = types.Transaction
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KDCService  = interfaces.KDCService
	Cipher      = interfaces.Cipher
	KDCMetrics  = interfaces.KDCMetrics
	KeyRegistry = interfaces.KeyRegistry
	KDCChannel  = interfaces.KDCChannel
)
