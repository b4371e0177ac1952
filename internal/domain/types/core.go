package types

// Identity names a participant known to the KDC.
type Identity string

// String returns the string form of the identity.
func (id Identity) String() string { return string(id) }

// Fingerprint is a short identifier for keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// GrantRole records which side of a transaction a grant was issued to.
type GrantRole string

const (
	// RoleInitiator marks the copy for the participant that asked the KDC.
	RoleInitiator GrantRole = "initiator"
	// RoleResponder marks the copy for the participant that was asked for.
	RoleResponder GrantRole = "responder"
)

// String returns the string form of the role.
func (r GrantRole) String() string { return string(r) }

// Valid reports whether r is one of the defined roles.
func (r GrantRole) Valid() bool {
	return r == RoleInitiator || r == RoleResponder
}
