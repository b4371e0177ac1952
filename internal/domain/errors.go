package domain

import "errors"

var (
	// ErrUnknownIdentity is returned when an identity has no registered key.
	ErrUnknownIdentity = errors.New("unknown identity")

	// ErrDuplicateIdentity is returned when registering an identity twice.
	ErrDuplicateIdentity = errors.New("identity already registered")

	// ErrInvalidIdentity is returned for an empty identity.
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrAuthenticationFailure is returned when a ciphertext does not open
	// under the expected key: wrong key, tampering or garbage input.
	ErrAuthenticationFailure = errors.New("authentication failure")

	// ErrMalformedRequest is returned when a key request decrypts but does not
	// decode into a valid request.
	ErrMalformedRequest = errors.New("malformed key request")

	// ErrMalformedGrant is returned when a grant decrypts but does not decode
	// into a valid grant.
	ErrMalformedGrant = errors.New("malformed session key grant")

	// ErrStaleRequest is returned when a key request timestamp falls outside
	// the KDC's accepted clock skew.
	ErrStaleRequest = errors.New("stale key request")

	// ErrNoActiveSession is returned when a participant without a session key
	// tries to send or receive.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionExpired is returned when the session key's validity window
	// has passed.
	ErrSessionExpired = errors.New("session expired")
)
