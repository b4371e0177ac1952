package messages

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"kdcsim/internal/domain"
)

// Version is the only protocol version this package encodes or accepts.
const Version = 1

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		MaxMapPairs:       16,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

type keyRequest struct {
	V         int    `cbor:"v"`
	Receiver  string `cbor:"receiver"`
	Timestamp int64  `cbor:"timestamp"`
}

type sessionKeyGrant struct {
	V          int    `cbor:"v"`
	SessionKey []byte `cbor:"sessionKey"`
	Peer       string `cbor:"peer"`
	Role       string `cbor:"role"`
	IssuedAt   int64  `cbor:"issuedAt"`
	ValidUntil int64  `cbor:"validUntil"`
}

// EncodeKeyRequest serialises req.
func EncodeKeyRequest(req domain.KeyRequest) ([]byte, error) {
	if req.Receiver == "" {
		return nil, fmt.Errorf("%w: empty receiver", domain.ErrMalformedRequest)
	}
	return encMode.Marshal(keyRequest{
		V:         Version,
		Receiver:  string(req.Receiver),
		Timestamp: req.Timestamp,
	})
}

// DecodeKeyRequest parses and validates a serialised KeyRequest.
func DecodeKeyRequest(b []byte) (domain.KeyRequest, error) {
	var w keyRequest
	if err := decMode.Unmarshal(b, &w); err != nil {
		return domain.KeyRequest{}, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
	}
	switch {
	case w.V != Version:
		return domain.KeyRequest{}, fmt.Errorf("%w: unsupported version %d", domain.ErrMalformedRequest, w.V)
	case w.Receiver == "":
		return domain.KeyRequest{}, fmt.Errorf("%w: missing receiver", domain.ErrMalformedRequest)
	case w.Timestamp <= 0:
		return domain.KeyRequest{}, fmt.Errorf("%w: missing timestamp", domain.ErrMalformedRequest)
	}
	return domain.KeyRequest{
		Receiver:  domain.Identity(w.Receiver),
		Timestamp: w.Timestamp,
	}, nil
}

// EncodeGrant serialises g. The returned buffer holds key material; callers
// wipe it once it has been encrypted.
func EncodeGrant(g *domain.SessionKeyGrant) ([]byte, error) {
	if err := validateGrant(g); err != nil {
		return nil, err
	}
	return encMode.Marshal(sessionKeyGrant{
		V:          Version,
		SessionKey: g.SessionKey[:],
		Peer:       string(g.Peer),
		Role:       string(g.Role),
		IssuedAt:   g.IssuedAt,
		ValidUntil: g.ValidUntil,
	})
}

// DecodeGrant parses and validates a serialised SessionKeyGrant.
func DecodeGrant(b []byte) (domain.SessionKeyGrant, error) {
	var w sessionKeyGrant
	if err := decMode.Unmarshal(b, &w); err != nil {
		return domain.SessionKeyGrant{}, fmt.Errorf("%w: %v", domain.ErrMalformedGrant, err)
	}
	if w.V != Version {
		return domain.SessionKeyGrant{}, fmt.Errorf("%w: unsupported version %d", domain.ErrMalformedGrant, w.V)
	}
	if len(w.SessionKey) != domain.KeySize {
		return domain.SessionKeyGrant{}, fmt.Errorf("%w: session key is %d bytes", domain.ErrMalformedGrant, len(w.SessionKey))
	}
	g := domain.SessionKeyGrant{
		Peer:       domain.Identity(w.Peer),
		Role:       domain.GrantRole(w.Role),
		IssuedAt:   w.IssuedAt,
		ValidUntil: w.ValidUntil,
	}
	copy(g.SessionKey[:], w.SessionKey)
	if err := validateGrant(&g); err != nil {
		return domain.SessionKeyGrant{}, err
	}
	return g, nil
}

func validateGrant(g *domain.SessionKeyGrant) error {
	switch {
	case g.Peer == "":
		return fmt.Errorf("%w: missing peer", domain.ErrMalformedGrant)
	case !g.Role.Valid():
		return fmt.Errorf("%w: invalid role %q", domain.ErrMalformedGrant, g.Role)
	case g.IssuedAt <= 0:
		return fmt.Errorf("%w: missing issuedAt", domain.ErrMalformedGrant)
	case g.ValidUntil < g.IssuedAt:
		return fmt.Errorf("%w: validUntil precedes issuedAt", domain.ErrMalformedGrant)
	}
	return nil
}
