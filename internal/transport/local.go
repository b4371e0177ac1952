package transport

import (
	"bytes"
	"context"

	"kdcsim/internal/domain"
)

// Interceptor sees, and may replace, a blob in transit. It stands in for
// whatever sits on a real network path.
type Interceptor func(blob []byte) []byte

// Local is a synchronous in-process KDC channel.
type Local struct {
	KDC domain.KDCService

	// Intercept, if set, is applied to every request before it reaches the
	// KDC.
	Intercept Interceptor
}

// NewLocal returns a channel delivering directly to kdc.
func NewLocal(kdc domain.KDCService) *Local {
	return &Local{KDC: kdc}
}

// RequestSessionKey delivers encryptedRequest to the KDC on behalf of sender.
func (c *Local) RequestSessionKey(
	ctx context.Context,
	sender domain.Identity,
	encryptedRequest []byte,
) (domain.GrantPair, error) {
	if err := ctx.Err(); err != nil {
		return domain.GrantPair{}, err
	}
	blob := bytes.Clone(encryptedRequest)
	if c.Intercept != nil {
		blob = c.Intercept(blob)
	}
	pair, err := c.KDC.HandleRequest(blob, sender)
	if err != nil {
		return domain.GrantPair{}, err
	}
	return domain.GrantPair{
		ForSender:   bytes.Clone(pair.ForSender),
		ForReceiver: bytes.Clone(pair.ForReceiver),
	}, nil
}

// Compile-time assertion that Local implements domain.KDCChannel.
var _ domain.KDCChannel = (*Local)(nil)
