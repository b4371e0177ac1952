package participant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gopkg.in/op/go-logging.v1"

	"kdcsim/internal/crypto"
	"kdcsim/internal/domain"
	klog "kdcsim/internal/log"
	"kdcsim/internal/protocol/messages"
	"kdcsim/internal/util/memzero"
)

// traceLimit bounds how much of a ciphertext is echoed to the log.
const traceLimit = 48

// Options tunes a Participant. Zero values select the defaults.
type Options struct {
	// Now is the participant clock. Defaults to time.Now.
	Now func() time.Time

	// RejectExpiredGrants makes ReceiveSessionKey refuse a grant whose
	// validUntil has already passed, instead of accepting it and failing on
	// first use.
	RejectExpiredGrants bool
}

type session struct {
	key        domain.SessionKey
	peer       domain.Identity
	role       domain.GrantRole
	validUntil int64
}

// Participant is one party that shares a long-term key with the KDC.
type Participant struct {
	id     domain.Identity
	key    domain.LongTermKey
	cipher domain.Cipher
	log    *logging.Logger

	now           func() time.Time
	rejectExpired bool

	mu      sync.Mutex
	session *session
}

// New returns an Unkeyed participant holding key, the long-term key the KDC
// registered for id.
func New(
	id domain.Identity,
	key domain.LongTermKey,
	cipher domain.Cipher,
	log *logging.Logger,
	opts Options,
) *Participant {
	p := &Participant{
		id:            id,
		key:           key,
		cipher:        cipher,
		log:           log,
		now:           opts.Now,
		rejectExpired: opts.RejectExpiredGrants,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.log == nil {
		p.log = klog.Discard().GetLogger("participant/" + string(id))
	}
	return p
}

// ID returns the participant's identity.
func (p *Participant) ID() domain.Identity { return p.id }

// State reports whether the participant currently holds a session key.
func (p *Participant) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return Unkeyed
	}
	return Keyed
}

// Peer returns the identity the current session is scoped to.
func (p *Participant) Peer() (domain.Identity, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return "", false
	}
	return p.session.peer, true
}

// Role returns which side of the exchange the current session came from.
func (p *Participant) Role() (domain.GrantRole, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return "", false
	}
	return p.session.role, true
}

// ValidUntil returns the expiry of the current session.
func (p *Participant) ValidUntil() (time.Time, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return time.Time{}, false
	}
	return time.Unix(p.session.validUntil, 0), true
}

// SessionFingerprint returns a fingerprint of the current session key. Two
// participants sharing a session report the same fingerprint.
func (p *Participant) SessionFingerprint() (domain.Fingerprint, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return "", false
	}
	return crypto.Fingerprint(p.session.key[:]), true
}

// SendRequest asks the KDC, over ch, for a session with receiver. It does
// not change the participant's state; the returned grants still have to be
// delivered with ReceiveSessionKey.
func (p *Participant) SendRequest(
	ctx context.Context,
	ch domain.KDCChannel,
	receiver domain.Identity,
) (domain.GrantPair, error) {
	raw, err := messages.EncodeKeyRequest(domain.KeyRequest{
		Receiver:  receiver,
		Timestamp: p.now().Unix(),
	})
	if err != nil {
		return domain.GrantPair{}, err
	}
	sealed, err := p.cipher.Encrypt(p.key[:], raw)
	if err != nil {
		return domain.GrantPair{}, fmt.Errorf("seal key request: %w", err)
	}
	p.log.Noticef("%s: Request sent to KDC to communicate with %s.", p.id, receiver)
	return ch.RequestSessionKey(ctx, p.id, sealed)
}

// ReceiveSessionKey opens a grant sealed under the participant's long-term
// key and moves to Keyed, replacing any previous session.
func (p *Participant) ReceiveSessionKey(encryptedGrant []byte) error {
	raw, err := p.cipher.Decrypt(p.key[:], encryptedGrant)
	if err != nil {
		return fmt.Errorf("%s: open grant: %w", p.id, domain.ErrAuthenticationFailure)
	}
	defer memzero.Zero(raw)

	g, err := messages.DecodeGrant(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", p.id, err)
	}
	defer memzero.Key((*[32]byte)(&g.SessionKey))

	if g.Peer == p.id {
		return fmt.Errorf("%s: %w: grant names holder as peer", p.id, domain.ErrMalformedGrant)
	}
	if p.rejectExpired && g.Expired(p.now()) {
		return fmt.Errorf("%s: grant for %s: %w", p.id, g.Peer, domain.ErrSessionExpired)
	}

	p.mu.Lock()
	p.dropLocked()
	p.session = &session{
		key:        g.SessionKey,
		peer:       g.Peer,
		role:       g.Role,
		validUntil: g.ValidUntil,
	}
	p.mu.Unlock()

	p.log.Noticef("%s: Session key received and decrypted (peer %s).", p.id, g.Peer)
	return nil
}

// SendMessage seals plaintext under the session key.
func (p *Participant) SendMessage(plaintext string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.activeLocked()
	if err != nil {
		return nil, err
	}
	ct, err := p.cipher.Encrypt(s.key[:], []byte(plaintext))
	if err != nil {
		return nil, fmt.Errorf("%s: seal message: %w", p.id, err)
	}
	p.log.Noticef("%s → %s: %s", p.id, s.peer, crypto.B64(ct, traceLimit))
	return ct, nil
}

// ReceiveMessage opens a ciphertext sealed under the session key.
func (p *Participant) ReceiveMessage(ciphertext []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, err := p.activeLocked()
	if err != nil {
		return "", err
	}
	pt, err := p.cipher.Decrypt(s.key[:], ciphertext)
	if err != nil {
		return "", fmt.Errorf("%s: message from %s: %w", p.id, s.peer, domain.ErrAuthenticationFailure)
	}
	p.log.Noticef("%s: Message received: %s", p.id, pt)
	return string(pt), nil
}

// Reset drops the current session, returning to Unkeyed.
func (p *Participant) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dropLocked()
}

func (p *Participant) activeLocked() (*session, error) {
	if p.session == nil {
		return nil, fmt.Errorf("%s: %w", p.id, domain.ErrNoActiveSession)
	}
	if p.now().Unix() > p.session.validUntil {
		return nil, fmt.Errorf("%s: session with %s: %w", p.id, p.session.peer, domain.ErrSessionExpired)
	}
	return p.session, nil
}

func (p *Participant) dropLocked() {
	if p.session == nil {
		return
	}
	memzero.Key((*[32]byte)(&p.session.key))
	p.session = nil
}
