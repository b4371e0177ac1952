package kdc

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/op/go-logging.v1"

	"kdcsim/internal/crypto"
	"kdcsim/internal/domain"
	klog "kdcsim/internal/log"
	"kdcsim/internal/metrics"
	"kdcsim/internal/protocol/messages"
	"kdcsim/internal/util/memzero"
)

// DefaultValidityWindow is how long an issued session key stays usable.
const DefaultValidityWindow = 600 * time.Second

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	// ValidityWindow is added to the issue time to get validUntil. It is
	// truncated to whole seconds.
	ValidityWindow time.Duration

	// MaxRequestSkew bounds how far a request timestamp may be from the KDC
	// clock. Zero disables the check.
	MaxRequestSkew time.Duration

	// Now is the KDC clock. Defaults to time.Now.
	Now func() time.Time

	// Metrics receives outcome counts. Defaults to metrics.Dummy.
	Metrics domain.KDCMetrics

	// NewSessionKey mints session keys. Defaults to crypto.GenerateSessionKey.
	NewSessionKey func() (domain.SessionKey, error)
}

// Service authenticates key requests and issues grant pairs.
type Service struct {
	registry domain.KeyRegistry
	cipher   domain.Cipher
	log      *logging.Logger

	window     int64 // seconds
	skew       time.Duration
	now        func() time.Time
	metrics    domain.KDCMetrics
	newSession func() (domain.SessionKey, error)
}

// New constructs a KDC Service over registry.
func New(
	registry domain.KeyRegistry,
	cipher domain.Cipher,
	log *logging.Logger,
	opts Options,
) *Service {
	s := &Service{
		registry:   registry,
		cipher:     cipher,
		log:        log,
		window:     int64(opts.ValidityWindow / time.Second),
		skew:       opts.MaxRequestSkew,
		now:        opts.Now,
		metrics:    opts.Metrics,
		newSession: opts.NewSessionKey,
	}
	if s.window <= 0 {
		s.window = int64(DefaultValidityWindow / time.Second)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = metrics.Dummy{}
	}
	if s.newSession == nil {
		s.newSession = crypto.GenerateSessionKey
	}
	if s.log == nil {
		s.log = klog.Discard().GetLogger("kdc")
	}
	return s
}

// ValidityWindow returns the lifetime given to every issued session key.
func (s *Service) ValidityWindow() time.Duration {
	return time.Duration(s.window) * time.Second
}

// HandleRequest authenticates encryptedRequest as coming from claimedSender
// and, on success, returns the sender-bound and receiver-bound grants.
//
// Steps:
//  1. Look up the claimed sender's long-term key.
//  2. Open the request with it. Failure means the caller does not hold the
//     key, so it is reported as an authentication failure.
//  3. Decode the KeyRequest and check its freshness.
//  4. Look up the receiver's long-term key.
//  5. Mint a session key and seal one grant for each side.
func (s *Service) HandleRequest(
	encryptedRequest []byte,
	claimedSender domain.Identity,
) (domain.GrantPair, error) {
	s.metrics.RequestReceived()

	senderKey, err := s.registry.Lookup(claimedSender)
	if err != nil {
		return domain.GrantPair{}, s.reject(metrics.ReasonUnknownIdentity, claimedSender, err)
	}
	defer memzero.Key((*[32]byte)(&senderKey))

	raw, err := s.cipher.Decrypt(senderKey[:], encryptedRequest)
	if err != nil {
		return domain.GrantPair{}, s.reject(metrics.ReasonAuthentication, claimedSender,
			fmt.Errorf("request from %q: %w", claimedSender, domain.ErrAuthenticationFailure))
	}

	req, err := messages.DecodeKeyRequest(raw)
	if err != nil {
		return domain.GrantPair{}, s.reject(metrics.ReasonMalformed, claimedSender, err)
	}
	if req.Receiver == claimedSender {
		return domain.GrantPair{}, s.reject(metrics.ReasonMalformed, claimedSender,
			fmt.Errorf("%w: receiver is the requester", domain.ErrMalformedRequest))
	}

	now := s.now()
	if err := s.checkFresh(req, now); err != nil {
		return domain.GrantPair{}, s.reject(metrics.ReasonStale, claimedSender, err)
	}

	receiverKey, err := s.registry.Lookup(req.Receiver)
	if err != nil {
		return domain.GrantPair{}, s.reject(metrics.ReasonUnknownIdentity, claimedSender, err)
	}
	defer memzero.Key((*[32]byte)(&receiverKey))

	s.log.Noticef("%s requested to communicate with %s.", claimedSender, req.Receiver)

	sessionKey, err := s.newSession()
	if err != nil {
		return domain.GrantPair{}, s.reject(metrics.ReasonInternal, claimedSender,
			fmt.Errorf("generate session key: %w", err))
	}
	txn := domain.Transaction{
		ID:         uuid.New(),
		Requester:  claimedSender,
		Receiver:   req.Receiver,
		SessionKey: sessionKey,
		IssuedAt:   time.Unix(now.Unix(), 0),
		ValidUntil: time.Unix(now.Unix()+s.window, 0),
	}
	memzero.Key((*[32]byte)(&sessionKey))
	defer memzero.Key((*[32]byte)(&txn.SessionKey))

	pair, err := s.seal(&txn, senderKey, receiverKey)
	if err != nil {
		return domain.GrantPair{}, s.reject(metrics.ReasonInternal, claimedSender, err)
	}

	s.metrics.GrantsIssued()
	s.log.Noticef("Session key generated and encrypted for %s and %s (txn %s, valid until %s).",
		txn.Requester, txn.Receiver, txn.ID, txn.ValidUntil.UTC().Format(time.RFC3339))
	return pair, nil
}

// seal encodes and encrypts both grants. It returns both or neither.
func (s *Service) seal(
	txn *domain.Transaction,
	senderKey, receiverKey domain.LongTermKey,
) (domain.GrantPair, error) {
	forSender, err := s.sealGrant(txn, txn.Receiver, domain.RoleInitiator, senderKey)
	if err != nil {
		return domain.GrantPair{}, fmt.Errorf("txn %s: sender grant: %w", txn.ID, err)
	}
	forReceiver, err := s.sealGrant(txn, txn.Requester, domain.RoleResponder, receiverKey)
	if err != nil {
		return domain.GrantPair{}, fmt.Errorf("txn %s: receiver grant: %w", txn.ID, err)
	}
	return domain.GrantPair{ForSender: forSender, ForReceiver: forReceiver}, nil
}

func (s *Service) sealGrant(
	txn *domain.Transaction,
	peer domain.Identity,
	role domain.GrantRole,
	key domain.LongTermKey,
) ([]byte, error) {
	g := domain.SessionKeyGrant{
		SessionKey: txn.SessionKey,
		Peer:       peer,
		Role:       role,
		IssuedAt:   txn.IssuedAt.Unix(),
		ValidUntil: txn.ValidUntil.Unix(),
	}
	defer memzero.Key((*[32]byte)(&g.SessionKey))

	plain, err := messages.EncodeGrant(&g)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(plain)
	return s.cipher.Encrypt(key[:], plain)
}

func (s *Service) checkFresh(req domain.KeyRequest, now time.Time) error {
	if s.skew <= 0 {
		return nil
	}
	delta := now.Sub(time.Unix(req.Timestamp, 0))
	if delta < 0 {
		delta = -delta
	}
	if delta > s.skew {
		return fmt.Errorf("%w: timestamp off by %s", domain.ErrStaleRequest, delta.Truncate(time.Second))
	}
	return nil
}

func (s *Service) reject(reason string, sender domain.Identity, err error) error {
	s.metrics.RequestRejected(reason)
	if errors.Is(err, domain.ErrAuthenticationFailure) {
		s.log.Warningf("Rejected request claiming to be %q: %v", sender, err)
	} else {
		s.log.Infof("Rejected request from %q: %v", sender, err)
	}
	return err
}

// Compile-time assertion that Service implements domain.KDCService.
var _ domain.KDCService = (*Service)(nil)
