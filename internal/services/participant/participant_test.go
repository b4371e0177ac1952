package participant_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kdcsim/internal/crypto"
	"kdcsim/internal/domain"
	"kdcsim/internal/protocol/messages"
	"kdcsim/internal/services/kdc"
	"kdcsim/internal/services/participant"
	"kdcsim/internal/store"
	"kdcsim/internal/transport"
)

// clock is a settable time source shared by the KDC and participants.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type world struct {
	clock    *clock
	registry *store.KeyRegistry
	channel  *transport.Local
	people   map[domain.Identity]*participant.Participant
}

func newWorld(t *testing.T, opts participant.Options, ids ...domain.Identity) *world {
	t.Helper()
	w := &world{
		clock:    &clock{t: time.Unix(1_700_000_000, 0)},
		registry: store.NewKeyRegistry(nil),
		people:   make(map[domain.Identity]*participant.Participant),
	}
	cipher := crypto.NewAEAD()
	w.channel = transport.NewLocal(kdc.New(w.registry, cipher, nil, kdc.Options{Now: w.clock.Now}))
	opts.Now = w.clock.Now
	for _, id := range ids {
		key, err := w.registry.Register(id)
		require.NoError(t, err)
		w.people[id] = participant.New(id, key, cipher, nil, opts)
	}
	return w
}

// exchange runs a full key exchange initiated by from for to.
func (w *world) exchange(t *testing.T, from, to domain.Identity) {
	t.Helper()
	pair, err := w.people[from].SendRequest(context.Background(), w.channel, to)
	require.NoError(t, err)
	require.NoError(t, w.people[from].ReceiveSessionKey(pair.ForSender))
	require.NoError(t, w.people[to].ReceiveSessionKey(pair.ForReceiver))
}

func TestExchange_HelloB(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	a, b := w.people["A"], w.people["B"]
	require.Equal(t, participant.Unkeyed, a.State())
	require.Equal(t, participant.Unkeyed, b.State())

	w.exchange(t, "A", "B")

	require.Equal(t, participant.Keyed, a.State())
	require.Equal(t, participant.Keyed, b.State())

	fa, ok := a.SessionFingerprint()
	require.True(t, ok)
	fb, ok := b.SessionFingerprint()
	require.True(t, ok)
	require.Equal(t, fa, fb, "both sides must hold the same session key")

	peer, _ := a.Peer()
	require.Equal(t, domain.Identity("B"), peer)
	peer, _ = b.Peer()
	require.Equal(t, domain.Identity("A"), peer)

	role, _ := a.Role()
	require.Equal(t, domain.RoleInitiator, role)
	role, _ = b.Role()
	require.Equal(t, domain.RoleResponder, role)

	ct, err := a.SendMessage("Hello, B!")
	require.NoError(t, err)
	got, err := b.ReceiveMessage(ct)
	require.NoError(t, err)
	require.Equal(t, "Hello, B!", got)

	ct, err = b.SendMessage("Hi, A.")
	require.NoError(t, err)
	got, err = a.ReceiveMessage(ct)
	require.NoError(t, err)
	require.Equal(t, "Hi, A.", got)
}

func TestMessage_RoundTripVariety(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	w.exchange(t, "A", "B")
	for _, m := range []string{"", "x", "ünïcødé ✓", string(make([]byte, 4096))} {
		ct, err := w.people["A"].SendMessage(m)
		require.NoError(t, err)
		got, err := w.people["B"].ReceiveMessage(ct)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
}

func TestSendRequest_UnknownReceiver(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	_, err := w.people["A"].SendRequest(context.Background(), w.channel, "C")
	require.ErrorIs(t, err, domain.ErrUnknownIdentity)
	require.Equal(t, participant.Unkeyed, w.people["A"].State())
}

func TestSendRequest_DoesNotChangeState(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	_, err := w.people["A"].SendRequest(context.Background(), w.channel, "B")
	require.NoError(t, err)
	require.Equal(t, participant.Unkeyed, w.people["A"].State())
}

func TestSendMessage_BeforeGrant(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	_, err := w.people["B"].SendMessage("too early")
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
	_, err = w.people["B"].ReceiveMessage([]byte("anything"))
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSession_ExpiresAtUse(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	w.exchange(t, "A", "B")

	ct, err := w.people["A"].SendMessage("in time")
	require.NoError(t, err)

	// Exactly at validUntil is still valid; one second later is not.
	w.clock.Advance(kdc.DefaultValidityWindow)
	_, err = w.people["B"].ReceiveMessage(ct)
	require.NoError(t, err)

	w.clock.Advance(time.Second)
	_, err = w.people["A"].SendMessage("too late")
	require.ErrorIs(t, err, domain.ErrSessionExpired)
	_, err = w.people["B"].ReceiveMessage(ct)
	require.ErrorIs(t, err, domain.ErrSessionExpired)

	// Re-running the exchange recovers.
	w.exchange(t, "A", "B")
	ct, err = w.people["A"].SendMessage("again")
	require.NoError(t, err)
	got, err := w.people["B"].ReceiveMessage(ct)
	require.NoError(t, err)
	require.Equal(t, "again", got)
}

func TestReceiveSessionKey_ExpiredGrantPolicy(t *testing.T) {
	for _, reject := range []bool{false, true} {
		w := newWorld(t, participant.Options{RejectExpiredGrants: reject}, "A", "B")
		pair, err := w.people["A"].SendRequest(context.Background(), w.channel, "B")
		require.NoError(t, err)

		w.clock.Advance(kdc.DefaultValidityWindow + time.Second)
		err = w.people["B"].ReceiveSessionKey(pair.ForReceiver)
		if reject {
			require.ErrorIs(t, err, domain.ErrSessionExpired)
			require.Equal(t, participant.Unkeyed, w.people["B"].State())
			continue
		}
		require.NoError(t, err)
		require.Equal(t, participant.Keyed, w.people["B"].State())
		_, err = w.people["B"].SendMessage("late")
		require.ErrorIs(t, err, domain.ErrSessionExpired)
	}
}

func TestReceiveSessionKey_WrongHolder(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B", "C")
	pair, err := w.people["A"].SendRequest(context.Background(), w.channel, "B")
	require.NoError(t, err)

	err = w.people["C"].ReceiveSessionKey(pair.ForReceiver)
	require.ErrorIs(t, err, domain.ErrAuthenticationFailure)
	require.Equal(t, participant.Unkeyed, w.people["C"].State())
}

func TestReceiveSessionKey_Tampered(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	pair, err := w.people["A"].SendRequest(context.Background(), w.channel, "B")
	require.NoError(t, err)

	pair.ForReceiver[len(pair.ForReceiver)/2] ^= 0x80
	err = w.people["B"].ReceiveSessionKey(pair.ForReceiver)
	require.ErrorIs(t, err, domain.ErrAuthenticationFailure)
}

func TestReceiveSessionKey_Malformed(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A")
	key, err := w.registry.Lookup("A")
	require.NoError(t, err)

	// A valid request is not a valid grant.
	raw, err := messages.EncodeKeyRequest(domain.KeyRequest{Receiver: "B", Timestamp: 1})
	require.NoError(t, err)
	blob, err := crypto.Encrypt(key[:], raw)
	require.NoError(t, err)

	err = w.people["A"].ReceiveSessionKey(blob)
	require.ErrorIs(t, err, domain.ErrMalformedGrant)
	require.Equal(t, participant.Unkeyed, w.people["A"].State())
}

func TestReceiveSessionKey_SelfAsPeer(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A")
	key, err := w.registry.Lookup("A")
	require.NoError(t, err)

	g := domain.SessionKeyGrant{Peer: "A", Role: domain.RoleResponder, IssuedAt: 1, ValidUntil: 2}
	raw, err := messages.EncodeGrant(&g)
	require.NoError(t, err)
	blob, err := crypto.Encrypt(key[:], raw)
	require.NoError(t, err)

	require.ErrorIs(t, w.people["A"].ReceiveSessionKey(blob), domain.ErrMalformedGrant)
}

func TestReceiveMessage_TamperedOrForeign(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B", "C", "D")
	w.exchange(t, "A", "B")
	w.exchange(t, "C", "D")

	ct, err := w.people["A"].SendMessage("for B only")
	require.NoError(t, err)

	_, err = w.people["D"].ReceiveMessage(ct)
	require.ErrorIs(t, err, domain.ErrAuthenticationFailure)

	for i := range ct {
		bad := append([]byte(nil), ct...)
		bad[i] ^= 0x01
		_, err = w.people["B"].ReceiveMessage(bad)
		require.ErrorIs(t, err, domain.ErrAuthenticationFailure, "byte %d", i)
	}
}

func TestRekey_OverwritesPreviousSession(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B", "C")
	w.exchange(t, "A", "B")
	old, err := w.people["A"].SendMessage("old session")
	require.NoError(t, err)
	first, _ := w.people["A"].SessionFingerprint()

	w.exchange(t, "C", "A")
	peer, _ := w.people["A"].Peer()
	require.Equal(t, domain.Identity("C"), peer)
	second, _ := w.people["A"].SessionFingerprint()
	require.NotEqual(t, first, second)

	// B still holds the old key; A no longer does.
	_, err = w.people["B"].ReceiveMessage(old)
	require.NoError(t, err)
	ct, err := w.people["A"].SendMessage("new session")
	require.NoError(t, err)
	_, err = w.people["B"].ReceiveMessage(ct)
	require.ErrorIs(t, err, domain.ErrAuthenticationFailure)
	got, err := w.people["C"].ReceiveMessage(ct)
	require.NoError(t, err)
	require.Equal(t, "new session", got)
}

func TestReset(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	w.exchange(t, "A", "B")
	a := w.people["A"]

	a.Reset()
	require.Equal(t, participant.Unkeyed, a.State())
	_, ok := a.Peer()
	require.False(t, ok)
	_, ok = a.ValidUntil()
	require.False(t, ok)
	_, err := a.SendMessage("gone")
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestValidUntil(t *testing.T) {
	w := newWorld(t, participant.Options{}, "A", "B")
	w.exchange(t, "A", "B")
	vu, ok := w.people["B"].ValidUntil()
	require.True(t, ok)
	require.Equal(t, w.clock.Now().Add(kdc.DefaultValidityWindow).Unix(), vu.Unix())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unkeyed", participant.Unkeyed.String())
	require.Equal(t, "keyed", participant.Keyed.String())
	require.Equal(t, "unknown", participant.State(9).String())
}
