package transport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"kdcsim/internal/domain"
	"kdcsim/internal/transport"
)

type recordingKDC struct {
	gotBlob   []byte
	gotSender domain.Identity
	pair      domain.GrantPair
	err       error
}

func (k *recordingKDC) HandleRequest(blob []byte, sender domain.Identity) (domain.GrantPair, error) {
	k.gotBlob, k.gotSender = blob, sender
	return k.pair, k.err
}

func TestLocal_DeliversAndCopies(t *testing.T) {
	kdc := &recordingKDC{pair: domain.GrantPair{ForSender: []byte{1}, ForReceiver: []byte{2}}}
	ch := transport.NewLocal(kdc)

	req := []byte{9, 9, 9}
	pair, err := ch.RequestSessionKey(context.Background(), "A", req)
	require.NoError(t, err)
	require.Equal(t, domain.Identity("A"), kdc.gotSender)
	require.Equal(t, req, kdc.gotBlob)

	req[0] = 0
	require.Equal(t, byte(9), kdc.gotBlob[0], "KDC must not see sender-side mutation")

	pair.ForSender[0] = 7
	require.Equal(t, byte(1), kdc.pair.ForSender[0], "caller must not mutate KDC buffers")
}

func TestLocal_Intercept(t *testing.T) {
	kdc := &recordingKDC{}
	ch := transport.NewLocal(kdc)
	ch.Intercept = func(b []byte) []byte { return append(b, 0xff) }

	_, err := ch.RequestSessionKey(context.Background(), "A", []byte{1})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0xff}, kdc.gotBlob)
}

func TestLocal_CancelledContext(t *testing.T) {
	kdc := &recordingKDC{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := transport.NewLocal(kdc).RequestSessionKey(ctx, "A", []byte{1})
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, kdc.gotBlob)
}

func TestLocal_PropagatesError(t *testing.T) {
	kdc := &recordingKDC{err: domain.ErrUnknownIdentity}
	_, err := transport.NewLocal(kdc).RequestSessionKey(context.Background(), "Z", []byte{1})
	require.ErrorIs(t, err, domain.ErrUnknownIdentity)
}
