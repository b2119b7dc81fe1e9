package iso

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaudio-protocol/leaudio-go/pkg/qos"
)

func TestFromQoS(t *testing.T) {
	cfg := &qos.Config{
		IntervalUs: 10000,
		Framing:    qos.FramingUnframed,
		PHY:        qos.PHY2M,
		SDU:        120,
		RTN:        4,
		LatencyMs:  20,
	}

	tx := FromQoS(cfg)
	assert.Equal(t, uint16(120), tx.SDU)
	assert.Equal(t, qos.PHY2M, tx.PHY)
	assert.Equal(t, uint8(4), tx.RTN)
}

func TestChannelCallbacks(t *testing.T) {
	var connected, sent int
	var disconnectReason uint8

	ch := NewChannel(&ChannelOps{
		Connected:    func(*Channel) { connected++ },
		Disconnected: func(_ *Channel, reason uint8) { disconnectReason = reason },
		Sent:         func(*Channel) { sent++ },
	})

	require.NotEmpty(t, ch.ID())

	ch.NotifyConnected()
	ch.NotifySent()
	ch.NotifyDisconnected(0x13)

	assert.Equal(t, 1, connected)
	assert.Equal(t, 1, sent)
	assert.Equal(t, uint8(0x13), disconnectReason)
}

func TestChannelNilOps(t *testing.T) {
	ch := NewChannel(nil)

	// Must not panic
	ch.NotifyConnected()
	ch.NotifyDisconnected(0)
	ch.NotifySent()
}

func TestChannelBind(t *testing.T) {
	ch := NewChannel(nil)
	owner := &struct{ name string }{name: "endpoint"}

	ch.Bind(owner)
	assert.Same(t, owner, ch.Attachment())

	ch.Unbind()
	assert.Nil(t, ch.Attachment())
}

// bigRecorder records observer callbacks.
type bigRecorder struct {
	started []Big
	stopped []Big
	reasons []uint8
}

func (r *bigRecorder) BigStarted(big Big) {
	r.started = append(r.started, big)
}

func (r *bigRecorder) BigStopped(big Big, reason uint8) {
	r.stopped = append(r.stopped, big)
	r.reasons = append(r.reasons, reason)
}

func TestLoopbackLifecycle(t *testing.T) {
	transport := NewLoopback(nil)
	recorder := &bigRecorder{}
	require.NoError(t, transport.RegisterObserver(recorder))

	var connected, disconnected int
	ops := &ChannelOps{
		Connected:    func(*Channel) { connected++ },
		Disconnected: func(*Channel, uint8) { disconnected++ },
	}
	channels := []*Channel{NewChannel(ops), NewChannel(ops)}

	big, err := transport.CreateBig(StaticAdvertiser(0), BigParams{Channels: channels})
	require.NoError(t, err)
	require.NotNil(t, big)

	assert.Equal(t, 2, connected)
	require.Len(t, recorder.started, 1)
	assert.Equal(t, big.ID(), recorder.started[0].ID())

	require.NoError(t, transport.TerminateBig(big))
	assert.Equal(t, 2, disconnected)
	require.Len(t, recorder.stopped, 1)
	assert.Equal(t, ReasonLocalTermination, recorder.reasons[0])

	// Terminating again fails: the handle is gone
	err = transport.TerminateBig(big)
	assert.ErrorIs(t, err, ErrUnknownBig)
}

func TestLoopbackNoChannels(t *testing.T) {
	transport := NewLoopback(nil)

	_, err := transport.CreateBig(StaticAdvertiser(0), BigParams{})
	assert.ErrorIs(t, err, ErrNoChannels)
}

func TestLoopbackFailNextCreate(t *testing.T) {
	transport := NewLoopback(nil)
	injected := errors.New("controller rejected BIG")
	transport.FailNextCreate(injected)

	_, err := transport.CreateBig(StaticAdvertiser(0), BigParams{
		Channels: []*Channel{NewChannel(nil)},
	})
	assert.ErrorIs(t, err, injected)

	// Failure injection is one-shot
	_, err = transport.CreateBig(StaticAdvertiser(0), BigParams{
		Channels: []*Channel{NewChannel(nil)},
	})
	assert.NoError(t, err)
}

func TestLoopbackDuplicateObserver(t *testing.T) {
	transport := NewLoopback(nil)
	recorder := &bigRecorder{}

	require.NoError(t, transport.RegisterObserver(recorder))
	assert.ErrorIs(t, transport.RegisterObserver(recorder), ErrObserverRegistered)
}

func TestLoopbackSendAll(t *testing.T) {
	transport := NewLoopback(nil)

	var sent int
	ops := &ChannelOps{Sent: func(*Channel) { sent++ }}
	channels := []*Channel{NewChannel(ops), NewChannel(ops), NewChannel(ops)}

	big, err := transport.CreateBig(StaticAdvertiser(0), BigParams{Channels: channels})
	require.NoError(t, err)

	require.NoError(t, transport.SendAll(big))
	assert.Equal(t, 3, sent)
}

func TestPackingString(t *testing.T) {
	assert.Equal(t, "SEQUENTIAL", PackingSequential.String())
	assert.Equal(t, "INTERLEAVED", PackingInterleaved.String())
	assert.Equal(t, "UNKNOWN", Packing(7).String())
}
