package broadcast

import (
	"github.com/leaudio-protocol/leaudio-go/pkg/codec"
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
	"github.com/leaudio-protocol/leaudio-go/pkg/qos"
)

// StreamOps are the callbacks an application registers on a stream to
// observe its lifecycle. Any callback may be nil. Callbacks are invoked
// without internal locks held.
type StreamOps struct {
	// Connected is called when the stream's isochronous channel is
	// established.
	Connected func(*Stream)

	// Disconnected is called when the channel is torn down, with the
	// transport reason code.
	Disconnected func(*Stream, uint8)

	// Started is called when the stream has entered the streaming state.
	Started func(*Stream)

	// Stopped is called when the stream has left the streaming state,
	// with the transport reason code.
	Stopped func(*Stream, uint8)

	// Sent is called when an SDU transmission completes.
	Sent func(*Stream)
}

// Stream is one broadcast audio stream. The caller allocates Stream values
// and hands them to Manager.Create; the manager binds each to an endpoint
// and an isochronous channel.
type Stream struct {
	// Ops are the application lifecycle callbacks.
	Ops *StreamOps

	ep       *Endpoint
	codecCfg *codec.Config
	qos      *qos.Config
	group    *Source
}

// NewStream creates an unbound stream with the given callbacks.
func NewStream(ops *StreamOps) *Stream {
	return &Stream{Ops: ops}
}

// Endpoint returns the bound endpoint, or nil while unbound.
func (st *Stream) Endpoint() *Endpoint {
	return st.ep
}

// CodecConfig returns the stream's effective (merged) codec configuration.
func (st *Stream) CodecConfig() *codec.Config {
	return st.codecCfg
}

// QoS returns the QoS shared by all streams of the owning source.
func (st *Stream) QoS() *qos.Config {
	return st.qos
}

// Source returns the broadcast source the stream belongs to, or nil.
func (st *Stream) Source() *Source {
	return st.group
}

// Channel returns the stream's isochronous channel, or nil while unbound.
func (st *Stream) Channel() *iso.Channel {
	if st.ep == nil {
		return nil
	}
	return st.ep.channel
}

// attach binds the stream to an endpoint with the given codec
// configuration.
func (st *Stream) attach(ep *Endpoint, cfg *codec.Config) {
	st.ep = ep
	st.codecCfg = cfg
	ep.stream = st
}
