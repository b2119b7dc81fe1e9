package broadcast

import (
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
)

// Direction of an endpoint. Broadcast source endpoints are always audio
// sources.
type Direction uint8

const (
	// DirectionSink receives audio.
	DirectionSink Direction = 0x01
	// DirectionSource transmits audio.
	DirectionSource Direction = 0x02
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionSink:
		return "SINK"
	case DirectionSource:
		return "SOURCE"
	default:
		return "UNKNOWN"
	}
}

// Endpoint is one stream endpoint, drawn from the per-source pool.
// A slot is free iff its stream back-reference is nil.
type Endpoint struct {
	dir     Direction
	state   EndpointState
	stream  *Stream
	source  *Source
	channel *iso.Channel
}

// Direction returns the endpoint direction.
func (e *Endpoint) Direction() Direction {
	return e.dir
}

// State returns the endpoint's current state.
func (e *Endpoint) State() EndpointState {
	return e.state
}

// Stream returns the stream bound to the endpoint, or nil when the slot is
// free.
func (e *Endpoint) Stream() *Stream {
	return e.stream
}

// reset returns the slot to its initial, free condition.
func (e *Endpoint) reset() {
	*e = Endpoint{dir: DirectionSource}
}
