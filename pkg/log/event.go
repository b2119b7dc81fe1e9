package log

import (
	"time"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SourceID uniquely identifies the broadcast source instance (UUID).
	SourceID string `cbor:"2,keyasint,omitempty"`

	// ChannelID identifies the isochronous channel involved, if any (UUID).
	ChannelID string `cbor:"3,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"6,keyasint,omitempty"` // Endpoint/source state
	Encode      *EncodeEvent      `cbor:"7,keyasint,omitempty"` // BASE encoding
	Transport   *TransportEvent   `cbor:"8,keyasint,omitempty"` // BIG/channel lifecycle
	Error       *ErrorEventData   `cbor:"9,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerIso is the isochronous transport layer (BIG and channels).
	LayerIso Layer = 0
	// LayerBase is the BASE encoding layer.
	LayerBase Layer = 1
	// LayerBroadcast is the broadcast orchestration layer.
	LayerBroadcast Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerIso:
		return "ISO"
	case LayerBase:
		return "BASE"
	case LayerBroadcast:
		return "BROADCAST"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates an endpoint or source state change.
	CategoryState Category = 0
	// CategoryEncode indicates a BASE encoding event.
	CategoryEncode Category = 1
	// CategoryTransport indicates a BIG or channel lifecycle event.
	CategoryTransport Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryEncode:
		return "ENCODE"
	case CategoryTransport:
		return "TRANSPORT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures endpoint and source state machine events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state.
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the requested state.
	NewState string `cbor:"3,keyasint"`

	// Rejected indicates the transition was illegal and ignored.
	Rejected bool `cbor:"4,keyasint,omitempty"`

	// Reason for the change (if available).
	Reason string `cbor:"5,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityEndpoint indicates a stream endpoint state change.
	StateEntityEndpoint StateEntity = 0
	// StateEntitySource indicates an aggregate source state change.
	StateEntitySource StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityEndpoint:
		return "ENDPOINT"
	case StateEntitySource:
		return "SOURCE"
	default:
		return "UNKNOWN"
	}
}

// EncodeEvent captures the result of a BASE encoding run.
type EncodeEvent struct {
	// Subgroups is the number of subgroups encoded.
	Subgroups int `cbor:"1,keyasint"`

	// Streams is the number of BIS entries encoded.
	Streams int `cbor:"2,keyasint"`

	// Size is the encoded BASE size in bytes.
	Size int `cbor:"3,keyasint"`

	// Capacity is the destination buffer capacity in bytes.
	Capacity int `cbor:"4,keyasint"`
}

// TransportEvent captures BIG and channel lifecycle events.
type TransportEvent struct {
	// Kind of transport event.
	Kind TransportEventKind `cbor:"1,keyasint"`

	// BigID identifies the BIG handle involved, if any.
	BigID string `cbor:"2,keyasint,omitempty"`

	// ChannelCount is the number of channels involved (BIG creation).
	ChannelCount int `cbor:"3,keyasint,omitempty"`

	// Reason is the disconnect/stop reason code, if any.
	Reason *uint8 `cbor:"4,keyasint,omitempty"`
}

// TransportEventKind indicates the type of transport event.
type TransportEventKind uint8

const (
	// TransportBigCreate indicates a BIG creation request.
	TransportBigCreate TransportEventKind = 0
	// TransportBigTerminate indicates a BIG termination request.
	TransportBigTerminate TransportEventKind = 1
	// TransportBigStarted indicates the transport reported BIG start.
	TransportBigStarted TransportEventKind = 2
	// TransportBigStopped indicates the transport reported BIG stop.
	TransportBigStopped TransportEventKind = 3
	// TransportChannelConnected indicates an isochronous channel connected.
	TransportChannelConnected TransportEventKind = 4
	// TransportChannelDisconnected indicates an isochronous channel disconnected.
	TransportChannelDisconnected TransportEventKind = 5
	// TransportChannelSent indicates SDU transmission completed on a channel.
	TransportChannelSent TransportEventKind = 6
)

// String returns the transport event kind name.
func (k TransportEventKind) String() string {
	switch k {
	case TransportBigCreate:
		return "BIG_CREATE"
	case TransportBigTerminate:
		return "BIG_TERMINATE"
	case TransportBigStarted:
		return "BIG_STARTED"
	case TransportBigStopped:
		return "BIG_STOPPED"
	case TransportChannelConnected:
		return "CHANNEL_CONNECTED"
	case TransportChannelDisconnected:
		return "CHANNEL_DISCONNECTED"
	case TransportChannelSent:
		return "CHANNEL_SENT"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
