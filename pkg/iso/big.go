package iso

import (
	"errors"

	"github.com/leaudio-protocol/leaudio-go/pkg/qos"
)

// BroadcastCodeSize is the size of the broadcast code used for encrypted
// groups.
const BroadcastCodeSize = 16

// ReasonLocalTermination is the disconnect reason reported when the local
// host terminates a BIG.
const ReasonLocalTermination uint8 = 0x16

// Transport errors.
var (
	// ErrNoChannels indicates BIG creation was requested without channels.
	ErrNoChannels = errors.New("no channels for BIG")

	// ErrObserverRegistered indicates the observer is already registered.
	ErrObserverRegistered = errors.New("observer already registered")

	// ErrUnknownBig indicates the BIG handle is not owned by this transport.
	ErrUnknownBig = errors.New("unknown BIG handle")
)

// Packing selects how subevents of multiple BISes are arranged on air.
type Packing uint8

const (
	// PackingSequential arranges the subevents of each BIS back to back.
	PackingSequential Packing = 0x00
	// PackingInterleaved interleaves the subevents of all BISes.
	PackingInterleaved Packing = 0x01
)

// String returns the packing mode name.
func (p Packing) String() string {
	switch p {
	case PackingSequential:
		return "SEQUENTIAL"
	case PackingInterleaved:
		return "INTERLEAVED"
	default:
		return "UNKNOWN"
	}
}

// Advertiser is the advertising set a BIG is associated with. Advertising
// management itself is outside this stack.
type Advertiser interface {
	// Handle returns the advertising set handle.
	Handle() uint8
}

// BigParams are the parameters for creating a BIG.
type BigParams struct {
	// Channels are the isochronous channels, in wire BIS-index order.
	Channels []*Channel

	// Framing selects framed or unframed SDUs.
	Framing qos.Framing

	// Packing selects the subevent arrangement.
	Packing Packing

	// IntervalUs is the SDU interval in microseconds.
	IntervalUs uint32

	// LatencyMs is the maximum transport latency in milliseconds.
	LatencyMs uint16

	// Encryption enables BIG encryption.
	Encryption bool

	// BroadcastCode is the encryption code; only meaningful when
	// Encryption is set.
	BroadcastCode [BroadcastCodeSize]byte
}

// Big is an opaque handle to a created Broadcast Isochronous Group.
type Big interface {
	// ID returns the handle's unique identifier.
	ID() string
}

// BigObserver receives BIG lifecycle events from the transport.
type BigObserver interface {
	// BigStarted is called when a BIG has been established.
	BigStarted(big Big)

	// BigStopped is called when a BIG has been terminated, with the
	// transport reason code.
	BigStopped(big Big, reason uint8)
}

// Transport creates and terminates BIGs. Implementations deliver channel
// and observer callbacks on a single processing context.
type Transport interface {
	// CreateBig creates a BIG on the given advertising set.
	CreateBig(adv Advertiser, params BigParams) (Big, error)

	// TerminateBig terminates a previously created BIG.
	TerminateBig(big Big) error

	// RegisterObserver registers for BIG lifecycle events.
	// Registering the same observer twice is an error.
	RegisterObserver(obs BigObserver) error
}
