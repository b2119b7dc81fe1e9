// Package qos models quality-of-service parameters for isochronous audio
// streams and validates them against the protocol-legal ranges.
package qos

import (
	"errors"
	"fmt"
)

// Protocol-legal parameter ranges.
const (
	// IntervalUsMin is the minimum SDU interval in microseconds.
	IntervalUsMin = 0x0000FF
	// IntervalUsMax is the maximum SDU interval in microseconds.
	IntervalUsMax = 0xFFFFFF

	// LatencyMsMin is the minimum maximum-transport-latency in milliseconds.
	LatencyMsMin = 0x0005
	// LatencyMsMax is the maximum maximum-transport-latency in milliseconds.
	LatencyMsMax = 0x0FA0

	// SDUMax is the maximum SDU size in octets.
	SDUMax = 0x0FFF

	// PresentationDelayUsMax is the maximum presentation delay in microseconds.
	PresentationDelayUsMax = 0xFFFFFF
)

// QoS validation errors.
var (
	// ErrInvalidInterval indicates the SDU interval is out of range.
	ErrInvalidInterval = errors.New("sdu interval out of range")

	// ErrInvalidFraming indicates an unknown framing mode.
	ErrInvalidFraming = errors.New("invalid framing mode")

	// ErrInvalidPHY indicates an unknown PHY.
	ErrInvalidPHY = errors.New("invalid phy")

	// ErrInvalidSDU indicates the SDU size is out of range.
	ErrInvalidSDU = errors.New("sdu size out of range")

	// ErrInvalidLatency indicates the transport latency is out of range.
	ErrInvalidLatency = errors.New("transport latency out of range")

	// ErrInvalidPresentationDelay indicates the presentation delay is out of range.
	ErrInvalidPresentationDelay = errors.New("presentation delay out of range")
)

// Framing selects framed or unframed SDUs.
type Framing uint8

const (
	// FramingUnframed carries SDUs unframed.
	FramingUnframed Framing = 0x00
	// FramingFramed carries SDUs in framed mode.
	FramingFramed Framing = 0x01
)

// String returns the framing mode name.
func (f Framing) String() string {
	switch f {
	case FramingUnframed:
		return "UNFRAMED"
	case FramingFramed:
		return "FRAMED"
	default:
		return "UNKNOWN"
	}
}

// PHY selects the radio PHY.
type PHY uint8

const (
	// PHY1M is the LE 1M PHY.
	PHY1M PHY = 0x01
	// PHY2M is the LE 2M PHY.
	PHY2M PHY = 0x02
	// PHYCoded is the LE Coded PHY.
	PHYCoded PHY = 0x03
)

// String returns the PHY name.
func (p PHY) String() string {
	switch p {
	case PHY1M:
		return "1M"
	case PHY2M:
		return "2M"
	case PHYCoded:
		return "CODED"
	default:
		return "UNKNOWN"
	}
}

// Config holds the QoS parameters shared by all streams of a broadcast
// source.
type Config struct {
	// IntervalUs is the SDU interval in microseconds.
	IntervalUs uint32

	// Framing selects framed or unframed SDUs.
	Framing Framing

	// PHY is the radio PHY to use.
	PHY PHY

	// SDU is the maximum SDU size in octets.
	SDU uint16

	// RTN is the retransmission number (stream-level reliability effort).
	RTN uint8

	// LatencyMs is the maximum transport latency in milliseconds.
	LatencyMs uint16

	// PresentationDelayUs is the presentation delay in microseconds.
	PresentationDelayUs uint32
}

// Verify checks the configuration against the protocol-legal ranges.
func (c *Config) Verify() error {
	if c.IntervalUs < IntervalUsMin || c.IntervalUs > IntervalUsMax {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, c.IntervalUs)
	}
	if c.Framing != FramingUnframed && c.Framing != FramingFramed {
		return fmt.Errorf("%w: %d", ErrInvalidFraming, c.Framing)
	}
	if c.PHY != PHY1M && c.PHY != PHY2M && c.PHY != PHYCoded {
		return fmt.Errorf("%w: %d", ErrInvalidPHY, c.PHY)
	}
	if c.SDU > SDUMax {
		return fmt.Errorf("%w: %d", ErrInvalidSDU, c.SDU)
	}
	if c.LatencyMs < LatencyMsMin || c.LatencyMs > LatencyMsMax {
		return fmt.Errorf("%w: %d", ErrInvalidLatency, c.LatencyMs)
	}
	if c.PresentationDelayUs > PresentationDelayUsMax {
		return fmt.Errorf("%w: %d", ErrInvalidPresentationDelay, c.PresentationDelayUs)
	}
	return nil
}
