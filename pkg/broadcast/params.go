package broadcast

import (
	"fmt"

	"github.com/leaudio-protocol/leaudio-go/pkg/codec"
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
	"github.com/leaudio-protocol/leaudio-go/pkg/qos"
)

// BroadcastRTNMax is the largest retransmission number a broadcast group
// accepts.
const BroadcastRTNMax = 30

// StreamParams describe one stream of a subgroup.
type StreamParams struct {
	// Stream is the caller-allocated stream to bind.
	Stream *Stream

	// Data is the BIS-level codec configuration override (LTV-encoded
	// for LC3). May be empty.
	Data []byte
}

// SubgroupParams describe one subgroup of a broadcast source.
type SubgroupParams struct {
	// CodecConfig is the codec configuration shared by the subgroup's
	// streams. The source keeps a reference; the caller must not reuse
	// the value for another subgroup.
	CodecConfig *codec.Config

	// Streams are the subgroup's stream parameters, in BIS-index order.
	Streams []StreamParams
}

// SourceParams describe a broadcast source for Create and Reconfig.
type SourceParams struct {
	// Subgroups are the subgroup parameters, in encoding order.
	Subgroups []SubgroupParams

	// QoS applies to every stream of the source.
	QoS *qos.Config

	// Packing selects the BIS subevent arrangement.
	Packing iso.Packing

	// Encryption enables BIG encryption.
	Encryption bool

	// BroadcastCode is the encryption code; only used when Encryption
	// is set.
	BroadcastCode [iso.BroadcastCodeSize]byte
}

// validateSourceParams checks parameter shape for Create (existing == nil)
// and Reconfig (existing == the source being reconfigured).
func (m *Manager) validateSourceParams(p *SourceParams, existing *Source) error {
	if p == nil {
		return fmt.Errorf("%w: params is nil", ErrInvalidParam)
	}

	if len(p.Subgroups) == 0 || len(p.Subgroups) > int(m.limits.MaxSubgroupsPerSource) {
		return fmt.Errorf("%w: subgroup count %d not in 1..%d",
			ErrInvalidParam, len(p.Subgroups), m.limits.MaxSubgroupsPerSource)
	}

	if p.Packing != iso.PackingSequential && p.Packing != iso.PackingInterleaved {
		return fmt.Errorf("%w: packing %d", ErrInvalidParam, p.Packing)
	}

	if p.QoS == nil {
		return fmt.Errorf("%w: qos is nil", ErrInvalidParam)
	}
	if err := p.QoS.Verify(); err != nil {
		return fmt.Errorf("%w: qos: %v", ErrInvalidParam, err)
	}
	if p.QoS.RTN > BroadcastRTNMax {
		return fmt.Errorf("%w: rtn %d > %d", ErrInvalidParam, p.QoS.RTN, BroadcastRTNMax)
	}

	for i, sp := range p.Subgroups {
		if len(sp.Streams) == 0 || len(sp.Streams) > int(m.limits.MaxStreamsPerSource) {
			return fmt.Errorf("%w: subgroup[%d] stream count %d not in 1..%d",
				ErrInvalidParam, i, len(sp.Streams), m.limits.MaxStreamsPerSource)
		}

		if sp.CodecConfig == nil {
			return fmt.Errorf("%w: subgroup[%d] codec config is nil", ErrInvalidParam, i)
		}
		if err := sp.CodecConfig.Validate(); err != nil {
			return fmt.Errorf("%w: subgroup[%d] codec config: %v", ErrInvalidParam, i, err)
		}

		for j, stp := range sp.Streams {
			switch {
			case stp.Stream == nil:
				// Reconfiguration may omit the stream to keep the
				// bound one; creation cannot.
				if existing == nil {
					return fmt.Errorf("%w: subgroup[%d] stream[%d] is nil",
						ErrInvalidParam, i, j)
				}
			case existing == nil && stp.Stream.group != nil,
				existing != nil && stp.Stream.group != existing:
				return fmt.Errorf("%w: subgroup[%d] stream[%d] belongs to another source",
					ErrInvalidParam, i, j)
			}

			if len(stp.Data) > codec.MaxDataSize {
				return fmt.Errorf("%w: subgroup[%d] stream[%d] data length %d > %d",
					ErrInvalidParam, i, j, len(stp.Data), codec.MaxDataSize)
			}

			if len(stp.Data) > 0 && sp.CodecConfig.ID == codec.CodingFormatLC3 &&
				!codec.ValidLTV(stp.Data) {
				return fmt.Errorf("%w: subgroup[%d] stream[%d] data is not valid LTV",
					ErrInvalidParam, i, j)
			}
		}
	}

	return nil
}
