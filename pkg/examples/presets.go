package examples

import (
	"github.com/leaudio-protocol/leaudio-go/pkg/broadcast"
	"github.com/leaudio-protocol/leaudio-go/pkg/codec"
	"github.com/leaudio-protocol/leaudio-go/pkg/qos"
)

// LTV type codes for the LC3 codec specific configuration.
const (
	TypeSamplingFrequency      uint8 = 0x01
	TypeFrameDuration          uint8 = 0x02
	TypeAudioChannelAllocation uint8 = 0x03
	TypeOctetsPerCodecFrame    uint8 = 0x04
)

// LTV type codes for the codec metadata.
const (
	TypeStreamingAudioContexts uint8 = 0x02
)

// Audio channel allocation bits.
const (
	ChannelFrontLeft  uint32 = 0x00000001
	ChannelFrontRight uint32 = 0x00000002
)

// StreamingContextMedia is the media streaming audio context.
const StreamingContextMedia uint16 = 0x0004

// Preset is one named LC3 broadcast audio configuration setting.
type Preset struct {
	// Name is the setting name from the profile nomenclature, for
	// example "16_2_1".
	Name string

	// SamplingFrequency is the LC3 sampling frequency code.
	SamplingFrequency uint8

	// FrameDuration is the LC3 frame duration code.
	FrameDuration uint8

	// OctetsPerFrame is the number of octets per codec frame.
	OctetsPerFrame uint16

	// QoS carries the transport parameters of the setting.
	QoS qos.Config
}

// The low-latency broadcast audio settings with 10 ms frames.
var (
	// Preset16_2_1 is 16 kHz mono-quality speech.
	Preset16_2_1 = Preset{
		Name:              "16_2_1",
		SamplingFrequency: 0x03,
		FrameDuration:     0x01,
		OctetsPerFrame:    40,
		QoS: qos.Config{
			IntervalUs:          10000,
			Framing:             qos.FramingUnframed,
			PHY:                 qos.PHY2M,
			SDU:                 40,
			RTN:                 2,
			LatencyMs:           10,
			PresentationDelayUs: 40000,
		},
	}

	// Preset24_2_1 is 24 kHz improved speech quality.
	Preset24_2_1 = Preset{
		Name:              "24_2_1",
		SamplingFrequency: 0x05,
		FrameDuration:     0x01,
		OctetsPerFrame:    60,
		QoS: qos.Config{
			IntervalUs:          10000,
			Framing:             qos.FramingUnframed,
			PHY:                 qos.PHY2M,
			SDU:                 60,
			RTN:                 2,
			LatencyMs:           10,
			PresentationDelayUs: 40000,
		},
	}

	// Preset48_2_1 is 48 kHz music quality.
	Preset48_2_1 = Preset{
		Name:              "48_2_1",
		SamplingFrequency: 0x08,
		FrameDuration:     0x01,
		OctetsPerFrame:    100,
		QoS: qos.Config{
			IntervalUs:          10000,
			Framing:             qos.FramingUnframed,
			PHY:                 qos.PHY2M,
			SDU:                 100,
			RTN:                 4,
			LatencyMs:           20,
			PresentationDelayUs: 40000,
		},
	}
)

// CodecConfig builds the subgroup-level LC3 codec configuration for the
// preset: sampling frequency, frame duration and octets per frame, with
// the media streaming context as metadata.
func (p Preset) CodecConfig() *codec.Config {
	return &codec.Config{
		ID: codec.CodingFormatLC3,
		Data: []byte{
			0x02, TypeSamplingFrequency, p.SamplingFrequency,
			0x02, TypeFrameDuration, p.FrameDuration,
			0x03, TypeOctetsPerCodecFrame,
			byte(p.OctetsPerFrame), byte(p.OctetsPerFrame >> 8),
		},
		Metadata: []byte{
			0x03, TypeStreamingAudioContexts,
			byte(StreamingContextMedia), byte(StreamingContextMedia >> 8),
		},
	}
}

// channelAllocation encodes a BIS-level audio channel allocation override.
func channelAllocation(channels uint32) []byte {
	return []byte{
		0x05, TypeAudioChannelAllocation,
		byte(channels), byte(channels >> 8), byte(channels >> 16), byte(channels >> 24),
	}
}

// MonoParams builds source parameters for a single-BIS mono broadcast
// using the preset. Every stream shares ops; pass nil for no callbacks.
func MonoParams(p Preset, ops *broadcast.StreamOps) *broadcast.SourceParams {
	q := p.QoS
	return &broadcast.SourceParams{
		QoS: &q,
		Subgroups: []broadcast.SubgroupParams{{
			CodecConfig: p.CodecConfig(),
			Streams: []broadcast.StreamParams{{
				Stream: broadcast.NewStream(ops),
			}},
		}},
	}
}

// StereoParams builds source parameters for a two-BIS stereo broadcast:
// one subgroup with a left and a right stream, each carrying a channel
// allocation override. Every stream shares ops; pass nil for no callbacks.
func StereoParams(p Preset, ops *broadcast.StreamOps) *broadcast.SourceParams {
	q := p.QoS
	return &broadcast.SourceParams{
		QoS: &q,
		Subgroups: []broadcast.SubgroupParams{{
			CodecConfig: p.CodecConfig(),
			Streams: []broadcast.StreamParams{
				{
					Stream: broadcast.NewStream(ops),
					Data:   channelAllocation(ChannelFrontLeft),
				},
				{
					Stream: broadcast.NewStream(ops),
					Data:   channelAllocation(ChannelFrontRight),
				},
			},
		}},
	}
}
