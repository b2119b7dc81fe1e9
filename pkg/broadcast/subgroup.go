package broadcast

import (
	"github.com/leaudio-protocol/leaudio-go/pkg/codec"
)

// Subgroup is a set of streams sharing a codec configuration within one
// broadcast source. Stream insertion order is the wire BIS-index order.
type Subgroup struct {
	streams  []*Stream
	codecCfg *codec.Config
}

// CodecConfig returns the subgroup's shared codec configuration.
func (sg *Subgroup) CodecConfig() *codec.Config {
	return sg.codecCfg
}

// Streams returns the subgroup's streams in BIS-index order.
func (sg *Subgroup) Streams() []*Stream {
	return append([]*Stream(nil), sg.streams...)
}

// reset returns the slot to its free condition (empty stream list).
func (sg *Subgroup) reset() {
	*sg = Subgroup{}
}
