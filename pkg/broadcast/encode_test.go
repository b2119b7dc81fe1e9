package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaudio-protocol/leaudio-go/pkg/base"
	"github.com/leaudio-protocol/leaudio-go/pkg/codec"
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
)

func TestGetBaseKnownAnswer(t *testing.T) {
	m, _ := newTestManager(t)

	p := testParams(1)
	p.Subgroups[0].Streams[0].Data = []byte{0x02, 0x03, 0x01}
	s, err := m.Create(p)
	require.NoError(t, err)

	buf := base.NewBuffer(64)
	require.NoError(t, s.GetBase(buf))

	want := []byte{
		0x51, 0x18, // Basic Audio Announcement Service UUID
		0x40, 0x9c, 0x00, // presentation delay 40000 us
		0x01,             // one subgroup
		0x01,             // one BIS
		0x06,             // LC3
		0x00, 0x00,       // company ID
		0x00, 0x00,       // vendor codec ID
		0x03,             // codec config length
		0x02, 0x01, 0x06, // sampling frequency
		0x04,                   // metadata length
		0x03, 0x02, 0x04, 0x00, // streaming audio contexts
		0x01,             // BIS index 1
		0x03,             // BIS config length
		0x02, 0x03, 0x01, // audio channel allocation
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestGetBaseMinimumSize(t *testing.T) {
	m, _ := newTestManager(t)

	// Empty codec config and metadata yield the smallest legal BASE.
	p := &SourceParams{
		QoS: testQoS(),
		Subgroups: []SubgroupParams{{
			CodecConfig: &codec.Config{ID: codec.CodingFormatLC3},
			Streams:     []StreamParams{{Stream: NewStream(nil)}},
		}},
	}
	s, err := m.Create(p)
	require.NoError(t, err)

	buf := base.NewBuffer(base.MinimumSize)
	require.NoError(t, s.GetBase(buf))
	assert.Equal(t, base.MinimumSize, buf.Len())

	small := base.NewBuffer(base.MinimumSize - 1)
	err = s.GetBase(small)
	assert.ErrorIs(t, err, base.ErrBufferFull)
}

func TestGetBaseBufferTooSmallForContent(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Create(testParams(2, 2))
	require.NoError(t, err)

	// Larger than the minimum but too small for this configuration.
	buf := base.NewBuffer(base.MinimumSize + 4)
	err = s.GetBase(buf)
	assert.ErrorIs(t, err, base.ErrBufferFull)
}

func TestGetBaseBisIndicesSpanSubgroups(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Create(testParams(2, 2))
	require.NoError(t, err)

	buf := base.NewBuffer(128)
	require.NoError(t, s.GetBase(buf))

	indices := parseBisIndices(t, buf.Bytes())
	assert.Equal(t, []uint8{1, 2, 3, 4}, indices)
}

func TestGetBaseRequiresConfiguredSource(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Create(testParams(1))
	require.NoError(t, err)
	require.NoError(t, s.Delete())

	err = s.GetBase(base.NewBuffer(64))
	assert.ErrorIs(t, err, ErrInvalidState)

	s2, err := m.Create(testParams(1))
	require.NoError(t, err)
	assert.ErrorIs(t, s2.GetBase(nil), ErrInvalidParam)
}

func TestGetBaseReflectsMetadataUpdate(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Create(testParams(1))
	require.NoError(t, err)
	require.NoError(t, s.Start(iso.StaticAdvertiser(0)))

	meta := []byte{0x03, 0x02, 0x08, 0x00}
	require.NoError(t, s.UpdateMetadata(meta))

	buf := base.NewBuffer(64)
	require.NoError(t, s.GetBase(buf))
	assert.Contains(t, string(buf.Bytes()), string(meta))
}

// parseBisIndices walks an encoded BASE and collects the BIS indices.
func parseBisIndices(t *testing.T, b []byte) []uint8 {
	t.Helper()

	require.GreaterOrEqual(t, len(b), base.MinimumSize)
	require.Equal(t, uint16(b[0])|uint16(b[1])<<8, uint16(base.ServiceUUID))

	var indices []uint8
	pos := 5 // UUID + presentation delay
	numSubgroups := int(b[pos])
	pos++

	for sg := 0; sg < numSubgroups; sg++ {
		numBis := int(b[pos])
		pos++
		pos += 5 // codec ID
		ccLen := int(b[pos])
		pos += 1 + ccLen
		metaLen := int(b[pos])
		pos += 1 + metaLen

		for i := 0; i < numBis; i++ {
			indices = append(indices, b[pos])
			pos++
			bisLen := int(b[pos])
			pos += 1 + bisLen
		}
	}

	require.Equal(t, len(b), pos)
	return indices
}
