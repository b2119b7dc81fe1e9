package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaudio-protocol/leaudio-go/pkg/base"
	"github.com/leaudio-protocol/leaudio-go/pkg/broadcast"
	"github.com/leaudio-protocol/leaudio-go/pkg/config"
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
)

func TestPresetConfigsAreValid(t *testing.T) {
	for _, p := range []Preset{Preset16_2_1, Preset24_2_1, Preset48_2_1} {
		t.Run(p.Name, func(t *testing.T) {
			assert.NoError(t, p.CodecConfig().Validate())
			assert.NoError(t, p.QoS.Verify())
		})
	}
}

func TestStereoBroadcastLifecycle(t *testing.T) {
	transport := iso.NewLoopback(nil)
	mgr, err := broadcast.NewManager(config.Limits{
		MaxSources:            1,
		MaxSubgroupsPerSource: 1,
		MaxStreamsPerSource:   2,
	}, transport, nil)
	require.NoError(t, err)

	s, err := mgr.Create(StereoParams(Preset48_2_1, nil))
	require.NoError(t, err)

	require.NoError(t, s.Start(iso.StaticAdvertiser(0)))
	assert.Equal(t, broadcast.StateStreaming, s.State())

	buf := base.NewBuffer(64)
	require.NoError(t, s.GetBase(buf))
	assert.Greater(t, buf.Len(), base.MinimumSize)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Delete())
}

func TestMonoParamsShape(t *testing.T) {
	p := MonoParams(Preset16_2_1, nil)
	require.Len(t, p.Subgroups, 1)
	require.Len(t, p.Subgroups[0].Streams, 1)
	assert.Equal(t, uint16(40), p.QoS.SDU)
	assert.Empty(t, p.Subgroups[0].Streams[0].Data)
}
