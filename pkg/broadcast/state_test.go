package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to EndpointState
		want     bool
	}{
		{StateIdle, StateQoSConfigured, true},
		{StateIdle, StateEnabling, false},
		{StateIdle, StateStreaming, false},
		{StateIdle, StateIdle, false},
		{StateQoSConfigured, StateIdle, true},
		{StateQoSConfigured, StateEnabling, true},
		{StateQoSConfigured, StateStreaming, false},
		{StateQoSConfigured, StateQoSConfigured, false},
		{StateEnabling, StateStreaming, true},
		{StateEnabling, StateQoSConfigured, true},
		{StateEnabling, StateIdle, false},
		{StateStreaming, StateQoSConfigured, true},
		{StateStreaming, StateIdle, false},
		{StateStreaming, StateEnabling, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, validTransition(tt.from, tt.to))
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "IDLE", StateIdle.String())
	assert.Equal(t, "QOS_CONFIGURED", StateQoSConfigured.String())
	assert.Equal(t, "ENABLING", StateEnabling.String())
	assert.Equal(t, "STREAMING", StateStreaming.String())
	assert.Equal(t, "UNKNOWN", EndpointState(42).String())
}
