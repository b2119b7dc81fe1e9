package qos

import (
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		IntervalUs:          10000,
		Framing:             FramingUnframed,
		PHY:                 PHY2M,
		SDU:                 120,
		RTN:                 4,
		LatencyMs:           20,
		PresentationDelayUs: 40000,
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "interval too small",
			mutate:  func(c *Config) { c.IntervalUs = IntervalUsMin - 1 },
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "interval too large",
			mutate:  func(c *Config) { c.IntervalUs = IntervalUsMax + 1 },
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "bad framing",
			mutate:  func(c *Config) { c.Framing = Framing(0x02) },
			wantErr: ErrInvalidFraming,
		},
		{
			name:    "bad phy",
			mutate:  func(c *Config) { c.PHY = PHY(0x04) },
			wantErr: ErrInvalidPHY,
		},
		{
			name:    "sdu too large",
			mutate:  func(c *Config) { c.SDU = SDUMax + 1 },
			wantErr: ErrInvalidSDU,
		},
		{
			name:    "latency too small",
			mutate:  func(c *Config) { c.LatencyMs = LatencyMsMin - 1 },
			wantErr: ErrInvalidLatency,
		},
		{
			name:    "latency too large",
			mutate:  func(c *Config) { c.LatencyMs = LatencyMsMax + 1 },
			wantErr: ErrInvalidLatency,
		},
		{
			name:    "presentation delay too large",
			mutate:  func(c *Config) { c.PresentationDelayUs = PresentationDelayUsMax + 1 },
			wantErr: ErrInvalidPresentationDelay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Verify()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Verify() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStringers(t *testing.T) {
	if FramingUnframed.String() != "UNFRAMED" || FramingFramed.String() != "FRAMED" {
		t.Error("framing String() mismatch")
	}
	if Framing(9).String() != "UNKNOWN" {
		t.Error("unknown framing String() mismatch")
	}
	if PHY1M.String() != "1M" || PHY2M.String() != "2M" || PHYCoded.String() != "CODED" {
		t.Error("phy String() mismatch")
	}
}
