package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxBISIndex is the largest BIS index the wire format can carry.
// BIS indices are 1-based and the protocol allows at most 31 per group.
const MaxBISIndex = 31

// Limits errors.
var (
	// ErrZeroLimit indicates a limit was configured as zero.
	ErrZeroLimit = errors.New("limit must be at least 1")

	// ErrStreamLimitTooLarge indicates the stream limit exceeds the protocol maximum.
	ErrStreamLimitTooLarge = errors.New("stream limit exceeds protocol maximum")
)

// Limits holds the pool sizing for broadcast sources.
type Limits struct {
	// MaxSources is the number of concurrent broadcast sources.
	MaxSources uint8 `yaml:"maxSources"`

	// MaxSubgroupsPerSource is the number of subgroup slots per source.
	MaxSubgroupsPerSource uint8 `yaml:"maxSubgroupsPerSource"`

	// MaxStreamsPerSource is the number of endpoint slots per source.
	// This bounds the total BIS count across all subgroups of one source.
	MaxStreamsPerSource uint8 `yaml:"maxStreamsPerSource"`
}

// DefaultLimits returns the limits of a small single-source platform.
func DefaultLimits() Limits {
	return Limits{
		MaxSources:            1,
		MaxSubgroupsPerSource: 2,
		MaxStreamsPerSource:   2,
	}
}

// Validate checks that all limits are usable.
func (l Limits) Validate() error {
	if l.MaxSources == 0 {
		return fmt.Errorf("maxSources: %w", ErrZeroLimit)
	}
	if l.MaxSubgroupsPerSource == 0 {
		return fmt.Errorf("maxSubgroupsPerSource: %w", ErrZeroLimit)
	}
	if l.MaxStreamsPerSource == 0 {
		return fmt.Errorf("maxStreamsPerSource: %w", ErrZeroLimit)
	}
	if l.MaxStreamsPerSource > MaxBISIndex {
		return fmt.Errorf("maxStreamsPerSource %d: %w (max %d)",
			l.MaxStreamsPerSource, ErrStreamLimitTooLarge, MaxBISIndex)
	}
	return nil
}

// ParseLimits parses limits from YAML bytes.
// Omitted fields fall back to the defaults.
func ParseLimits(data []byte) (Limits, error) {
	limits := DefaultLimits()
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("parsing limits: %w", err)
	}
	if err := limits.Validate(); err != nil {
		return Limits{}, err
	}
	return limits, nil
}

// LoadLimits loads and parses limits from a YAML file.
func LoadLimits(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseLimits(data)
}
