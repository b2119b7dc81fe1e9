package codec

import (
	"fmt"
)

// MergeBIS combines a subgroup-level configuration with BIS-level
// configuration bytes, returning a new configuration. The subgroup
// configuration is never mutated.
//
// For LC3 the BIS bytes are parsed as LTV records and each record
// overwrites or extends the subgroup block: when a value exists at both the
// subgroup and BIS level, the BIS value wins. For any other coding format
// there is no defined per-field override semantic, so the BIS bytes are
// appended verbatim after the subgroup bytes, subject to the block capacity.
func MergeBIS(sub *Config, bisData []byte) (*Config, error) {
	merged := sub.Clone()

	if len(bisData) == 0 {
		return merged, nil
	}

	if sub.ID == CodingFormatLC3 {
		var setErr error
		err := ParseLTV(bisData, func(typ uint8, value []byte) bool {
			if err := merged.SetValue(typ, value); err != nil {
				setErr = fmt.Errorf("setting type 0x%02x: %w", typ, err)
				return false
			}
			return true
		})
		if setErr != nil {
			return nil, setErr
		}
		if err != nil {
			return nil, fmt.Errorf("merging BIS configuration: %w", err)
		}
		return merged, nil
	}

	if len(merged.Data)+len(bisData) > MaxDataSize {
		return nil, fmt.Errorf("%w: %d > %d",
			ErrDataTooLong, len(merged.Data)+len(bisData), MaxDataSize)
	}
	merged.Data = append(merged.Data, bisData...)

	return merged, nil
}
