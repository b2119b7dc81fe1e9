package codec

import (
	"fmt"
)

// LTV record layout: one length octet covering the type octet and the value,
// one type octet, then the value bytes. A length of zero terminates early
// parsing in some encoders; here it is treated as malformed.

// ValidLTV reports whether data is a well-formed LTV sequence.
// An empty block is valid.
func ValidLTV(data []byte) bool {
	for i := 0; i < len(data); {
		length := int(data[i])
		if length < 1 {
			return false
		}
		// length covers the type octet and the value
		if i+1+length > len(data) {
			return false
		}
		i += 1 + length
	}
	return true
}

// ParseLTV iterates the LTV records in data, invoking fn with each record's
// type and value. Iteration stops when fn returns false, reporting
// ErrCanceled. Malformed data reports ErrInvalidLTV.
func ParseLTV(data []byte, fn func(typ uint8, value []byte) bool) error {
	for i := 0; i < len(data); {
		length := int(data[i])
		if length < 1 || i+1+length > len(data) {
			return fmt.Errorf("%w: record at offset %d", ErrInvalidLTV, i)
		}
		typ := data[i+1]
		value := data[i+2 : i+1+length]
		if !fn(typ, value) {
			return ErrCanceled
		}
		i += 1 + length
	}
	return nil
}

// SetValue sets a single field in the configuration data block by LTV type,
// replacing an existing record of the same type or appending a new one.
// The resulting block must fit within MaxDataSize.
func (c *Config) SetValue(typ uint8, value []byte) error {
	if len(value) == 0 {
		return ErrEmptyValue
	}
	if len(value) > 254 {
		// The record length octet covers the type octet and the value.
		return fmt.Errorf("%w: value length %d", ErrDataTooLong, len(value))
	}
	if !ValidLTV(c.Data) {
		return ErrInvalidLTV
	}

	// Rebuild the block without any record of the target type.
	rebuilt := make([]byte, 0, len(c.Data)+2+len(value))
	for i := 0; i < len(c.Data); {
		length := int(c.Data[i])
		if c.Data[i+1] != typ {
			rebuilt = append(rebuilt, c.Data[i:i+1+length]...)
		}
		i += 1 + length
	}

	rebuilt = append(rebuilt, uint8(1+len(value)), typ)
	rebuilt = append(rebuilt, value...)

	if len(rebuilt) > MaxDataSize {
		return fmt.Errorf("%w: %d > %d", ErrDataTooLong, len(rebuilt), MaxDataSize)
	}

	c.Data = rebuilt
	return nil
}

// Value returns the value of the first record of the given LTV type in the
// configuration data block, or false when absent.
func (c *Config) Value(typ uint8) ([]byte, bool) {
	var found []byte
	err := ParseLTV(c.Data, func(t uint8, value []byte) bool {
		if t == typ {
			found = value
			return false
		}
		return true
	})
	if err != nil && found == nil {
		return nil, false
	}
	return found, found != nil
}
