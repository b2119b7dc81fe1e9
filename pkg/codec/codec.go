package codec

import (
	"errors"
	"fmt"
)

// Capacity of the bounded byte blocks in a codec configuration.
const (
	// MaxDataSize is the capacity of the codec specific configuration block.
	MaxDataSize = 128

	// MaxMetadataSize is the capacity of the metadata block.
	MaxMetadataSize = 128
)

// Coding format assigned numbers (HCI).
const (
	// CodingFormatLC3 is the LE Audio LC3 coding format.
	CodingFormatLC3 uint8 = 0x06

	// CodingFormatVendor indicates a vendor-specific coding format.
	CodingFormatVendor uint8 = 0xFF
)

// Codec configuration errors.
var (
	// ErrDataTooLong indicates the configuration block exceeds MaxDataSize.
	ErrDataTooLong = errors.New("codec configuration data too long")

	// ErrMetadataTooLong indicates the metadata block exceeds MaxMetadataSize.
	ErrMetadataTooLong = errors.New("codec metadata too long")

	// ErrInvalidLTV indicates a byte block is not a valid LTV sequence.
	ErrInvalidLTV = errors.New("invalid LTV data")

	// ErrEmptyValue indicates an LTV record value was empty where one is required.
	ErrEmptyValue = errors.New("empty LTV value")

	// ErrCanceled indicates LTV parsing was stopped by the callback.
	ErrCanceled = errors.New("ltv parsing canceled")
)

// Config is a codec configuration: the codec identity plus the codec
// specific configuration and metadata blocks.
type Config struct {
	// ID is the coding format (e.g. CodingFormatLC3).
	ID uint8

	// CompanyID is the company identifier (vendor-specific formats).
	CompanyID uint16

	// VendorID is the vendor codec identifier (vendor-specific formats).
	VendorID uint16

	// Data is the codec specific configuration (LTV-encoded for LC3).
	Data []byte

	// Metadata is the codec metadata (LTV-encoded for LC3).
	Metadata []byte
}

// Validate checks block capacities and, for LC3, LTV well-formedness.
func (c *Config) Validate() error {
	if len(c.Data) > MaxDataSize {
		return fmt.Errorf("%w: %d > %d", ErrDataTooLong, len(c.Data), MaxDataSize)
	}
	if len(c.Metadata) > MaxMetadataSize {
		return fmt.Errorf("%w: %d > %d", ErrMetadataTooLong, len(c.Metadata), MaxMetadataSize)
	}
	if c.ID == CodingFormatLC3 {
		if !ValidLTV(c.Data) {
			return fmt.Errorf("configuration data: %w", ErrInvalidLTV)
		}
		if !ValidLTV(c.Metadata) {
			return fmt.Errorf("metadata: %w", ErrInvalidLTV)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := &Config{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		VendorID:  c.VendorID,
	}
	if len(c.Data) > 0 {
		clone.Data = append([]byte(nil), c.Data...)
	}
	if len(c.Metadata) > 0 {
		clone.Metadata = append([]byte(nil), c.Metadata...)
	}
	return clone
}

// SetMetadata replaces the metadata block wholesale.
func (c *Config) SetMetadata(meta []byte) error {
	if len(meta) > MaxMetadataSize {
		return fmt.Errorf("%w: %d > %d", ErrMetadataTooLong, len(meta), MaxMetadataSize)
	}
	c.Metadata = append(c.Metadata[:0:0], meta...)
	return nil
}
