// Package codec models codec configurations for broadcast audio.
//
// A codec configuration carries the 5-byte codec identity (coding format,
// company ID, vendor ID) plus two bounded byte blocks: the codec specific
// configuration and the metadata. For the LC3 coding format both blocks use
// the self-describing length-type-value (LTV) record format, which enables
// per-field merging of subgroup-level and BIS-level configuration. Other
// coding formats are treated as opaque blobs.
package codec
