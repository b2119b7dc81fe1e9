// Package examples provides ready-made broadcast source configurations for
// the standard LC3 broadcast audio settings.
//
// Each preset bundles the codec configuration and QoS of one named setting
// (sampling frequency, frame duration, octets per frame, retransmission
// effort and latency) so a broadcast source can be created without
// assembling the LTV structures by hand:
//
//	params := examples.StereoParams(examples.Preset48_2_1, nil)
//	source, err := mgr.Create(params)
//
// The presets can serve as templates for building custom configurations.
package examples
