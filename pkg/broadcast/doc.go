// Package broadcast implements the Broadcast Source role: construction,
// configuration and lifecycle management of isochronous audio streams
// organized into subgroups and broadcast as a Broadcast Isochronous Group
// (BIG).
//
// # Model
//
// A Manager owns fixed-capacity pools of sources, subgroup slots and stream
// endpoints, sized by config.Limits at construction. A Source aggregates an
// ordered list of Subgroups; each Subgroup owns an ordered list of Streams
// sharing the subgroup's codec configuration, individually overridable per
// BIS. Every Stream is bound 1:1 to an Endpoint from the pool and to a
// fresh isochronous channel.
//
// # Lifecycle
//
//	params := &broadcast.SourceParams{...}
//	source, err := mgr.Create(params)   // endpoints IDLE -> QOS_CONFIGURED
//	err = source.Start(adv)             // endpoints ENABLING -> STREAMING
//	err = source.Stop()                 // transport terminates the BIG
//	err = source.Delete()               // endpoints IDLE, pools released
//
// All endpoints of a source move through the state machine together; the
// aggregate source state is that shared endpoint state, and operations
// validate against it before mutating anything.
// GetBase encodes the Broadcast Audio Source Endpoint structure that
// receivers use to discover the source's configuration.
//
// # Concurrency
//
// All Manager and Source methods are safe for concurrent use. Stream and
// listener callbacks are invoked without internal locks held; they may call
// back into the package.
package broadcast
