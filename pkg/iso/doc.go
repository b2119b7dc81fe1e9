// Package iso defines the isochronous transport boundary of the broadcast
// stack.
//
// The broadcast orchestrator consumes this package through narrow
// interfaces: per-stream channels with connected/disconnected/sent
// callbacks, and a Transport that creates and terminates Broadcast
// Isochronous Groups (BIG) and reports their lifecycle to registered
// observers. Real radio integrations implement Transport; the Loopback
// implementation simulates a transport in-process for tests and tooling.
//
// Callback ordering contract: transport implementations must deliver
// channel and BIG events on a single processing context, and never while
// holding locks that the callbacks themselves may need.
package iso
