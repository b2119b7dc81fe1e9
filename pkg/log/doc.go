// Package log provides structured protocol logging for the broadcast stack.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (isochronous transport, BASE
// encoding, broadcast orchestration). It is separate from operational
// logging (slog) - protocol capture provides a complete machine-readable
// event trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	logger, _ := log.NewFileLogger("/var/log/leaudio/source.blog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Iso: BIG and channel lifecycle (TransportEvent)
//   - Base: BASE encoding results (EncodeEvent)
//   - Broadcast: endpoint and source state changes (StateChangeEvent)
//
// Errors at any layer use a dedicated event type.
//
// # File Format
//
// Log files use CBOR encoding. The Reader type provides filtered playback
// of captured files.
package log
