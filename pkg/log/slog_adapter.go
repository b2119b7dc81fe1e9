package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.SourceID != "" {
		attrs = append(attrs, slog.String("source_id", event.SourceID))
	}
	if event.ChannelID != "" {
		attrs = append(attrs, slog.String("channel_id", event.ChannelID))
	}

	// Add type-specific attributes
	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.OldState != "" {
			attrs = append(attrs, slog.String("old_state", event.StateChange.OldState))
		}
		if event.StateChange.Rejected {
			attrs = append(attrs, slog.Bool("rejected", true))
		}
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Encode != nil:
		attrs = append(attrs,
			slog.Int("subgroups", event.Encode.Subgroups),
			slog.Int("streams", event.Encode.Streams),
			slog.Int("size", event.Encode.Size),
			slog.Int("capacity", event.Encode.Capacity),
		)
	case event.Transport != nil:
		attrs = append(attrs, slog.String("kind", event.Transport.Kind.String()))
		if event.Transport.BigID != "" {
			attrs = append(attrs, slog.String("big_id", event.Transport.BigID))
		}
		if event.Transport.ChannelCount > 0 {
			attrs = append(attrs, slog.Int("channels", event.Transport.ChannelCount))
		}
		if event.Transport.Reason != nil {
			attrs = append(attrs, slog.Uint64("reason", uint64(*event.Transport.Reason)))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("context", event.Error.Context))
		}
	}

	level := slog.LevelDebug
	if event.Category == CategoryError {
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "protocol event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
