// Package commands implements the broadcast-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/leaudio-protocol/leaudio-go/pkg/log"
)

// ViewOptions specifies filtering criteria for the view command.
type ViewOptions struct {
	SourceID  string
	ChannelID string
	Layer     string
	Category  string
}

// RunView prints the log file in human-readable form.
func RunView(path string, opts ViewOptions, w io.Writer) error {
	filter := log.Filter{
		SourceID:  opts.SourceID,
		ChannelID: opts.ChannelID,
	}
	if opts.Layer != "" {
		l, err := parseLayer(opts.Layer)
		if err != nil {
			return err
		}
		filter.Layer = &l
	}
	if opts.Category != "" {
		c, err := parseCategory(opts.Category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}

	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	var typeLabel string
	switch {
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Encode != nil:
		typeLabel = "Encode"
	case event.Transport != nil:
		typeLabel = event.Transport.Kind.String()
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [src:%s] %s %s\n", ts, shortenID(event.SourceID),
		event.Layer, typeLabel)

	switch {
	case event.StateChange != nil:
		sc := event.StateChange
		verdict := ""
		if sc.Rejected {
			verdict = " REJECTED"
		}
		fmt.Fprintf(w, "  %s %s -> %s%s", sc.Entity, sc.OldState, sc.NewState, verdict)
		if sc.Reason != "" {
			fmt.Fprintf(w, " (%s)", sc.Reason)
		}
		fmt.Fprintln(w)

	case event.Encode != nil:
		e := event.Encode
		fmt.Fprintf(w, "  %d subgroup(s), %d BIS, %d/%d bytes\n",
			e.Subgroups, e.Streams, e.Size, e.Capacity)

	case event.Transport != nil:
		tr := event.Transport
		if tr.BigID != "" {
			fmt.Fprintf(w, "  big %s", shortenID(tr.BigID))
			if tr.ChannelCount > 0 {
				fmt.Fprintf(w, ", %d channel(s)", tr.ChannelCount)
			}
			if tr.Reason != nil {
				fmt.Fprintf(w, ", reason 0x%02x", *tr.Reason)
			}
			fmt.Fprintln(w)
		}

	case event.Error != nil:
		fmt.Fprintf(w, "  %s", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, " (%s)", event.Error.Context)
		}
		fmt.Fprintln(w)
	}
}

// shortenID returns the first 8 characters of a UUID-style identifier.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "iso":
		return log.LayerIso, nil
	case "base":
		return log.LayerBase, nil
	case "broadcast":
		return log.LayerBroadcast, nil
	default:
		return 0, fmt.Errorf("unknown layer %q (want iso, base or broadcast)", s)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "encode":
		return log.CategoryEncode, nil
	case "transport":
		return log.CategoryTransport, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category %q (want state, encode, transport or error)", s)
	}
}
