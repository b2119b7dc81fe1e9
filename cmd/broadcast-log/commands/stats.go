package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/leaudio-protocol/leaudio-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	Sources          map[string]*SourceStats
	Rejected         int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SourceStats holds statistics for a single broadcast source.
type SourceStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Encodes   int
	LastState string
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		Sources:          make(map[string]*SourceStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.StateChange != nil && event.StateChange.Rejected {
			stats.Rejected++
		}
		if event.Error != nil {
			stats.Errors++
		}

		if event.SourceID == "" {
			continue
		}
		src, ok := stats.Sources[event.SourceID]
		if !ok {
			src = &SourceStats{FirstSeen: event.Timestamp}
			stats.Sources[event.SourceID] = src
		}
		src.Events++
		if event.Timestamp.After(src.LastSeen) {
			src.LastSeen = event.Timestamp
		}
		if event.Encode != nil {
			src.Encodes++
		}
		if event.StateChange != nil && !event.StateChange.Rejected {
			src.LastState = event.StateChange.NewState
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "Total events: %d\n", stats.TotalEvents)
	if !stats.TimeRange.Start.IsZero() {
		fmt.Fprintf(w, "Time range:   %s .. %s (%s)\n",
			stats.TimeRange.Start.UTC().Format(time.RFC3339),
			stats.TimeRange.End.UTC().Format(time.RFC3339),
			stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
	}

	fmt.Fprintln(w, "\nBy layer:")
	for _, layer := range []log.Layer{log.LayerIso, log.LayerBase, log.LayerBroadcast} {
		if n := stats.EventsByLayer[layer]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", layer, n)
		}
	}

	fmt.Fprintln(w, "\nBy category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryEncode, log.CategoryTransport, log.CategoryError} {
		if n := stats.EventsByCategory[cat]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", cat, n)
		}
	}

	if stats.Rejected > 0 {
		fmt.Fprintf(w, "\nRejected transitions: %d\n", stats.Rejected)
	}
	if stats.Errors > 0 {
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}

	if len(stats.Sources) > 0 {
		ids := make([]string, 0, len(stats.Sources))
		for id := range stats.Sources {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Fprintln(w, "\nSources:")
		for _, id := range ids {
			src := stats.Sources[id]
			fmt.Fprintf(w, "  %s: %d event(s), %d encode(s)", shortenID(id), src.Events, src.Encodes)
			if src.LastState != "" {
				fmt.Fprintf(w, ", last state %s", src.LastState)
			}
			fmt.Fprintln(w)
		}
	}
}
