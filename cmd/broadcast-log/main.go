// Command broadcast-log is a tool for viewing and analyzing broadcast
// protocol log files.
//
// Log files are created with the protocol logging infrastructure, for
// example by running broadcast-sim with the -event-log flag.
//
// Usage:
//
//	broadcast-log <command> [flags] <file.cborlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	broadcast-log view broadcast.cborlog
//
//	# View only state machine events
//	broadcast-log view -category state broadcast.cborlog
//
//	# Filter by source and save to a new file
//	broadcast-log filter -source-id abc12345 -o filtered.cborlog broadcast.cborlog
//
//	# Show statistics
//	broadcast-log stats broadcast.cborlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/leaudio-protocol/leaudio-go/cmd/broadcast-log/commands"
)

const usage = `broadcast-log - Broadcast Protocol Log Analyzer

Usage:
  broadcast-log <command> [flags] <file.cborlog>

Commands:
  view     View log file in human-readable format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "broadcast-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "view":
		err = runView(args)
	case "filter":
		err = runFilter(args)
	case "stats":
		err = runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", cmd, usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "broadcast-log: %v\n", err)
		os.Exit(1)
	}
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	var opts commands.ViewOptions
	fs.StringVar(&opts.SourceID, "source-id", "", "Only events for this source ID")
	fs.StringVar(&opts.ChannelID, "channel-id", "", "Only events for this channel ID")
	fs.StringVar(&opts.Layer, "layer", "", "Only events from this layer: iso, base, broadcast")
	fs.StringVar(&opts.Category, "category", "", "Only events of this category: state, encode, transport, error")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("view requires exactly one log file")
	}
	return commands.RunView(fs.Arg(0), opts, os.Stdout)
}

func runFilter(args []string) error {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	fs.StringVar(&opts.SourceID, "source-id", "", "Only events for this source ID")
	fs.StringVar(&opts.ChannelID, "channel-id", "", "Only events for this channel ID")
	fs.StringVar(&opts.Layer, "layer", "", "Only events from this layer: iso, base, broadcast")
	fs.StringVar(&opts.Category, "category", "", "Only events of this category: state, encode, transport, error")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Only events at or after this RFC3339 time")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Only events before this RFC3339 time")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("filter requires exactly one log file")
	}
	if opts.Output == "" {
		return fmt.Errorf("filter requires -o <output file>")
	}
	return commands.RunFilter(fs.Arg(0), opts)
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("stats requires exactly one log file")
	}
	return commands.RunStats(fs.Arg(0), os.Stdout)
}
