// Command broadcast-sim is an interactive broadcast source simulator.
//
// It drives the broadcast source stack over the in-process loopback
// transport, so the full lifecycle (create, start, stop, reconfigure,
// delete) and the resulting BASE encodings can be exercised without a
// Bluetooth controller.
//
// Usage:
//
//	broadcast-sim [flags]
//
// Flags:
//
//	-config string     Limits configuration file (YAML)
//	-event-log string  Write protocol events to this file (CBOR)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Run with default limits
//	broadcast-sim
//
//	# Record protocol events for later inspection
//	broadcast-sim -config limits.yaml -event-log /tmp/broadcast.cborlog
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leaudio-protocol/leaudio-go/pkg/broadcast"
	"github.com/leaudio-protocol/leaudio-go/pkg/config"
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
	"github.com/leaudio-protocol/leaudio-go/pkg/log"
)

func main() {
	var (
		configFile string
		eventLog   string
		logLevel   string
	)
	flag.StringVar(&configFile, "config", "", "Limits configuration file (YAML)")
	flag.StringVar(&eventLog, "event-log", "", "Write protocol events to this file (CBOR)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	if err := run(configFile, eventLog, logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "broadcast-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, eventLog, logLevel string) error {
	limits := config.DefaultLimits()
	if configFile != "" {
		var err error
		limits, err = config.LoadLimits(configFile)
		if err != nil {
			return fmt.Errorf("loading limits: %w", err)
		}
	}

	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))

	var logger log.Logger = log.NewSlogAdapter(slogger)
	if eventLog != "" {
		fileLogger, err := log.NewFileLogger(eventLog)
		if err != nil {
			return fmt.Errorf("opening event log: %w", err)
		}
		defer fileLogger.Close()
		logger = log.NewMultiLogger(logger, fileLogger)
	}

	transport := iso.NewLoopback(logger)
	mgr, err := broadcast.NewManager(limits, transport, logger)
	if err != nil {
		return fmt.Errorf("creating manager: %w", err)
	}

	sim, err := newSimulator(mgr, transport, limits)
	if err != nil {
		return err
	}
	return sim.run()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
