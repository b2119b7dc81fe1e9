package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leaudio-protocol/leaudio-go/pkg/base"
	"github.com/leaudio-protocol/leaudio-go/pkg/broadcast"
	"github.com/leaudio-protocol/leaudio-go/pkg/codec"
	"github.com/leaudio-protocol/leaudio-go/pkg/config"
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
	"github.com/leaudio-protocol/leaudio-go/pkg/qos"
)

// simulator handles the interactive command loop.
type simulator struct {
	mgr       *broadcast.Manager
	transport *iso.Loopback
	limits    config.Limits
	rl        *readline.Instance

	source *broadcast.Source

	// shape of the current source, for reconfiguration
	streamCounts []int
}

func newSimulator(mgr *broadcast.Manager, transport *iso.Loopback, limits config.Limits) (*simulator, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "broadcast> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &simulator{
		mgr:       mgr,
		transport: transport,
		limits:    limits,
		rl:        rl,
	}

	err = mgr.RegisterCallbacks(&broadcast.Callbacks{
		Started: func(src *broadcast.Source) {
			fmt.Fprintf(rl.Stdout(), "[event] source %s started\n", src.ID())
		},
		Stopped: func(src *broadcast.Source, reason uint8) {
			fmt.Fprintf(rl.Stdout(), "[event] source %s stopped (reason 0x%02x)\n", src.ID(), reason)
		},
	})
	if err != nil {
		rl.Close()
		return nil, err
	}

	return s, nil
}

// run starts the interactive command loop.
func (s *simulator) run() error {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "create", "c":
			s.cmdCreate(args)

		case "reconfig":
			s.cmdReconfig(args)

		case "meta", "m":
			s.cmdMeta(args)

		case "start":
			s.cmdStart()

		case "stop":
			s.cmdStop()

		case "delete", "del":
			s.cmdDelete()

		case "base", "b":
			s.cmdBase()

		case "send":
			s.cmdSend()

		case "state", "status":
			s.cmdState()

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return nil

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *simulator) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Broadcast Source Commands:
  Lifecycle:
    create [subgroups [streams]] - Create a source (defaults: 1 subgroup, 1 stream each)
    start                        - Start broadcasting (create the BIG)
    stop                         - Stop broadcasting (terminate the BIG)
    delete                       - Delete the source and free its resources
    reconfig [freq-code]         - Reconfigure with a new sampling frequency code

  Content:
    meta <hex>                   - Update metadata while streaming (LTV hex, e.g. 03020400)
    send                         - Simulate one SDU transmission on every BIS
    base                         - Encode and print the BASE structure
    state                        - Show source and per-stream state

  General:
    help                         - Show this help
    quit                         - Exit`)
}

func (s *simulator) cmdCreate(args []string) {
	if s.source != nil {
		fmt.Fprintln(s.rl.Stdout(), "A source already exists; delete it first")
		return
	}

	subgroups, streams := 1, 1
	var err error
	if len(args) > 0 {
		if subgroups, err = strconv.Atoi(args[0]); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid subgroup count: %v\n", err)
			return
		}
	}
	if len(args) > 1 {
		if streams, err = strconv.Atoi(args[1]); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid stream count: %v\n", err)
			return
		}
	}

	if subgroups < 1 || subgroups > int(s.limits.MaxSubgroupsPerSource) ||
		streams < 1 || subgroups*streams > int(s.limits.MaxStreamsPerSource) {
		fmt.Fprintf(s.rl.Stdout(), "Shape exceeds limits (max %d subgroup(s), %d stream(s) per source)\n",
			s.limits.MaxSubgroupsPerSource, s.limits.MaxStreamsPerSource)
		return
	}

	counts := make([]int, subgroups)
	for i := range counts {
		counts[i] = streams
	}

	src, err := s.mgr.Create(s.buildParams(counts, 0x06))
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Create failed: %v\n", err)
		return
	}

	s.source = src
	s.streamCounts = counts
	fmt.Fprintf(s.rl.Stdout(), "Created source %s (%d subgroup(s), %d stream(s) each)\n",
		src.ID(), subgroups, streams)
}

// buildParams assembles LC3 source parameters: one shared QoS, the given
// subgroup shape, and a per-BIS audio channel allocation override.
func (s *simulator) buildParams(streamCounts []int, freqCode byte) *broadcast.SourceParams {
	p := &broadcast.SourceParams{
		QoS: &qos.Config{
			IntervalUs:          10000,
			Framing:             qos.FramingUnframed,
			PHY:                 qos.PHY2M,
			SDU:                 120,
			RTN:                 4,
			LatencyMs:           20,
			PresentationDelayUs: 40000,
		},
		Packing: iso.PackingSequential,
	}

	bis := byte(0)
	for _, n := range streamCounts {
		sp := broadcast.SubgroupParams{
			CodecConfig: &codec.Config{
				ID:       codec.CodingFormatLC3,
				Data:     []byte{0x02, 0x01, freqCode},
				Metadata: []byte{0x03, 0x02, 0x04, 0x00},
			},
		}
		for i := 0; i < n; i++ {
			bis++
			sp.Streams = append(sp.Streams, broadcast.StreamParams{
				Stream: broadcast.NewStream(s.streamOps(bis)),
				Data:   []byte{0x02, 0x03, bis},
			})
		}
		p.Subgroups = append(p.Subgroups, sp)
	}

	return p
}

func (s *simulator) streamOps(bis byte) *broadcast.StreamOps {
	return &broadcast.StreamOps{
		Started: func(*broadcast.Stream) {
			fmt.Fprintf(s.rl.Stdout(), "[event] BIS %d streaming\n", bis)
		},
		Stopped: func(_ *broadcast.Stream, reason uint8) {
			fmt.Fprintf(s.rl.Stdout(), "[event] BIS %d stopped (reason 0x%02x)\n", bis, reason)
		},
		Sent: func(*broadcast.Stream) {
			fmt.Fprintf(s.rl.Stdout(), "[event] BIS %d SDU sent\n", bis)
		},
	}
}

func (s *simulator) cmdReconfig(args []string) {
	if s.source == nil {
		fmt.Fprintln(s.rl.Stdout(), "No source; create one first")
		return
	}

	freqCode := byte(0x08)
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid frequency code: %v\n", err)
			return
		}
		freqCode = byte(v)
	}

	// Keep the bound streams: the shape must match, so reuse the
	// creation shape with unnamed stream parameters.
	p := s.buildParams(s.streamCounts, freqCode)
	for i := range p.Subgroups {
		for j := range p.Subgroups[i].Streams {
			p.Subgroups[i].Streams[j] = broadcast.StreamParams{}
		}
	}

	if err := s.source.Reconfig(p); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Reconfig failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Reconfigured with sampling frequency code 0x%02x\n", freqCode)
}

func (s *simulator) cmdMeta(args []string) {
	if s.source == nil {
		fmt.Fprintln(s.rl.Stdout(), "No source; create one first")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: meta <hex>")
		return
	}

	meta, err := hex.DecodeString(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid hex: %v\n", err)
		return
	}

	if err := s.source.UpdateMetadata(meta); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Update failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Metadata updated (%d bytes)\n", len(meta))
}

func (s *simulator) cmdStart() {
	if s.source == nil {
		fmt.Fprintln(s.rl.Stdout(), "No source; create one first")
		return
	}
	if err := s.source.Start(iso.StaticAdvertiser(0)); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Start failed: %v\n", err)
	}
}

func (s *simulator) cmdStop() {
	if s.source == nil {
		fmt.Fprintln(s.rl.Stdout(), "No source; create one first")
		return
	}
	if err := s.source.Stop(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Stop failed: %v\n", err)
	}
}

func (s *simulator) cmdDelete() {
	if s.source == nil {
		fmt.Fprintln(s.rl.Stdout(), "No source; create one first")
		return
	}
	if err := s.source.Delete(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Delete failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "Source deleted")
	s.source = nil
	s.streamCounts = nil
}

func (s *simulator) cmdBase() {
	if s.source == nil {
		fmt.Fprintln(s.rl.Stdout(), "No source; create one first")
		return
	}

	buf := base.NewBuffer(252)
	if err := s.source.GetBase(buf); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Encode failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "BASE (%d bytes): %x\n", buf.Len(), buf.Bytes())
}

func (s *simulator) cmdSend() {
	if s.source == nil {
		fmt.Fprintln(s.rl.Stdout(), "No source; create one first")
		return
	}
	big := s.source.Big()
	if big == nil {
		fmt.Fprintln(s.rl.Stdout(), "Not broadcasting")
		return
	}
	if err := s.transport.SendAll(big); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Send failed: %v\n", err)
	}
}

func (s *simulator) cmdState() {
	if s.source == nil {
		fmt.Fprintln(s.rl.Stdout(), "No source")
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Source %s: %s\n", s.source.ID(), s.source.State())
	bis := 0
	for i, sg := range s.source.Subgroups() {
		for _, st := range sg.Streams() {
			bis++
			fmt.Fprintf(s.rl.Stdout(), "  subgroup %d BIS %d: %s\n",
				i, bis, st.Endpoint().State())
		}
	}
}
