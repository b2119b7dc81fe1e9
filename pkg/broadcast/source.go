package broadcast

import (
	"fmt"
	"time"

	"github.com/leaudio-protocol/leaudio-go/pkg/codec"
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
	"github.com/leaudio-protocol/leaudio-go/pkg/log"
	"github.com/leaudio-protocol/leaudio-go/pkg/qos"
)

// Source is one broadcast source aggregate: an ordered list of subgroups,
// a shared QoS and the BIG handle while broadcasting. A slot is free iff
// it has no subgroups.
//
// Sources are created through Manager.Create and released through Delete.
type Source struct {
	mgr   *Manager
	index int

	id        string
	subgroups []*Subgroup
	qos       *qos.Config

	packing       iso.Packing
	encryption    bool
	broadcastCode [iso.BroadcastCodeSize]byte

	// streamData holds the creation-time BIS configuration bytes, in
	// subgroup-major stream order, so reconfiguration can re-merge
	// streams whose parameters are not resupplied.
	streamData [][]byte

	big iso.Big
}

// ID returns the source's unique identifier.
func (s *Source) ID() string {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	return s.id
}

// State returns the aggregate source state: the most advanced state
// across the source's endpoints, or the idle state for a released source.
func (s *Source) State() EndpointState {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	return s.stateLocked()
}

// Big returns the BIG handle while broadcasting, or nil.
func (s *Source) Big() iso.Big {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	return s.big
}

// QoS returns the QoS shared by the source's streams.
func (s *Source) QoS() *qos.Config {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	return s.qos
}

// Subgroups returns the source's subgroups in encoding order.
func (s *Source) Subgroups() []*Subgroup {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	return append([]*Subgroup(nil), s.subgroups...)
}

// stateLocked returns the aggregate state: the most advanced state
// across the source's endpoints, or idle for a released source.
// Caller holds mgr.mu.
func (s *Source) stateLocked() EndpointState {
	state := StateIdle
	for _, sg := range s.subgroups {
		for _, st := range sg.streams {
			if st.ep.state > state {
				state = st.ep.state
			}
		}
	}
	return state
}

// Reconfig replaces the source's configuration. The parameters walk the
// source positionally: the subgroup count must match, and each subgroup
// may supply at most as many stream parameters as it has streams — the
// update can narrow fan-out, never widen it. A stream parameter may name
// the bound stream at its position or leave Stream nil; either way new
// BIS bytes replace the stored override, and streams without a parameter
// keep their stored bytes. Every stream is re-merged against its new
// subgroup configuration and every channel receives the new QoS. Only
// permitted while QoS-configured. The source is unchanged when an error
// is returned.
func (s *Source) Reconfig(params *SourceParams) error {
	m := s.mgr

	m.mu.Lock()
	defer m.mu.Unlock()

	if st := s.stateLocked(); st != StateQoSConfigured {
		return fmt.Errorf("%w: %s", ErrInvalidState, st)
	}

	if err := m.validateSourceParams(params, s); err != nil {
		return err
	}

	if len(params.Subgroups) != len(s.subgroups) {
		return fmt.Errorf("%w: subgroup count %d != %d",
			ErrInvalidParam, len(params.Subgroups), len(s.subgroups))
	}
	for i, sp := range params.Subgroups {
		sg := s.subgroups[i]
		if len(sp.Streams) > len(sg.streams) {
			return fmt.Errorf("%w: subgroup[%d] stream params %d > %d streams",
				ErrInvalidParam, i, len(sp.Streams), len(sg.streams))
		}
		for j, stp := range sp.Streams {
			if stp.Stream != nil && stp.Stream != sg.streams[j] {
				return fmt.Errorf("%w: subgroup[%d] stream[%d] out of creation order",
					ErrInvalidParam, i, j)
			}
		}
	}

	// Merge everything up front so a capacity failure leaves the
	// source untouched.
	type streamUpdate struct {
		merged *codec.Config
		data   []byte
	}
	updates := make([]streamUpdate, 0, len(s.streamData))
	ordinal := 0
	for i, sp := range params.Subgroups {
		sg := s.subgroups[i]
		for j := range sg.streams {
			data := s.streamData[ordinal]
			if j < len(sp.Streams) && len(sp.Streams[j].Data) > 0 {
				data = sp.Streams[j].Data
			}
			merged, err := codec.MergeBIS(sp.CodecConfig, data)
			if err != nil {
				return fmt.Errorf("%w: merge stream config: %v", ErrResourceExhausted, err)
			}
			updates = append(updates, streamUpdate{
				merged: merged,
				data:   append([]byte(nil), data...),
			})
			ordinal++
		}
	}

	s.qos = params.QoS
	s.packing = params.Packing
	s.encryption = params.Encryption
	s.broadcastCode = [iso.BroadcastCodeSize]byte{}
	if params.Encryption {
		s.broadcastCode = params.BroadcastCode
	}

	ordinal = 0
	for i, sp := range params.Subgroups {
		sg := s.subgroups[i]
		sg.codecCfg = sp.CodecConfig
		for _, st := range sg.streams {
			st.codecCfg = updates[ordinal].merged
			st.qos = params.QoS
			st.ep.channel.SetTxQoS(iso.FromQoS(params.QoS))
			s.streamData[ordinal] = updates[ordinal].data
			ordinal++
		}
	}

	return nil
}

// UpdateMetadata replaces the metadata of every subgroup uniformly.
// Only permitted while streaming.
func (s *Source) UpdateMetadata(meta []byte) error {
	m := s.mgr

	m.mu.Lock()
	defer m.mu.Unlock()

	if st := s.stateLocked(); st != StateStreaming {
		return fmt.Errorf("%w: %s", ErrInvalidState, st)
	}

	if len(meta) > codec.MaxMetadataSize {
		return fmt.Errorf("%w: metadata length %d > %d",
			ErrInvalidParam, len(meta), codec.MaxMetadataSize)
	}
	if !codec.ValidLTV(meta) {
		return fmt.Errorf("%w: metadata is not valid LTV", ErrInvalidParam)
	}

	for _, sg := range s.subgroups {
		if err := sg.codecCfg.SetMetadata(meta); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidParam, err)
		}
	}

	return nil
}

// Start requests BIG establishment on the given advertising set. The
// endpoints enter the enabling state before the transport call; they
// reach streaming when their channels connect. A transport failure rolls
// the endpoints back to QoS-configured and is returned verbatim.
func (s *Source) Start(adv iso.Advertiser) error {
	if adv == nil {
		return fmt.Errorf("%w: advertiser is nil", ErrInvalidParam)
	}

	m := s.mgr
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	if st := s.stateLocked(); st != StateQoSConfigured {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidState, st)
	}

	var channels []*iso.Channel
	for _, sg := range s.subgroups {
		for _, st := range sg.streams {
			channels = append(channels, st.ep.channel)
		}
	}

	for _, sg := range s.subgroups {
		for _, st := range sg.streams {
			m.setEndpointState(st.ep, StateEnabling, "start")
		}
	}

	params := iso.BigParams{
		Channels:      channels,
		Framing:       s.qos.Framing,
		Packing:       s.packing,
		IntervalUs:    s.qos.IntervalUs,
		LatencyMs:     s.qos.LatencyMs,
		Encryption:    s.encryption,
		BroadcastCode: s.broadcastCode,
	}
	m.pendingStart = s
	id := s.id
	m.mu.Unlock()

	m.logger.Log(log.Event{
		Timestamp: time.Now(),
		SourceID:  id,
		Layer:     log.LayerBroadcast,
		Category:  log.CategoryTransport,
		Transport: &log.TransportEvent{
			Kind:         log.TransportBigCreate,
			ChannelCount: len(channels),
		},
	})

	big, err := m.transport.CreateBig(adv, params)

	m.mu.Lock()
	m.pendingStart = nil
	if err != nil {
		for _, sg := range s.subgroups {
			for _, st := range sg.streams {
				m.setEndpointState(st.ep, StateQoSConfigured, "start failed")
			}
		}
		m.mu.Unlock()
		return err
	}
	if s.big == nil {
		s.big = big
	}
	m.mu.Unlock()

	return nil
}

// Stop requests BIG termination. Only permitted while streaming or
// enabling; a stoppable source without an active BIG reports
// ErrAlreadyStopped. Endpoint state changes follow from the transport's
// channel disconnections, not from Stop itself.
func (s *Source) Stop() error {
	m := s.mgr

	m.mu.Lock()
	if st := s.stateLocked(); st != StateStreaming && st != StateEnabling {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidState, st)
	}
	big := s.big
	id := s.id
	m.mu.Unlock()

	if big == nil {
		return ErrAlreadyStopped
	}

	m.logger.Log(log.Event{
		Timestamp: time.Now(),
		SourceID:  id,
		Layer:     log.LayerBroadcast,
		Category:  log.CategoryTransport,
		Transport: &log.TransportEvent{
			Kind:  log.TransportBigTerminate,
			BigID: big.ID(),
		},
	})

	return m.transport.TerminateBig(big)
}

// Delete releases the source and returns its endpoints and subgroups to
// the pools. Only permitted while QoS-configured. The bound streams are
// detached and may be reused.
func (s *Source) Delete() error {
	m := s.mgr

	m.mu.Lock()
	defer m.mu.Unlock()

	if st := s.stateLocked(); st != StateQoSConfigured {
		return fmt.Errorf("%w: %s", ErrInvalidState, st)
	}

	for _, sg := range s.subgroups {
		for _, st := range sg.streams {
			m.setEndpointState(st.ep, StateIdle, "delete")
		}
	}

	m.releaseSourceLocked(s)
	return nil
}
