package broadcast

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leaudio-protocol/leaudio-go/pkg/codec"
	"github.com/leaudio-protocol/leaudio-go/pkg/config"
	"github.com/leaudio-protocol/leaudio-go/pkg/iso"
	"github.com/leaudio-protocol/leaudio-go/pkg/log"
)

// Manager owns the broadcast source slots and the endpoint and subgroup
// pools they draw from. Pool capacities are fixed at construction from
// the configured limits.
//
// All exported methods are safe for concurrent use. Application callbacks
// are invoked without internal locks held.
type Manager struct {
	// mu guards the pools and all per-source state.
	mu sync.Mutex

	// opMu serializes Start calls so the single pendingStart slot is
	// unambiguous while a CreateBig is in flight.
	opMu sync.Mutex

	limits    config.Limits
	transport iso.Transport
	logger    log.Logger
	chanOps   *iso.ChannelOps

	sources   []Source
	endpoints [][]Endpoint
	subgroups [][]Subgroup

	listeners          []*Callbacks
	observerRegistered bool

	// pendingStart is the source whose CreateBig is in flight, so a
	// BigStarted delivered before the handle is stored can still be
	// attributed.
	pendingStart *Source
}

// NewManager creates a manager with pools sized from limits. Pass a nil
// logger to disable logging.
func NewManager(limits config.Limits, transport iso.Transport, logger log.Logger) (*Manager, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("%w: limits: %v", ErrInvalidParam, err)
	}
	if transport == nil {
		return nil, fmt.Errorf("%w: transport is nil", ErrInvalidParam)
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}

	m := &Manager{
		limits:    limits,
		transport: transport,
		logger:    logger,
		sources:   make([]Source, limits.MaxSources),
		endpoints: make([][]Endpoint, limits.MaxSources),
		subgroups: make([][]Subgroup, limits.MaxSources),
	}
	m.chanOps = &iso.ChannelOps{
		Connected:    m.channelConnected,
		Disconnected: m.channelDisconnected,
		Sent:         m.channelSent,
	}

	for i := range m.sources {
		m.sources[i].mgr = m
		m.sources[i].index = i
		m.endpoints[i] = make([]Endpoint, limits.MaxStreamsPerSource)
		for j := range m.endpoints[i] {
			m.endpoints[i][j].reset()
		}
		m.subgroups[i] = make([]Subgroup, limits.MaxSubgroupsPerSource)
	}

	return m, nil
}

// Create allocates and configures a broadcast source. On success every
// bound endpoint is in the QoS-configured state. On failure everything
// allocated so far is released and the pools are unchanged.
func (m *Manager) Create(params *SourceParams) (*Source, error) {
	if err := m.validateSourceParams(params, nil); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.newSource()
	if s == nil {
		return nil, fmt.Errorf("%w: no free source slot", ErrResourceExhausted)
	}

	s.id = uuid.New().String()
	s.qos = params.QoS
	s.packing = params.Packing
	s.encryption = params.Encryption
	if params.Encryption {
		s.broadcastCode = params.BroadcastCode
	}

	for _, sp := range params.Subgroups {
		sg := m.newSubgroup(s.index)
		if sg == nil {
			m.releaseSourceLocked(s)
			return nil, fmt.Errorf("%w: no free subgroup slot", ErrResourceExhausted)
		}
		sg.codecCfg = sp.CodecConfig
		s.subgroups = append(s.subgroups, sg)

		for _, stp := range sp.Streams {
			ep := m.newEndpoint(s.index)
			if ep == nil {
				m.releaseSourceLocked(s)
				return nil, fmt.Errorf("%w: no free endpoint slot", ErrResourceExhausted)
			}

			merged, err := codec.MergeBIS(sp.CodecConfig, stp.Data)
			if err != nil {
				m.releaseSourceLocked(s)
				return nil, fmt.Errorf("%w: merge stream config: %v", ErrResourceExhausted, err)
			}

			ch := iso.NewChannel(m.chanOps)
			ch.SetTxQoS(iso.FromQoS(params.QoS))
			ch.Bind(ep)
			ep.source = s
			ep.channel = ch

			st := stp.Stream
			st.attach(ep, merged)
			st.qos = params.QoS
			st.group = s

			sg.streams = append(sg.streams, st)
			s.streamData = append(s.streamData, append([]byte(nil), stp.Data...))
		}
	}

	for _, sg := range s.subgroups {
		for _, st := range sg.streams {
			m.setEndpointState(st.ep, StateQoSConfigured, "create")
		}
	}

	return s, nil
}

// releaseSourceLocked tears a source down to a free slot, returning its
// endpoints and subgroups to the pools. Caller holds m.mu.
func (m *Manager) releaseSourceLocked(s *Source) {
	for _, sg := range s.subgroups {
		for _, st := range sg.streams {
			if ep := st.ep; ep != nil {
				if ep.channel != nil {
					ep.channel.Unbind()
				}
				ep.reset()
			}
			st.ep = nil
			st.codecCfg = nil
			st.qos = nil
			st.group = nil
		}
		sg.reset()
	}

	mgr, index := s.mgr, s.index
	*s = Source{mgr: mgr, index: index}
}

// IsBroadcastEndpoint reports whether ep belongs to this manager's pools.
func (m *Manager) IsBroadcastEndpoint(ep *Endpoint) bool {
	if ep == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.endpoints {
		for j := range m.endpoints[i] {
			if &m.endpoints[i][j] == ep {
				return true
			}
		}
	}

	return false
}

// setEndpointState applies an endpoint state transition. An illegal
// transition is logged and ignored, leaving the state unchanged.
// Caller holds m.mu.
func (m *Manager) setEndpointState(ep *Endpoint, to EndpointState, reason string) bool {
	ok := validTransition(ep.state, to)

	ev := log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerBroadcast,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityEndpoint,
			OldState: ep.state.String(),
			NewState: to.String(),
			Rejected: !ok,
			Reason:   reason,
		},
	}
	if ep.source != nil {
		ev.SourceID = ep.source.id
	}
	if ep.channel != nil {
		ev.ChannelID = ep.channel.ID()
	}
	m.logger.Log(ev)

	if !ok {
		return false
	}
	ep.state = to
	return true
}

// channelConnected handles an isochronous channel establishment. An
// endpoint in the enabling state moves to streaming.
func (m *Manager) channelConnected(ch *iso.Channel) {
	m.mu.Lock()
	ep, ok := ch.Attachment().(*Endpoint)
	if !ok || ep.stream == nil {
		m.mu.Unlock()
		return
	}

	started := false
	if ep.state == StateEnabling {
		started = m.setEndpointState(ep, StateStreaming, "channel connected")
	}
	st := ep.stream
	ops := st.Ops
	m.mu.Unlock()

	if ops == nil {
		return
	}
	if ops.Connected != nil {
		ops.Connected(st)
	}
	if started && ops.Started != nil {
		ops.Started(st)
	}
}

// channelDisconnected handles an isochronous channel teardown. A
// streaming or enabling endpoint falls back to QoS-configured.
func (m *Manager) channelDisconnected(ch *iso.Channel, reason uint8) {
	m.mu.Lock()
	ep, ok := ch.Attachment().(*Endpoint)
	if !ok || ep.stream == nil {
		m.mu.Unlock()
		return
	}

	stopped := false
	if ep.state == StateStreaming || ep.state == StateEnabling {
		stopped = m.setEndpointState(ep, StateQoSConfigured, "channel disconnected")
	}
	st := ep.stream
	ops := st.Ops
	m.mu.Unlock()

	if ops == nil {
		return
	}
	if ops.Disconnected != nil {
		ops.Disconnected(st, reason)
	}
	if stopped && ops.Stopped != nil {
		ops.Stopped(st, reason)
	}
}

// channelSent forwards an SDU completion to the stream owner.
func (m *Manager) channelSent(ch *iso.Channel) {
	m.mu.Lock()
	ep, ok := ch.Attachment().(*Endpoint)
	if !ok || ep.stream == nil {
		m.mu.Unlock()
		return
	}
	st := ep.stream
	ops := st.Ops
	m.mu.Unlock()

	if ops != nil && ops.Sent != nil {
		ops.Sent(st)
	}
}

// BigStarted implements iso.BigObserver. Events for BIGs not owned by
// any source are ignored.
func (m *Manager) BigStarted(big iso.Big) {
	m.mu.Lock()
	s := m.sourceByBigLocked(big)
	if s == nil && m.pendingStart != nil {
		// The transport reported establishment before CreateBig
		// returned; adopt the handle for the in-flight source.
		s = m.pendingStart
		s.big = big
	}
	if s == nil {
		m.mu.Unlock()
		return
	}
	listeners := append([]*Callbacks(nil), m.listeners...)
	id := s.id
	m.mu.Unlock()

	m.logger.Log(log.Event{
		Timestamp: time.Now(),
		SourceID:  id,
		Layer:     log.LayerBroadcast,
		Category:  log.CategoryTransport,
		Transport: &log.TransportEvent{
			Kind:  log.TransportBigStarted,
			BigID: big.ID(),
		},
	})

	for _, cb := range listeners {
		if cb.Started != nil {
			cb.Started(s)
		}
	}
}

// BigStopped implements iso.BigObserver. The BIG handle is cleared
// before listeners run so that a listener can immediately Start again.
func (m *Manager) BigStopped(big iso.Big, reason uint8) {
	m.mu.Lock()
	s := m.sourceByBigLocked(big)
	if s == nil {
		m.mu.Unlock()
		return
	}
	s.big = nil
	listeners := append([]*Callbacks(nil), m.listeners...)
	id := s.id
	m.mu.Unlock()

	r := reason
	m.logger.Log(log.Event{
		Timestamp: time.Now(),
		SourceID:  id,
		Layer:     log.LayerBroadcast,
		Category:  log.CategoryTransport,
		Transport: &log.TransportEvent{
			Kind:   log.TransportBigStopped,
			BigID:  big.ID(),
			Reason: &r,
		},
	})

	for _, cb := range listeners {
		if cb.Stopped != nil {
			cb.Stopped(s, reason)
		}
	}
}

// sourceByBigLocked finds the source owning the BIG handle, or nil.
// Caller holds m.mu.
func (m *Manager) sourceByBigLocked(big iso.Big) *Source {
	for i := range m.sources {
		s := &m.sources[i]
		if s.big != nil && s.big.ID() == big.ID() {
			return s
		}
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ iso.BigObserver = (*Manager)(nil)
