package iso

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leaudio-protocol/leaudio-go/pkg/log"
)

// Loopback is an in-process Transport simulator. CreateBig connects every
// channel and reports the BIG as started; TerminateBig disconnects the
// channels and reports it as stopped. All events are delivered
// synchronously on the caller's goroutine, after internal locks are
// released.
//
// Loopback is intended for tests and tooling; it performs no radio I/O.
type Loopback struct {
	mu        sync.Mutex
	observers []BigObserver
	bigs      map[string]*loopbackBig
	logger    log.Logger

	failCreate error
}

// loopbackBig is the Loopback-owned BIG handle.
type loopbackBig struct {
	id       string
	channels []*Channel
}

// ID returns the handle's unique identifier.
func (b *loopbackBig) ID() string {
	return b.id
}

// NewLoopback creates a loopback transport. Pass nil to disable logging.
func NewLoopback(logger log.Logger) *Loopback {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Loopback{
		bigs:   make(map[string]*loopbackBig),
		logger: logger,
	}
}

// FailNextCreate makes the next CreateBig call fail with err.
// Used to exercise error paths.
func (t *Loopback) FailNextCreate(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failCreate = err
}

// CreateBig simulates BIG establishment: every channel is connected and
// registered observers receive BigStarted.
func (t *Loopback) CreateBig(adv Advertiser, params BigParams) (Big, error) {
	if len(params.Channels) == 0 {
		return nil, ErrNoChannels
	}

	t.mu.Lock()
	if err := t.failCreate; err != nil {
		t.failCreate = nil
		t.mu.Unlock()
		return nil, err
	}

	big := &loopbackBig{
		id:       uuid.New().String(),
		channels: append([]*Channel(nil), params.Channels...),
	}
	t.bigs[big.id] = big
	observers := append([]BigObserver(nil), t.observers...)
	t.mu.Unlock()

	t.logger.Log(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerIso,
		Category:  log.CategoryTransport,
		Transport: &log.TransportEvent{
			Kind:         log.TransportBigCreate,
			BigID:        big.id,
			ChannelCount: len(big.channels),
		},
	})

	// Deliver events outside the lock: the callbacks re-enter the
	// broadcast layer.
	for _, ch := range big.channels {
		ch.NotifyConnected()
	}
	for _, obs := range observers {
		obs.BigStarted(big)
	}

	return big, nil
}

// TerminateBig simulates BIG termination: every channel is disconnected
// with ReasonLocalTermination and registered observers receive BigStopped.
func (t *Loopback) TerminateBig(big Big) error {
	t.mu.Lock()
	owned, ok := t.bigs[big.ID()]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownBig, big.ID())
	}
	delete(t.bigs, big.ID())
	observers := append([]BigObserver(nil), t.observers...)
	t.mu.Unlock()

	reason := ReasonLocalTermination
	t.logger.Log(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerIso,
		Category:  log.CategoryTransport,
		Transport: &log.TransportEvent{
			Kind:   log.TransportBigTerminate,
			BigID:  owned.id,
			Reason: &reason,
		},
	})

	for _, ch := range owned.channels {
		ch.NotifyDisconnected(reason)
	}
	for _, obs := range observers {
		obs.BigStopped(owned, reason)
	}

	return nil
}

// RegisterObserver registers for BIG lifecycle events.
func (t *Loopback) RegisterObserver(obs BigObserver) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.observers {
		if existing == obs {
			return ErrObserverRegistered
		}
	}
	t.observers = append(t.observers, obs)
	return nil
}

// SendAll simulates SDU transmission completion on every channel of the
// BIG, delivering a sent event per channel.
func (t *Loopback) SendAll(big Big) error {
	t.mu.Lock()
	owned, ok := t.bigs[big.ID()]
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBig, big.ID())
	}

	for _, ch := range owned.channels {
		ch.NotifySent()
	}
	return nil
}

// StaticAdvertiser is a trivial Advertiser for tests and tooling.
type StaticAdvertiser uint8

// Handle returns the advertising set handle.
func (a StaticAdvertiser) Handle() uint8 {
	return uint8(a)
}

// Compile-time interface satisfaction checks.
var (
	_ Transport  = (*Loopback)(nil)
	_ Advertiser = StaticAdvertiser(0)
)
