// Package eventbus fans decoded realtime events out to auxiliary sinks
// (the desktop notifier, debugging taps). The shell consumes the socket's
// signal channel directly so that ordering with connection signals is
// preserved; the bus exists for consumers that only care about events.
package eventbus

import (
	"context"
	"sync"

	"pkt.systems/pslog"

	"github.com/parleychat/parley/schema"
)

// Bus fans events out to subscribers.
type Bus struct {
	mu    sync.Mutex
	subs  map[chan schema.Event]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[chan schema.Event]struct{}),
		log:   logger,
		depth: 256,
	}
}

// Subscribe registers a subscriber and returns a channel + cancel.
func (b *Bus) Subscribe() (<-chan schema.Event, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan schema.Event, b.depth)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	count := len(b.subs)
	b.mu.Unlock()
	b.log.Debug("eventbus subscribe", "subs", count)
	return ch, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
		b.log.Debug("eventbus unsubscribe")
	}
}

// Publish delivers the event to every subscriber. Slow subscribers drop
// rather than block the socket read loop.
func (b *Bus) Publish(event schema.Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := make([]chan schema.Event, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	dropped := 0
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		b.log.Warn("eventbus dropped events", "dropped", dropped, "type", event.Type)
	}
}
