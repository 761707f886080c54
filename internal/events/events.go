// Package events forwards store changes to external listeners.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Event is the published form of a store change.
type Event struct {
	Type       string    `json:"type" example:"add"`                                 // The store operation
	EnvelopeID string    `json:"envelopeId,omitempty" example:"0b1c3ed4-61a5-4b6f"` // The envelope the operation referenced
	Error      *string   `json:"error,omitempty" example:"Envelope not found"`      // The error recorded by the operation
	Count      int       `json:"count" example:"4"`                                  // Number of envelopes after the operation
	Timestamp  time.Time `json:"timestamp" example:"2024-03-01T09:12:44Z"`
}

// Publisher delivers events to one kind of listener.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NewEvent builds the event for a change of s.
func NewEvent(s *store.Store, c store.Change) Event {
	e := Event{
		Type:       string(c.Op),
		EnvelopeID: c.ID,
		Count:      s.Len(),
		Timestamp:  time.Now().UTC(),
	}

	if c.Err != nil {
		msg := c.Err.Error()
		e.Error = &msg
	}

	return e
}

// Fanout publishes the changes of a store to all publishers.
//
// Events are queued and published on a separate goroutine so that slow
// publishers do not block store mutations. When the queue is full, events
// are dropped.
type Fanout struct {
	publishers []Publisher
	timeout    time.Duration
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
}

const queueSize = 256

// NewFanout starts a Fanout. Close must be called to stop it.
func NewFanout(publishers ...Publisher) *Fanout {
	f := &Fanout{
		publishers: publishers,
		timeout:    5 * time.Second,
		logger:     log.Logger.With().Str("component", "events").Logger(),
		queue:      make(chan Event, queueSize),
		done:       make(chan struct{}),
	}

	go f.run()
	return f
}

// Attach subscribes the Fanout to the changes of s.
func (f *Fanout) Attach(s *store.Store) (detach func()) {
	return s.Subscribe(func(c store.Change) {
		f.enqueue(NewEvent(s, c))
	})
}

func (f *Fanout) enqueue(e Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	// Changes that happen after Close are not published
	if f.closed {
		return
	}

	select {
	case f.queue <- e:
	default:
		f.logger.Warn().Str("type", e.Type).Msg("event queue is full, dropping event")
	}
}

func (f *Fanout) run() {
	defer close(f.done)

	for e := range f.queue {
		for _, p := range f.publishers {
			ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
			if err := p.Publish(ctx, e); err != nil {
				f.logger.Error().Err(err).Str("type", e.Type).Msgf("%T", p)
			}
			cancel()
		}
	}
}

// Close publishes all queued events and stops the Fanout.
func (f *Fanout) Close() {
	f.mu.Lock()
	if !f.closed {
		f.closed = true
		close(f.queue)
	}
	f.mu.Unlock()

	<-f.done
}
