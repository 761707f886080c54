// Package store keeps the local replica of a user's envelopes.
//
// A Store only ever holds envelopes that the remote service has confirmed.
// Mutations are validated and never panic: a failed operation leaves the
// collection untouched and records its error, which stays readable through
// Err until the next successful mutation.
package store

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Op names the store operation that caused a Change.
type Op string

const (
	OpReplaceAll    Op = "replaceAll"
	OpAdd           Op = "add"
	OpUpdate        Op = "update"
	OpUpdatePartial Op = "updatePartial"
	OpRemove        Op = "remove"
	OpClear         Op = "clear"
	OpLoading       Op = "loading"
	OpError         Op = "error"
)

// Change describes a committed store operation.
type Change struct {
	Op  Op
	ID  string // Envelope the operation referenced, empty for collection wide operations
	Err error  // The error recorded by the operation
}

// Observer is called after every committed operation.
type Observer func(Change)

// Store is an observable collection of envelopes.
//
// All methods are safe for concurrent use. Every method runs to completion
// before the next one starts, so calls made in sequence are applied in
// that order.
type Store struct {
	mu        sync.RWMutex
	envelopes []Envelope
	loading   bool
	err       error

	observerMu sync.Mutex
	observers  map[uint64]Observer
	nextID     uint64

	logger zerolog.Logger
}

type Option func(*Store)

// WithLogger sets the logger used for rejected mutations.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		envelopes: []Envelope{},
		observers: map[uint64]Observer{},
		logger:    log.Logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With().Str("component", "store").Logger()
	return s
}

// Subscribe registers an observer. The returned function removes it again.
//
// Observers run on the goroutine that called the mutating method, after
// the store has been unlocked. They may read from the store.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.observerMu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = o
	s.observerMu.Unlock()

	return func() {
		s.observerMu.Lock()
		delete(s.observers, id)
		s.observerMu.Unlock()
	}
}

func (s *Store) notify(c Change) {
	s.observerMu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.observerMu.Unlock()

	for _, o := range observers {
		o(c)
	}
}

// ReplaceAll sets the collection to the valid records, keeping their order.
//
// Invalid records are dropped without being reported. If an id occurs more
// than once, only its first valid record is kept. The error is cleared.
func (s *Store) ReplaceAll(records []Envelope) {
	s.mu.Lock()
	valid := make([]Envelope, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if err := Validate(r); err != nil {
			s.logger.Debug().Str("id", r.ID).Err(err).Msg("dropping invalid envelope")
			continue
		}

		if _, ok := seen[r.ID]; ok {
			s.logger.Debug().Str("id", r.ID).Msg("dropping envelope with repeated id")
			continue
		}

		seen[r.ID] = struct{}{}
		valid = append(valid, r)
	}

	s.envelopes = valid
	s.err = nil
	s.mu.Unlock()

	s.notify(Change{Op: OpReplaceAll})
}

// Add appends an envelope.
//
// It fails with ErrInvalidEnvelopeData if the envelope does not pass
// Validate and with ErrDuplicateID if the id is already in the store.
func (s *Store) Add(e Envelope) error {
	s.mu.Lock()
	err := func() error {
		if Validate(e) != nil {
			return ErrInvalidEnvelopeData
		}

		if s.indexOf(e.ID) != -1 {
			return ErrDuplicateID
		}

		s.envelopes = append(s.envelopes, e)
		return nil
	}()
	s.err = err
	s.mu.Unlock()

	return s.commit(OpAdd, e.ID, err)
}

// Update replaces the envelope with the same id.
func (s *Store) Update(e Envelope) error {
	s.mu.Lock()
	err := func() error {
		if Validate(e) != nil {
			return ErrInvalidEnvelopeData
		}

		i := s.indexOf(e.ID)
		if i == -1 {
			return ErrNotFound
		}

		s.envelopes[i] = e
		return nil
	}()
	s.err = err
	s.mu.Unlock()

	return s.commit(OpUpdate, e.ID, err)
}

// UpdatePartial overwrites only the fields set in the patch.
//
// The patch is not validated.
func (s *Store) UpdatePartial(id string, p Patch) error {
	s.mu.Lock()
	var err error
	if i := s.indexOf(id); i != -1 {
		s.envelopes[i].Fields = p.Apply(s.envelopes[i].Fields)
	} else {
		err = ErrNotFound
	}
	s.err = err
	s.mu.Unlock()

	return s.commit(OpUpdatePartial, id, err)
}

// Remove deletes the envelope with the id.
//
// Surrounding whitespace in the id is ignored. A blank id fails with
// ErrInvalidEnvelopeID, an unknown one with ErrNotFound.
func (s *Store) Remove(id string) error {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	var err error
	if id == "" {
		err = ErrInvalidEnvelopeID
	} else if i := s.indexOf(id); i != -1 {
		s.envelopes = append(s.envelopes[:i:i], s.envelopes[i+1:]...)
	} else {
		err = ErrNotFound
	}
	s.err = err
	s.mu.Unlock()

	return s.commit(OpRemove, id, err)
}

// Clear removes all envelopes and the error.
func (s *Store) Clear() {
	s.mu.Lock()
	s.envelopes = []Envelope{}
	s.err = nil
	s.mu.Unlock()

	s.notify(Change{Op: OpClear})
}

// SetLoading sets the loading flag. It has no effect on anything else.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()

	s.notify(Change{Op: OpLoading})
}

// SetError records err as the current error. nil clears it.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	s.notify(Change{Op: OpError, Err: err})
}

// Loading returns the loading flag.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the most recent mutating operation, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// All returns a copy of the envelopes in store order.
func (s *Store) All() []Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyEnvelopes()
}

// Len returns the number of envelopes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.envelopes)
}

// Snapshot is a consistent copy of the store state.
type Snapshot struct {
	Envelopes []Envelope `json:"envelopes"`                         // All envelopes in store order
	Loading   bool       `json:"loading" example:"false"`           // Whether a remote call is in progress
	Error     *string    `json:"error" example:"Envelope not found"` // The error of the last mutation, if any
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		Envelopes: s.copyEnvelopes(),
		Loading:   s.loading,
	}

	if s.err != nil {
		msg := s.err.Error()
		snapshot.Error = &msg
	}

	return snapshot
}

// commit logs a failed operation and notifies observers.
func (s *Store) commit(op Op, id string, err error) error {
	if err != nil {
		s.logger.Debug().Str("op", string(op)).Str("id", id).Err(err).Msg("mutation rejected")
	}

	s.notify(Change{Op: op, ID: id, Err: err})
	return err
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	for i, e := range s.envelopes {
		if e.ID == id {
			return i
		}
	}

	return -1
}

// copyEnvelopes must be called with s.mu held.
func (s *Store) copyEnvelopes() []Envelope {
	envelopes := make([]Envelope, len(s.envelopes))
	copy(envelopes, s.envelopes)
	return envelopes
}
