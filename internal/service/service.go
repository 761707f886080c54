// Package service runs the envelope use cases: every change is validated,
// sent to the remote service and only applied to the store once the
// remote service confirmed it.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/envelope-zero/envelopes/internal/remote"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrBusy is returned when the same change is submitted again before the
// first submission finished.
var ErrBusy = errors.New("this change is already being processed, please wait")

// RemoteError is a failure of the remote service.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Envelopes connects the store of one owner with the remote service.
type Envelopes struct {
	remote  remote.Service
	store   *store.Store
	ownerID string
	timeout time.Duration
	logger  zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}

	// Load holds the write side so that a list fetched from the remote
	// service never replaces changes confirmed while it was in flight.
	// Create, Update and Delete hold the read side.
	syncMu sync.RWMutex
}

type Option func(*Envelopes)

// WithTimeout limits the duration of every remote call. 0 disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Envelopes) {
		e.timeout = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Envelopes) {
		e.logger = logger
	}
}

func New(r remote.Service, s *store.Store, ownerID string, opts ...Option) *Envelopes {
	e := &Envelopes{
		remote:   r,
		store:    s,
		ownerID:  ownerID,
		logger:   log.Logger,
		inFlight: map[string]struct{}{},
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With().Str("component", "service").Str("owner", ownerID).Logger()
	return e
}

// Store returns the store the use cases write to.
func (e *Envelopes) Store() *store.Store {
	return e.store
}

// Load replaces the store contents with the owner's envelopes.
//
// If the remote service fails, the envelopes in the store are kept and the
// failure is recorded as the store error.
func (e *Envelopes) Load(ctx context.Context) error {
	done, err := e.begin("load")
	if err != nil {
		return err
	}
	defer done()

	e.syncMu.Lock()
	defer e.syncMu.Unlock()

	e.store.SetLoading(true)
	defer e.store.SetLoading(false)

	ctx, cancel := e.context(ctx)
	defer cancel()

	envelopes, err := e.remote.List(ctx, e.ownerID)
	if err != nil {
		return e.failed("loading envelopes", err)
	}

	e.store.ReplaceAll(envelopes)
	e.logger.Debug().Int("count", e.store.Len()).Msg("envelopes loaded")
	return nil
}

// Create validates the input, creates the envelope remotely and adds the
// confirmed envelope to the store.
func (e *Envelopes) Create(ctx context.Context, fields store.Fields) (store.Envelope, error) {
	if err := store.ValidateInput(fields); err != nil {
		return store.Envelope{}, err
	}

	done, err := e.begin("create:" + strings.ToLower(strings.TrimSpace(fields.Title)))
	if err != nil {
		return store.Envelope{}, err
	}
	defer done()

	e.syncMu.RLock()
	defer e.syncMu.RUnlock()

	ctx, cancel := e.context(ctx)
	defer cancel()

	envelope, err := e.remote.Create(ctx, e.ownerID, fields)
	if err != nil {
		return store.Envelope{}, e.failed("creating envelope", err)
	}

	if err := e.store.Add(envelope); err != nil {
		return store.Envelope{}, err
	}

	return envelope, nil
}

// Update validates the input, updates the envelope remotely and merges every
// field returned by the remote service into the stored envelope.
func (e *Envelopes) Update(ctx context.Context, id string, fields store.Fields) (store.Envelope, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return store.Envelope{}, store.ErrInvalidEnvelopeID
	}

	if err := store.ValidateInput(fields); err != nil {
		return store.Envelope{}, err
	}

	done, err := e.begin("envelope:" + id)
	if err != nil {
		return store.Envelope{}, err
	}
	defer done()

	e.syncMu.RLock()
	defer e.syncMu.RUnlock()

	ctx, cancel := e.context(ctx)
	defer cancel()

	updated, err := e.remote.Update(ctx, id, fields)
	if err != nil {
		return store.Envelope{}, e.failed("updating envelope", err)
	}

	if err := e.store.UpdatePartial(id, store.PatchFrom(updated.Fields)); err != nil {
		return store.Envelope{}, err
	}

	envelope, _ := e.store.ByID(id)
	return envelope, nil
}

// Delete deletes the envelope remotely, then removes it from the store.
//
// An envelope the store does not hold is still deleted remotely. The call
// succeeds and clears the store error.
func (e *Envelopes) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return store.ErrInvalidEnvelopeID
	}

	done, err := e.begin("envelope:" + id)
	if err != nil {
		return err
	}
	defer done()

	e.syncMu.RLock()
	defer e.syncMu.RUnlock()

	ctx, cancel := e.context(ctx)
	defer cancel()

	if err := e.remote.Delete(ctx, id); err != nil {
		return e.failed("deleting envelope", err)
	}

	err = e.store.Remove(id)
	if errors.Is(err, store.ErrNotFound) {
		e.logger.Debug().Str("id", id).Msg("deleted envelope was not in the store")
		e.store.SetError(nil)
		return nil
	}

	return err
}

// begin marks key as in flight. The returned function must be called
// when the change is finished.
func (e *Envelopes) begin(key string) (func(), error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.inFlight[key]; ok {
		return nil, ErrBusy
	}
	e.inFlight[key] = struct{}{}

	return func() {
		e.mu.Lock()
		delete(e.inFlight, key)
		e.mu.Unlock()
	}, nil
}

func (e *Envelopes) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// failed records a remote failure in the store and wraps it.
func (e *Envelopes) failed(op string, err error) error {
	e.logger.Error().Err(err).Str("op", op).Msg("remote service")

	err = &RemoteError{Op: op, Err: err}
	e.store.SetError(err)
	return err
}
