// Package remote defines the contract of the service that owns envelopes.
//
// The remote service assigns ids and returns the canonical field values of
// every record it writes. Nothing is stored locally before it confirmed
// the write.
package remote

import (
	"context"
	"errors"

	"github.com/envelope-zero/envelopes/internal/store"
)

var (
	ErrOwnerRequired = errors.New("an owner ID is required to create envelopes")
	ErrNotFound      = errors.New("the remote service has no envelope with this ID")
	ErrNoData        = errors.New("the remote service did not return the envelope")
)

// Service is implemented by every backend that can persist envelopes.
type Service interface {
	// Create stores a new envelope for the owner and returns it with its id.
	Create(ctx context.Context, ownerID string, fields store.Fields) (store.Envelope, error)

	// List returns all envelopes of the owner.
	List(ctx context.Context, ownerID string) ([]store.Envelope, error)

	// Update overwrites all fields of the envelope.
	Update(ctx context.Context, id string, fields store.Fields) (store.Envelope, error)

	Delete(ctx context.Context, id string) error
}
