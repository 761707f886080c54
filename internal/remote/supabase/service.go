package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/envelope-zero/envelopes/internal/remote"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/shopspring/decimal"
)

const table = "envelopes"

// row is an envelope in the envelopes table.
type row struct {
	ID              string          `json:"envelope_id,omitempty"`
	OwnerID         string          `json:"user_id,omitempty"`
	Title           string          `json:"envelope_title"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
}

// newRow trims the text fields the same way the database backend does
// before saving.
func newRow(f store.Fields) row {
	return row{
		Title:           strings.TrimSpace(f.Title),
		Category:        f.Category,
		Description:     strings.TrimSpace(f.Description),
		AllocatedAmount: f.AllocatedAmount,
		SpentAmount:     f.SpentAmount,
	}
}

func (r row) record() store.Envelope {
	return store.Envelope{
		ID: r.ID,
		Fields: store.Fields{
			Title:           r.Title,
			Category:        r.Category,
			Description:     r.Description,
			AllocatedAmount: r.AllocatedAmount,
			SpentAmount:     r.SpentAmount,
		},
	}
}

// Service stores envelopes in the envelopes table of a project.
type Service struct {
	client *Client
}

var _ remote.Service = (*Service)(nil)

func New(client *Client) *Service {
	return &Service{client: client}
}

func (s *Service) Create(ctx context.Context, ownerID string, fields store.Fields) (store.Envelope, error) {
	if strings.TrimSpace(ownerID) == "" {
		return store.Envelope{}, remote.ErrOwnerRequired
	}

	r := newRow(fields)
	r.OwnerID = ownerID

	resp, err := s.client.execute(ctx, request{
		method: http.MethodPost,
		table:  table,
		body:   r,
	})
	if err != nil {
		return store.Envelope{}, fmt.Errorf("creating envelope: %w", err)
	}
	if err := resp.Error(); err != nil {
		return store.Envelope{}, fmt.Errorf("creating envelope: %w", err)
	}

	var rows []row
	if err := resp.JSON(&rows); err != nil {
		return store.Envelope{}, fmt.Errorf("decoding created envelope: %w", err)
	}
	if len(rows) == 0 {
		return store.Envelope{}, remote.ErrNoData
	}

	return rows[0].record(), nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]store.Envelope, error) {
	filters := eq("user_id", ownerID)
	filters.Set("select", "*")

	resp, err := s.client.execute(ctx, request{
		method:  http.MethodGet,
		table:   table,
		filters: filters,
	})
	if err != nil {
		return nil, fmt.Errorf("listing envelopes: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("listing envelopes: %w", err)
	}

	var rows []row
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("decoding envelopes: %w", err)
	}

	records := make([]store.Envelope, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

func (s *Service) Update(ctx context.Context, id string, fields store.Fields) (store.Envelope, error) {
	resp, err := s.client.execute(ctx, request{
		method:  http.MethodPatch,
		table:   table,
		filters: eq("envelope_id", id),
		body:    newRow(fields),
		single:  true,
	})
	if err != nil {
		return store.Envelope{}, fmt.Errorf("updating envelope: %w", err)
	}

	// PostgREST answers 406 if a single object was requested, but no row matched
	if resp.StatusCode == http.StatusNotAcceptable {
		return store.Envelope{}, remote.ErrNotFound
	}
	if err := resp.Error(); err != nil {
		return store.Envelope{}, fmt.Errorf("updating envelope: %w", err)
	}

	var r row
	if err := resp.JSON(&r); err != nil {
		return store.Envelope{}, fmt.Errorf("decoding updated envelope: %w", err)
	}
	if r.ID == "" {
		return store.Envelope{}, remote.ErrNoData
	}

	return r.record(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	resp, err := s.client.execute(ctx, request{
		method:  http.MethodDelete,
		table:   table,
		filters: eq("envelope_id", id),
	})
	if err != nil {
		return fmt.Errorf("deleting envelope: %w", err)
	}
	if err := resp.Error(); err != nil {
		return fmt.Errorf("deleting envelope: %w", err)
	}

	var rows []row
	if err := resp.JSON(&rows); err != nil {
		return fmt.Errorf("decoding deleted envelope: %w", err)
	}
	if len(rows) == 0 {
		return remote.ErrNotFound
	}

	return nil
}

