// Package database implements the remote envelope service on a gorm database.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/envelope-zero/envelopes/internal/models"
	"github.com/envelope-zero/envelopes/internal/remote"
	"github.com/envelope-zero/envelopes/internal/store"
	"gorm.io/gorm"
)

// Service persists envelopes in a database.
type Service struct {
	db *gorm.DB
}

var _ remote.Service = (*Service)(nil)

// New returns a Service using db. If db is nil, models.DB is used.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) conn(ctx context.Context) *gorm.DB {
	if s.db != nil {
		return s.db.WithContext(ctx)
	}
	return models.DB.WithContext(ctx)
}

func (s *Service) Create(ctx context.Context, ownerID string, fields store.Fields) (store.Envelope, error) {
	if strings.TrimSpace(ownerID) == "" {
		return store.Envelope{}, remote.ErrOwnerRequired
	}

	envelope := models.Envelope{OwnerID: ownerID}
	envelope.SetFields(fields)

	err := s.conn(ctx).Create(&envelope).Error
	if err != nil {
		return store.Envelope{}, fmt.Errorf("creating envelope: %w", err)
	}

	return envelope.Record(), nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]store.Envelope, error) {
	var envelopes []models.Envelope
	err := s.conn(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC, envelope_id ASC").
		Find(&envelopes).Error
	if err != nil {
		return nil, fmt.Errorf("listing envelopes: %w", err)
	}

	records := make([]store.Envelope, 0, len(envelopes))
	for _, e := range envelopes {
		records = append(records, e.Record())
	}
	return records, nil
}

func (s *Service) Update(ctx context.Context, id string, fields store.Fields) (store.Envelope, error) {
	var envelope models.Envelope
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&envelope, "envelope_id = ?", id).Error
		if err != nil {
			return err
		}

		envelope.SetFields(fields)
		return tx.Save(&envelope).Error
	})
	if errors.Is(err, models.ErrResourceNotFound) {
		return store.Envelope{}, remote.ErrNotFound
	} else if err != nil {
		return store.Envelope{}, fmt.Errorf("updating envelope: %w", err)
	}

	return envelope.Record(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	result := s.conn(ctx).Delete(&models.Envelope{}, "envelope_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting envelope: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return remote.ErrNotFound
	}

	return nil
}
