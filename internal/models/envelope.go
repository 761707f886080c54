package models

import (
	"strings"
	"time"

	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Envelope is the persisted form of an envelope.
//
// Column names follow the hosted envelopes table so that both remote
// backends share one schema.
type Envelope struct {
	ID              string          `gorm:"column:envelope_id;primaryKey"`
	OwnerID         string          `gorm:"column:user_id;index;not null"`
	Title           string          `gorm:"column:envelope_title;not null"`
	Category        string          `gorm:"column:category"`
	Description     string          `gorm:"column:description"`
	AllocatedAmount decimal.Decimal `gorm:"column:allocated_amount;type:DECIMAL(20,8)"`
	SpentAmount     decimal.Decimal `gorm:"column:spent_amount;type:DECIMAL(20,8)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Envelope) TableName() string {
	return "envelopes"
}

// BeforeCreate generates the ID. IDs are never accepted from clients.
func (e *Envelope) BeforeCreate(_ *gorm.DB) error {
	e.ID = uuid.New().String()
	return nil
}

func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)

	return nil
}

// SetFields copies the editable fields onto the model.
func (e *Envelope) SetFields(f store.Fields) {
	e.Title = f.Title
	e.Category = f.Category
	e.Description = f.Description
	e.AllocatedAmount = f.AllocatedAmount
	e.SpentAmount = f.SpentAmount
}

// Record returns the envelope as it is held by the store.
func (e Envelope) Record() store.Envelope {
	return store.Envelope{
		ID: e.ID,
		Fields: store.Fields{
			Title:           e.Title,
			Category:        e.Category,
			Description:     e.Description,
			AllocatedAmount: e.AllocatedAmount,
			SpentAmount:     e.SpentAmount,
		},
	}
}
