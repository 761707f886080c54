package models_test

import (
	"errors"
	"strings"

	"github.com/envelope-zero/envelopes/internal/models"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestEnvelopeIDIsGenerated() {
	envelope := suite.createTestEnvelope(models.Envelope{ID: "chosen-by-client", Title: "Rent"})

	assert.NotEqual(suite.T(), "chosen-by-client", envelope.ID)
	_, err := uuid.Parse(envelope.ID)
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestEnvelopeTrimWhitespace() {
	title := "  Groceries \t"
	description := " Weekly shopping   "

	envelope := suite.createTestEnvelope(models.Envelope{
		Title:       title,
		Description: description,
	})

	assert.Equal(suite.T(), strings.TrimSpace(title), envelope.Title)
	assert.Equal(suite.T(), strings.TrimSpace(description), envelope.Description)
}

func (suite *TestSuiteStandard) TestEnvelopeRoundTrip() {
	fields := store.Fields{
		Title:           "Fuel",
		Category:        store.CategoryTransportation,
		Description:     "Car and scooter",
		AllocatedAmount: decimal.NewFromFloat(120.5),
		SpentAmount:     decimal.NewFromFloat(33.25),
	}

	var envelope models.Envelope
	envelope.SetFields(fields)
	envelope = suite.createTestEnvelope(envelope)

	var stored models.Envelope
	err := models.DB.First(&stored, "envelope_id = ?", envelope.ID).Error
	assert.Nil(suite.T(), err)

	record := stored.Record()
	assert.Equal(suite.T(), envelope.ID, record.ID)
	assert.Equal(suite.T(), fields.Title, record.Title)
	assert.Equal(suite.T(), fields.Category, record.Category)
	assert.Equal(suite.T(), fields.Description, record.Description)
	assert.True(suite.T(), fields.AllocatedAmount.Equal(record.AllocatedAmount), record.AllocatedAmount.String())
	assert.True(suite.T(), fields.SpentAmount.Equal(record.SpentAmount), record.SpentAmount.String())
}

func (suite *TestSuiteStandard) TestEnvelopeNotFound() {
	err := models.DB.First(&models.Envelope{}, "envelope_id = ?", "missing").Error
	assert.True(suite.T(), errors.Is(err, models.ErrResourceNotFound), "%T: %v", err, err)
}

func (suite *TestSuiteStandard) TestClosedDatabase() {
	suite.CloseDB()

	err := models.DB.Find(&[]models.Envelope{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
