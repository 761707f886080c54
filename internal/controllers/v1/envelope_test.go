package v1_test

import (
	"context"
	"net/http"
	"testing"

	v1 "github.com/envelope-zero/envelopes/internal/controllers/v1"
	"github.com/envelope-zero/envelopes/internal/remote/database"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/envelope-zero/envelopes/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreateEnvelope() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/envelopes", map[string]any{
		"title":           "  Groceries ",
		"category":        store.CategoryFoodAndDining,
		"description":     "Supermarket",
		"allocatedAmount": 400,
		"spentAmount":     "100.5",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var r v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &r)
	require.NotNil(suite.T(), r.Data)

	suite.Assert().NotEmpty(r.Data.ID)
	suite.Assert().Equal("Groceries", r.Data.Title)
	suite.Assert().Equal("299.5", r.Data.Available.String())
	suite.Assert().Equal(int64(25), r.Data.Progress)
	suite.Assert().Equal("http://example.com/v1/envelopes/"+r.Data.ID, r.Data.Links.Self)

	// The confirmed envelope is in the store
	e, ok := suite.controller.Envelopes.Store().ByID(r.Data.ID)
	suite.Assert().True(ok)
	suite.Assert().Equal("Groceries", e.Title)
}

func (suite *TestSuiteStandard) TestCreateEnvelopeFails() {
	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Broken body", `{ "title": "Rent }`, http.StatusBadRequest, "the body of your request contains invalid or un-parseable data. Please check and try again"},
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Wrong type", `{ "title": 12 }`, http.StatusBadRequest, ""},
		{
			"Title too short",
			map[string]any{"title": "R", "category": store.CategoryOther, "allocatedAmount": 10},
			http.StatusBadRequest,
			"Invalid envelope data: title: the title must be at least 2 characters",
		},
		{
			"Unknown category",
			map[string]any{"title": "Rent", "category": "Rent", "allocatedAmount": 10},
			http.StatusBadRequest,
			"",
		},
		{
			"Overspent",
			map[string]any{"title": "Rent", "category": store.CategoryOther, "allocatedAmount": 10, "spentAmount": 11},
			http.StatusBadRequest,
			"",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/envelopes", tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)

			if tt.err != "" {
				assert.Equal(t, tt.err, test.DecodeError(t, recorder.Body.Bytes()))
			}
		})
	}

	// Nothing reached the store or the database
	suite.Assert().Equal(0, suite.controller.Envelopes.Store().Len())

	envelopes, err := database.New(nil).List(context.Background(), owner)
	suite.Require().Nil(err)
	suite.Assert().Empty(envelopes)
}

func (suite *TestSuiteStandard) TestCreateEnvelopeRemoteFailure() {
	suite.CloseDB()

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/envelopes", map[string]any{
		"title":           "Rent",
		"category":        store.CategoryBillsAndUtilities,
		"allocatedAmount": 1200,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadGateway)

	snapshot := suite.controller.Envelopes.Store().Snapshot()
	suite.Assert().Empty(snapshot.Envelopes)
	suite.Require().NotNil(snapshot.Error)
}

func (suite *TestSuiteStandard) TestGetEnvelopes() {
	suite.createTestEnvelope("Groceries", store.CategoryFoodAndDining, 400, 100)
	suite.createTestEnvelope("Restaurants", store.CategoryFoodAndDining, 150, 0)
	suite.createTestEnvelope("Fuel", store.CategoryTransportation, 200, 150)

	tests := []struct {
		name   string
		query  string
		titles []string
	}{
		{"All", "", []string{"Groceries", "Restaurants", "Fuel"}},
		{"Category", "?category=Food+%26+Dining", []string{"Groceries", "Restaurants"}},
		{"Empty category", "?category=", []string{}},
		{"Title pattern", "?title=*s", []string{"Groceries", "Restaurants"}},
		{"Search", "?search=FUEL", []string{"Fuel"}},
		{"Search and category", "?search=rest&category=Food+%26+Dining", []string{"Restaurants"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(suite.controller, t, http.MethodGet, "http://example.com/v1/envelopes"+tt.query, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var r v1.EnvelopeListResponse
			test.DecodeResponse(t, &recorder, &r)

			titles := []string{}
			for _, e := range r.Data {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.titles, titles)
			assert.False(t, r.Loading)
			assert.Nil(t, r.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestGetEnvelope() {
	envelope := suite.createTestEnvelope("Fuel", store.CategoryTransportation, 200, 150)

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/envelopes/"+envelope.ID, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var r v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &r)
	suite.Require().NotNil(r.Data)
	suite.Assert().Equal(envelope.ID, r.Data.ID)
	suite.Assert().Equal("50", r.Data.Available.String())
	suite.Assert().Equal(int64(75), r.Data.Progress)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/envelopes/f2a4", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
	suite.Assert().Equal("Envelope not found", test.DecodeError(suite.T(), recorder.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestUpdateEnvelope() {
	envelope := suite.createTestEnvelope("Rent", store.CategoryBillsAndUtilities, 1000, 0)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPatch, "http://example.com/v1/envelopes/"+envelope.ID, map[string]any{
		"spentAmount": "250",
		"description": "Due on the first",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var r v1.EnvelopeResponse
	test.DecodeResponse(suite.T(), &recorder, &r)
	suite.Require().NotNil(r.Data)

	// Fields that are not in the body are kept
	suite.Assert().Equal("Rent", r.Data.Title)
	suite.Assert().Equal(store.CategoryBillsAndUtilities, r.Data.Category)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(r.Data.AllocatedAmount))
	suite.Assert().Equal("Due on the first", r.Data.Description)
	suite.Assert().Equal("750", r.Data.Available.String())

	stored, ok := suite.controller.Envelopes.Store().ByID(envelope.ID)
	suite.Require().True(ok)
	suite.Assert().True(decimal.NewFromInt(250).Equal(stored.SpentAmount))
}

func (suite *TestSuiteStandard) TestUpdateEnvelopeFails() {
	envelope := suite.createTestEnvelope("Rent", store.CategoryBillsAndUtilities, 1000, 0)

	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Unknown envelope", "9d0e", map[string]any{"spentAmount": 1}, http.StatusNotFound},
		{"Broken body", envelope.ID, `{ "spentAmount": 1`, http.StatusBadRequest},
		{"Empty body", envelope.ID, "", http.StatusBadRequest},
		{"Overspent", envelope.ID, map[string]any{"spentAmount": 1001}, http.StatusBadRequest},
		{"Title removed", envelope.ID, map[string]any{"title": " "}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(suite.controller, t, http.MethodPatch, "http://example.com/v1/envelopes/"+tt.id, tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}

	stored, ok := suite.controller.Envelopes.Store().ByID(envelope.ID)
	suite.Require().True(ok)
	suite.Assert().Equal("Rent", stored.Title)
	suite.Assert().True(stored.SpentAmount.IsZero())
}

func (suite *TestSuiteStandard) TestDeleteEnvelope() {
	envelope := suite.createTestEnvelope("Rent", store.CategoryBillsAndUtilities, 1000, 0)

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/v1/envelopes/"+envelope.ID, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/envelopes/"+envelope.ID, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	// The second deletion fails at the remote service
	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/v1/envelopes/"+envelope.ID, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteEnvelopeNotInStore() {
	// Created by another client, the store does not know about it yet
	envelope, err := database.New(nil).Create(context.Background(), owner, store.Fields{
		Title:           "Old savings",
		Category:        store.CategorySavings,
		AllocatedAmount: decimal.NewFromInt(50),
	})
	suite.Require().Nil(err)

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/v1/envelopes/"+envelope.ID, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	remaining, err := database.New(nil).List(context.Background(), owner)
	suite.Require().Nil(err)
	suite.Assert().Empty(remaining)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/envelopes", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Nil(response.Error, "A successful deletion must not leave an error behind")
}

func (suite *TestSuiteStandard) TestSyncEnvelopes() {
	// Created by another client, the store does not know about it yet
	_, err := database.New(nil).Create(context.Background(), owner, store.Fields{
		Title:           "Travel fund",
		Category:        store.CategoryTravel,
		AllocatedAmount: decimal.NewFromInt(500),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(0, suite.controller.Envelopes.Store().Len())

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/envelopes/sync", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var r v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &recorder, &r)
	suite.Require().Len(r.Data, 1)
	suite.Assert().Equal("Travel fund", r.Data[0].Title)
	suite.Assert().Equal(1, suite.controller.Envelopes.Store().Len())
}

func (suite *TestSuiteStandard) TestSyncEnvelopesRemoteFailure() {
	suite.createTestEnvelope("Rent", store.CategoryBillsAndUtilities, 1000, 0)
	suite.CloseDB()

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/envelopes/sync", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadGateway)

	// The envelopes are kept, the list shows the failure
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/envelopes", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var r v1.EnvelopeListResponse
	test.DecodeResponse(suite.T(), &recorder, &r)
	suite.Assert().Len(r.Data, 1)
	suite.Require().NotNil(r.Error)
	suite.Assert().Contains(*r.Error, "loading envelopes failed")
}

func (suite *TestSuiteStandard) TestEnvelopeFeedDisabled() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/envelopes/ws", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
