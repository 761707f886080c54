package v1_test

import (
	"net/http"

	v1 "github.com/envelope-zero/envelopes/internal/controllers/v1"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/envelope-zero/envelopes/test"
)

func (suite *TestSuiteStandard) TestGetSummary() {
	suite.createTestEnvelope("One", store.CategoryOther, 100, 40)
	suite.createTestEnvelope("Two", store.CategoryOther, 200, 150)
	suite.createTestEnvelope("Fuel", store.CategoryTransportation, 50, 0)

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/summary", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var r v1.SummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &r)

	suite.Assert().Equal("350", r.Data.TotalAllocated.String())
	suite.Assert().Equal("190", r.Data.TotalSpent.String())
	suite.Assert().Equal("160", r.Data.Remaining.String())

	suite.Require().Len(r.Data.Categories, 2)
	suite.Assert().Equal(store.CategoryOther, r.Data.Categories[0].Category)
	suite.Assert().Equal(2, r.Data.Categories[0].Count)
	suite.Assert().Equal("300", r.Data.Categories[0].Allocated.String())
	suite.Assert().Equal(store.CategoryTransportation, r.Data.Categories[1].Category)
}

func (suite *TestSuiteStandard) TestGetSummaryEmpty() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/summary", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var r v1.SummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &r)
	suite.Assert().True(r.Data.TotalAllocated.IsZero())
	suite.Assert().Empty(r.Data.Categories)
}

func (suite *TestSuiteStandard) TestGetCategories() {
	suite.createTestEnvelope("Fuel", store.CategoryTransportation, 50, 0)

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var r v1.CategoriesResponse
	test.DecodeResponse(suite.T(), &recorder, &r)
	suite.Assert().Equal(store.KnownCategories, r.Data.Known)
	suite.Assert().Equal([]string{store.CategoryTransportation}, r.Data.InUse)
}
