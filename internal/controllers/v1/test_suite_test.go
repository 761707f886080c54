package v1_test

import (
	"context"
	"log"
	"os"
	"testing"

	v1 "github.com/envelope-zero/envelopes/internal/controllers/v1"
	"github.com/envelope-zero/envelopes/internal/models"
	"github.com/envelope-zero/envelopes/internal/remote/database"
	"github.com/envelope-zero/envelopes/internal/service"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/envelope-zero/envelopes/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const owner = "4b1f8f3e-2f7c-4f0a-9d2c-8c51a2b9e0f1"

type TestSuiteStandard struct {
	suite.Suite
	controller v1.Controller
}

// Pseudo-Test run by go test that runs the test suite.
func TestStandard(t *testing.T) {
	suite.Run(t, new(TestSuiteStandard))
}

func (suite *TestSuiteStandard) SetupSuite() {
	os.Setenv("LOG_FORMAT", "human")
	os.Setenv("GIN_MODE", "debug")
	os.Setenv("API_URL", "http://example.com")
}

// TearDownTest is called after each test in the suite.
func (suite *TestSuiteStandard) TearDownTest() {
	sqlDB, err := models.DB.DB()
	if err != nil {
		log.Fatalf("Database connection for teardown failed with: %#v", err)
	}
	sqlDB.Close()
}

// SetupTest is called before each test in the suite.
func (suite *TestSuiteStandard) SetupTest() {
	err := models.Connect(test.TmpFile(suite.T()))
	if err != nil {
		log.Fatalf("Database initialization failed with: %#v", err)
	}

	suite.controller = v1.Controller{
		Envelopes: service.New(database.New(nil), store.New(), owner),
	}
}

// CloseDB closes the database connection. This enables testing the handling
// of remote service errors.
func (suite *TestSuiteStandard) CloseDB() {
	sqlDB, err := models.DB.DB()
	if err != nil {
		suite.Assert().FailNowf("Failed to get database resource for teardown: %v", err.Error())
	}
	sqlDB.Close()
}

// createTestEnvelope creates an envelope through the service, the same way
// the API does.
func (suite *TestSuiteStandard) createTestEnvelope(title, category string, allocated, spent int64) store.Envelope {
	envelope, err := suite.controller.Envelopes.Create(context.Background(), store.Fields{
		Title:           title,
		Category:        category,
		AllocatedAmount: decimal.NewFromInt(allocated),
		SpentAmount:     decimal.NewFromInt(spent),
	})
	if err != nil {
		suite.Assert().FailNowf("Envelope could not be created", "%T: %v", err, err)
	}

	return envelope
}
