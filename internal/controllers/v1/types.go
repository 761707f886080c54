package v1

import (
	"fmt"

	"github.com/envelope-zero/envelopes/internal/httputil"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// EnvelopeEditable represents all user configurable parameters
type EnvelopeEditable struct {
	Title           string          `json:"title" example:"Groceries"`                                       // Display label, 2 to 50 characters
	Category        string          `json:"category" example:"Food & Dining"`                                // One of the categories listed at /v1/categories
	Description     string          `json:"description" example:"Supermarket, bakery and the weekly market"` // At most 500 characters
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" example:"400"`                                   // Budget for the envelope, at most 1,000,000
	SpentAmount     decimal.Decimal `json:"spentAmount" example:"123.45"`                                    // Cannot exceed the allocated amount
}

// model transforms the API representation into the store representation
func (e EnvelopeEditable) model() store.Fields {
	return store.Fields{
		Title:           e.Title,
		Category:        e.Category,
		Description:     e.Description,
		AllocatedAmount: e.AllocatedAmount,
		SpentAmount:     e.SpentAmount,
	}
}

// merge overwrites the fields named in set on f
func (e EnvelopeEditable) merge(f store.Fields, set []string) store.Fields {
	if slices.Contains(set, "Title") {
		f.Title = e.Title
	}
	if slices.Contains(set, "Category") {
		f.Category = e.Category
	}
	if slices.Contains(set, "Description") {
		f.Description = e.Description
	}
	if slices.Contains(set, "AllocatedAmount") {
		f.AllocatedAmount = e.AllocatedAmount
	}
	if slices.Contains(set, "SpentAmount") {
		f.SpentAmount = e.SpentAmount
	}
	return f
}

type EnvelopeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/envelopes/0b1c3ed4-61a5-4b6f-8a34-0fe5c0d8b0a9"` // The envelope itself
}

type Envelope struct {
	ID string `json:"id" example:"0b1c3ed4-61a5-4b6f-8a34-0fe5c0d8b0a9"` // Assigned by the remote service
	EnvelopeEditable
	Available decimal.Decimal `json:"available" example:"276.55"` // Allocated minus spent amount
	Progress  int64           `json:"progress" example:"31"`      // Spent share of the allocation in percent
	Links     EnvelopeLinks   `json:"links"`                      // Links to related resources
}

func newEnvelope(c *gin.Context, e store.Envelope) Envelope {
	url := c.GetString(string(httputil.ContextURL))

	return Envelope{
		ID: e.ID,
		EnvelopeEditable: EnvelopeEditable{
			Title:           e.Title,
			Category:        e.Category,
			Description:     e.Description,
			AllocatedAmount: e.AllocatedAmount,
			SpentAmount:     e.SpentAmount,
		},
		Available: e.Available(),
		Progress:  e.Progress(),
		Links: EnvelopeLinks{
			Self: fmt.Sprintf("%s/v1/envelopes/%s", url, e.ID),
		},
	}
}

type EnvelopeListResponse struct {
	Data    []Envelope `json:"data"`                               // List of envelopes
	Loading bool       `json:"loading" example:"false"`            // Whether envelopes are being loaded from the remote service
	Error   *string    `json:"error" example:"Envelope not found"` // The error of the last change, if any
}

type EnvelopeResponse struct {
	Data  *Envelope `json:"data"`                               // Data for the envelope
	Error *string   `json:"error" example:"Envelope not found"` // The error, if any occurred
}

type EnvelopeQueryFilter struct {
	Category string `form:"category"`                   // By category
	Title    string `form:"title" filterField:"false"`  // By glob pattern on the title
	Search   string `form:"search" filterField:"false"` // By string in title or category
}

// query converts the filter to a store query. Only parameters that are
// set in the URL are applied.
func (f EnvelopeQueryFilter) query(setFields []string) store.Query {
	var q store.Query
	if slices.Contains(setFields, "Category") {
		q.Category = &f.Category
	}
	if slices.Contains(setFields, "Title") {
		q.Title = &f.Title
	}
	if slices.Contains(setFields, "Search") {
		q.Search = &f.Search
	}
	return q
}

type SummaryResponse struct {
	Data store.Summary `json:"data"` // Totals and per category breakdown
}

type CategoriesResponse struct {
	Data Categories `json:"data"`
}

type Categories struct {
	Known []string `json:"known" example:"Food & Dining,Transportation"` // All categories an envelope can have
	InUse []string `json:"inUse" example:"Food & Dining"`                // Categories of the stored envelopes
}
