package store

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Limits applied to user input before anything is sent to the remote service.
const (
	MinTitleLength       = 2
	MaxTitleLength       = 50
	MaxDescriptionLength = 500
)

// MaxAllocatedAmount is the largest budget accepted from user input.
var MaxAllocatedAmount = decimal.NewFromInt(1000000)

// Fields contains the user editable parameters of an envelope.
type Fields struct {
	Title           string          `json:"title" example:"Groceries"`                                      // Display label of the envelope
	Category        string          `json:"category" example:"Food & Dining"`                               // One of the known categories
	Description     string          `json:"description" example:"Supermarket, bakery and the weekly market"` // Free text
	AllocatedAmount decimal.Decimal `json:"allocatedAmount" example:"400"`                                  // Budget ceiling
	SpentAmount     decimal.Decimal `json:"spentAmount" example:"123.45"`                                   // Amount already spent
}

// Envelope is a budget allocation as confirmed by the remote service.
type Envelope struct {
	ID string `json:"id" example:"0b1c3ed4-61a5-4b6f-8a34-0fe5c0d8b0a9"` // Assigned by the remote service
	Fields
}

// Available is the part of the allocation that has not been spent yet.
// It is negative for overspent envelopes.
func (e Envelope) Available() decimal.Decimal {
	return e.AllocatedAmount.Sub(e.SpentAmount)
}

// Progress is the spent share of the allocation in whole percent.
func (e Envelope) Progress() int64 {
	if !e.AllocatedAmount.IsPositive() {
		return 0
	}

	return e.SpentAmount.Div(e.AllocatedAmount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Patch is a sparse set of field updates. Nil fields are left untouched.
type Patch struct {
	Title           *string
	Category        *string
	Description     *string
	AllocatedAmount *decimal.Decimal
	SpentAmount     *decimal.Decimal
}

// PatchFrom returns a Patch that overwrites every field with the values in f.
func PatchFrom(f Fields) Patch {
	return Patch{
		Title:           &f.Title,
		Category:        &f.Category,
		Description:     &f.Description,
		AllocatedAmount: &f.AllocatedAmount,
		SpentAmount:     &f.SpentAmount,
	}
}

// Empty reports whether the patch does not set any field.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Category == nil && p.Description == nil && p.AllocatedAmount == nil && p.SpentAmount == nil
}

// Apply returns a copy of f with the fields of the patch overwritten.
func (p Patch) Apply(f Fields) Fields {
	if p.Title != nil {
		f.Title = *p.Title
	}

	if p.Category != nil {
		f.Category = *p.Category
	}

	if p.Description != nil {
		f.Description = *p.Description
	}

	if p.AllocatedAmount != nil {
		f.AllocatedAmount = *p.AllocatedAmount
	}

	if p.SpentAmount != nil {
		f.SpentAmount = *p.SpentAmount
	}

	return f
}

// Validate checks that an envelope may be admitted to a Store.
//
// The id and title must not be blank and both amounts must not be negative.
// Category and description are not checked here, see ValidateInput.
func Validate(e Envelope) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: the id must not be empty", ErrInvalidEnvelopeData)
	}

	var v ValidationError
	validateRecord(&v, e.Fields)
	if len(v.Fields) > 0 {
		return &v
	}

	return nil
}

// ValidateInput checks user input before it is sent to the remote service.
//
// It applies the same rules as Validate and the input policy on top: a known
// category, length limits, a positive allocation and spending that does not
// exceed it.
//
// The description is optional. Only its length is limited, so creating and
// editing an envelope accept the same input.
func ValidateInput(f Fields) error {
	var v ValidationError
	validateRecord(&v, f)

	if n := utf8.RuneCountInString(strings.TrimSpace(f.Title)); n > 0 && n < MinTitleLength {
		v.add("title", fmt.Sprintf("the title must be at least %d characters", MinTitleLength))
	} else if n > MaxTitleLength {
		v.add("title", fmt.Sprintf("the title must be at most %d characters", MaxTitleLength))
	}

	if f.Category == "" {
		v.add("category", "a category must be selected")
	} else if !IsKnownCategory(f.Category) {
		v.add("category", fmt.Sprintf("%q is not a known category", f.Category))
	}

	if utf8.RuneCountInString(strings.TrimSpace(f.Description)) > MaxDescriptionLength {
		v.add("description", fmt.Sprintf("the description must be at most %d characters", MaxDescriptionLength))
	}

	if !f.AllocatedAmount.IsPositive() {
		v.add("allocatedAmount", "the allocated amount must be greater than 0")
	} else if f.AllocatedAmount.GreaterThan(MaxAllocatedAmount) {
		v.add("allocatedAmount", fmt.Sprintf("the allocated amount must not exceed %s", MaxAllocatedAmount))
	}

	if f.SpentAmount.GreaterThan(f.AllocatedAmount) {
		v.add("spentAmount", "the spent amount must not exceed the allocated amount")
	}

	if len(v.Fields) > 0 {
		return &v
	}

	return nil
}

// validateRecord holds the rules every stored envelope satisfies.
func validateRecord(v *ValidationError, f Fields) {
	if strings.TrimSpace(f.Title) == "" {
		v.add("title", "the title must not be empty")
	}

	if f.AllocatedAmount.IsNegative() {
		v.add("allocatedAmount", "the allocated amount must not be negative")
	}

	if f.SpentAmount.IsNegative() {
		v.add("spentAmount", "the spent amount must not be negative")
	}
}
