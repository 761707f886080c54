package store_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(id, title, category string, allocated, spent int64) store.Envelope {
	return store.Envelope{
		ID: id,
		Fields: store.Fields{
			Title:           title,
			Category:        category,
			AllocatedAmount: decimal.NewFromInt(allocated),
			SpentAmount:     decimal.NewFromInt(spent),
		},
	}
}

func ids(envelopes []store.Envelope) []string {
	ids := make([]string, 0, len(envelopes))
	for _, e := range envelopes {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestNewIsEmpty(t *testing.T) {
	s := store.New()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
	assert.False(t, s.Loading())
	assert.Nil(t, s.Err())
}

func TestReplaceAllRoundTrip(t *testing.T) {
	s := store.New()
	records := []store.Envelope{
		envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 1000),
		envelope("b", "Groceries", store.CategoryFoodAndDining, 400, 120),
		envelope("c", "Cinema", store.CategoryEntertainment, 50, 0),
	}

	s.ReplaceAll(records)
	assert.Equal(t, records, s.All())
}

func TestReplaceAllDropsInvalid(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{
		envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0),
		envelope(" ", "Blank ID", store.CategoryOther, 10, 0),
		envelope("b", "  ", store.CategoryOther, 10, 0),
		envelope("c", "Negative allocation", store.CategoryOther, -1, 0),
		envelope("d", "Negative spending", store.CategoryOther, 10, -5),
		envelope("e", "Savings", store.CategorySavings, 200, 0),
	})

	assert.Equal(t, []string{"a", "e"}, ids(s.All()))
}

func TestReplaceAllKeepsFirstOfRepeatedID(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{
		envelope("a", "First", store.CategoryOther, 10, 0),
		envelope("a", "Second", store.CategoryOther, 20, 0),
	})

	require.Equal(t, 1, s.Len())
	e, ok := s.ByID("a")
	require.True(t, ok)
	assert.Equal(t, "First", e.Title)
}

func TestReplaceAllClearsError(t *testing.T) {
	s := store.New()
	require.ErrorIs(t, s.Remove("missing"), store.ErrNotFound)
	require.NotNil(t, s.Err())

	s.ReplaceAll(nil)
	assert.Nil(t, s.Err())
	assert.Equal(t, 0, s.Len())
}

func TestAdd(t *testing.T) {
	s := store.New()
	e := envelope("x", "Groceries", store.CategoryFoodAndDining, 300, 100)

	require.NoError(t, s.Add(e))
	assert.Nil(t, s.Err())
	assert.Equal(t, []store.Envelope{e}, s.All())
}

func TestAddRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		envelope store.Envelope
	}{
		{"Blank title", envelope("x", "", store.CategoryOther, 100, 0)},
		{"Whitespace title", envelope("x", " \t", store.CategoryOther, 100, 0)},
		{"Blank ID", envelope("  ", "Title", store.CategoryOther, 100, 0)},
		{"Negative allocation", envelope("x", "Title", store.CategoryOther, -100, 0)},
		{"Negative spending", envelope("x", "Title", store.CategoryOther, 100, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New()
			s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})
			before := s.All()

			err := s.Add(tt.envelope)
			assert.ErrorIs(t, err, store.ErrInvalidEnvelopeData)
			assert.Equal(t, "Invalid envelope data", s.Err().Error())
			assert.Equal(t, before, s.All())
		})
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := store.New()
	first := envelope("x", "First", store.CategoryOther, 10, 0)
	require.NoError(t, s.Add(first))

	err := s.Add(envelope("x", "Second", store.CategoryOther, 20, 0))
	assert.ErrorIs(t, err, store.ErrDuplicateID)
	assert.Equal(t, "Envelope with this ID already exists", s.Err().Error())
	assert.Equal(t, []store.Envelope{first}, s.All())
}

func TestUpdate(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{
		envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0),
		envelope("b", "Groceries", store.CategoryFoodAndDining, 400, 120),
	})

	updated := envelope("a", "Rent & Parking", store.CategoryBillsAndUtilities, 1100, 1100)
	require.NoError(t, s.Update(updated))

	all := s.All()
	assert.Equal(t, updated, all[0], "Update must replace the record in place")
	assert.Equal(t, "b", all[1].ID)
}

func TestUpdateFailures(t *testing.T) {
	tests := []struct {
		name     string
		envelope store.Envelope
		err      error
	}{
		{"Unknown ID", envelope("missing", "Title", store.CategoryOther, 10, 0), store.ErrNotFound},
		{"Invalid record", envelope("a", "", store.CategoryOther, 10, 0), store.ErrInvalidEnvelopeData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.New()
			s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})
			before := s.All()

			assert.ErrorIs(t, s.Update(tt.envelope), tt.err)
			assert.ErrorIs(t, s.Err(), tt.err)
			assert.Equal(t, before, s.All())
		})
	}
}

func TestUpdatePartialOnlyTouchesGivenFields(t *testing.T) {
	s := store.New()
	original := store.Envelope{
		ID: "e1",
		Fields: store.Fields{
			Title:           "Rent",
			Category:        store.CategoryBillsAndUtilities,
			Description:     "Monthly rent",
			AllocatedAmount: decimal.NewFromInt(1000),
			SpentAmount:     decimal.NewFromInt(0),
		},
	}
	s.ReplaceAll([]store.Envelope{original})

	spent := decimal.NewFromInt(1000)
	require.NoError(t, s.UpdatePartial("e1", store.Patch{SpentAmount: &spent}))

	e, ok := s.ByID("e1")
	require.True(t, ok)

	want := original
	want.SpentAmount = spent
	assert.Equal(t, want, e)
}

func TestUpdatePartialDoesNotValidate(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})

	title := ""
	require.NoError(t, s.UpdatePartial("a", store.Patch{Title: &title}))

	e, _ := s.ByID("a")
	assert.Equal(t, "", e.Title)
}

func TestUpdatePartialUnknownID(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})
	before := s.All()

	title := "New"
	err := s.UpdatePartial("b", store.Patch{Title: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, "Envelope not found", s.Err().Error())
	assert.Equal(t, before, s.All())
}

func TestRemove(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{
		envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0),
		envelope("b", "Groceries", store.CategoryFoodAndDining, 400, 120),
		envelope("c", "Cinema", store.CategoryEntertainment, 50, 0),
	})

	require.NoError(t, s.Remove(" b "))
	assert.Equal(t, []string{"a", "c"}, ids(s.All()))
}

func TestRemoveTwice(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{
		envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0),
		envelope("b", "Groceries", store.CategoryFoodAndDining, 400, 120),
	})

	require.NoError(t, s.Remove("a"))
	after := s.All()

	assert.ErrorIs(t, s.Remove("a"), store.ErrNotFound)
	assert.Equal(t, "Envelope not found", s.Err().Error())
	assert.Equal(t, after, s.All())
}

func TestRemoveBlankID(t *testing.T) {
	for _, id := range []string{"", "   ", "\t\n"} {
		s := store.New()
		s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})

		assert.ErrorIs(t, s.Remove(id), store.ErrInvalidEnvelopeID, "ID %q", id)
		assert.Equal(t, "Invalid envelope ID", s.Err().Error())
		assert.Equal(t, 1, s.Len())
	}
}

func TestSuccessfulMutationClearsError(t *testing.T) {
	s := store.New()
	require.Error(t, s.Remove("missing"))
	require.Error(t, s.Err())

	require.NoError(t, s.Add(envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)))
	assert.Nil(t, s.Err())
}

func TestClear(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})
	s.SetError(errors.New("remote unavailable"))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Err())
}

func TestLoadingAndError(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})

	s.SetLoading(true)
	assert.True(t, s.Loading())
	assert.Equal(t, 1, s.Len())

	err := errors.New("remote unavailable")
	s.SetError(err)
	assert.Equal(t, err, s.Err())

	s.SetLoading(false)
	assert.False(t, s.Loading())
	assert.Equal(t, err, s.Err(), "SetLoading must not touch the error")

	s.SetError(nil)
	assert.Nil(t, s.Err())
}

func TestIDsStayUnique(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{
		envelope("a", "One", store.CategoryOther, 10, 0),
		envelope("b", "Two", store.CategoryOther, 10, 0),
		envelope("a", "Three", store.CategoryOther, 10, 0),
	})
	_ = s.Add(envelope("b", "Four", store.CategoryOther, 10, 0))
	_ = s.Add(envelope("c", "Five", store.CategoryOther, 10, 0))
	_ = s.Update(envelope("c", "Five again", store.CategoryOther, 10, 0))

	seen := map[string]bool{}
	for _, e := range s.All() {
		assert.False(t, seen[e.ID], "ID %s occurs more than once", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestAllReturnsCopy(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})

	all := s.All()
	all[0].Title = "Changed"

	e, _ := s.ByID("a")
	assert.Equal(t, "Rent", e.Title)
}

func TestSnapshot(t *testing.T) {
	s := store.New()
	s.ReplaceAll([]store.Envelope{envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0)})
	s.SetLoading(true)

	snapshot := s.Snapshot()
	assert.Equal(t, s.All(), snapshot.Envelopes)
	assert.True(t, snapshot.Loading)
	assert.Nil(t, snapshot.Error)

	_ = s.Remove("missing")
	snapshot = s.Snapshot()
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "Envelope not found", *snapshot.Error)
}

func TestSubscribe(t *testing.T) {
	s := store.New()

	var changes []store.Change
	unsubscribe := s.Subscribe(func(c store.Change) {
		// Observers run after unlocking and may read
		_ = s.Len()
		changes = append(changes, c)
	})

	s.ReplaceAll(nil)
	_ = s.Add(envelope("a", "Rent", store.CategoryBillsAndUtilities, 1000, 0))
	_ = s.Remove("missing")
	s.SetLoading(true)

	unsubscribe()
	s.Clear()

	require.Len(t, changes, 4)
	assert.Equal(t, store.Change{Op: store.OpReplaceAll}, changes[0])
	assert.Equal(t, store.Change{Op: store.OpAdd, ID: "a"}, changes[1])
	assert.Equal(t, store.OpRemove, changes[2].Op)
	assert.ErrorIs(t, changes[2].Err, store.ErrNotFound)
	assert.Equal(t, store.Change{Op: store.OpLoading}, changes[3])
}

func TestConcurrentAdds(t *testing.T) {
	s := store.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Every ID is added twice, only one of the calls may succeed
			_ = s.Add(envelope(string(rune('A'+i%25)), "Title", store.CategoryOther, 10, 0))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, s.Len())
}
