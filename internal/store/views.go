package store

import (
	"sort"
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// TotalAllocated is the sum of all allocated amounts.
func (s *Store) TotalAllocated() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, e := range s.envelopes {
		total = total.Add(e.AllocatedAmount)
	}
	return total
}

// TotalSpent is the sum of all spent amounts.
func (s *Store) TotalSpent() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, e := range s.envelopes {
		total = total.Add(e.SpentAmount)
	}
	return total
}

// Categories returns every category in use, each once, in the order they
// first appear in the store.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := []string{}
	seen := map[string]struct{}{}
	for _, e := range s.envelopes {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	return categories
}

// ByID returns the envelope with the id.
func (s *Store) ByID(id string) (Envelope, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i != -1 {
		return s.envelopes[i], true
	}
	return Envelope{}, false
}

// ByCategory returns the envelopes with exactly this category.
func (s *Store) ByCategory(category string) []Envelope {
	return s.filter(inCategory(category))
}

// Search returns the envelopes whose title or category contains term,
// ignoring case. An empty term matches everything.
func (s *Store) Search(term string) []Envelope {
	return s.filter(contains(term))
}

// Match returns the envelopes whose title matches the glob pattern.
// "*" is the only wildcard.
func (s *Store) Match(pattern string) []Envelope {
	return s.filter(matches(pattern))
}

// Query combines the filters of ByCategory, Search and Match. Nil filters
// are not applied.
type Query struct {
	Category *string
	Search   *string
	Title    *string
}

// Find returns the envelopes matching all filters of q in store order.
func (s *Store) Find(q Query) []Envelope {
	var predicates []func(Envelope) bool
	if q.Category != nil {
		predicates = append(predicates, inCategory(*q.Category))
	}
	if q.Search != nil {
		predicates = append(predicates, contains(*q.Search))
	}
	if q.Title != nil {
		predicates = append(predicates, matches(*q.Title))
	}

	return s.filter(func(e Envelope) bool {
		for _, keep := range predicates {
			if !keep(e) {
				return false
			}
		}
		return true
	})
}

func inCategory(category string) func(Envelope) bool {
	return func(e Envelope) bool {
		return e.Category == category
	}
}

func contains(term string) func(Envelope) bool {
	term = strings.ToLower(strings.TrimSpace(term))

	return func(e Envelope) bool {
		return strings.Contains(strings.ToLower(e.Title), term) || strings.Contains(strings.ToLower(e.Category), term)
	}
}

func matches(pattern string) func(Envelope) bool {
	return func(e Envelope) bool {
		return glob.Glob(pattern, e.Title)
	}
}

func (s *Store) filter(keep func(Envelope) bool) []Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()

	envelopes := []Envelope{}
	for _, e := range s.envelopes {
		if keep(e) {
			envelopes = append(envelopes, e)
		}
	}
	return envelopes
}

// CategorySummary aggregates the envelopes of one category.
type CategorySummary struct {
	Category  string          `json:"category" example:"Food & Dining"`
	Count     int             `json:"count" example:"3"`
	Allocated decimal.Decimal `json:"allocated" example:"600"`
	Spent     decimal.Decimal `json:"spent" example:"245.5"`
}

// Summary is the budget overview over all envelopes.
type Summary struct {
	TotalAllocated decimal.Decimal   `json:"totalAllocated" example:"1500"`
	TotalSpent     decimal.Decimal   `json:"totalSpent" example:"820.25"`
	Remaining      decimal.Decimal   `json:"remaining" example:"679.75"` // Allocated minus spent, negative when overspent
	Categories     []CategorySummary `json:"categories"`                  // Sorted by category label
}

// Summary computes totals and the per category breakdown in one pass.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := Summary{
		TotalAllocated: decimal.Zero,
		TotalSpent:     decimal.Zero,
		Categories:     []CategorySummary{},
	}

	index := map[string]int{}
	for _, e := range s.envelopes {
		summary.TotalAllocated = summary.TotalAllocated.Add(e.AllocatedAmount)
		summary.TotalSpent = summary.TotalSpent.Add(e.SpentAmount)

		i, ok := index[e.Category]
		if !ok {
			i = len(summary.Categories)
			index[e.Category] = i
			summary.Categories = append(summary.Categories, CategorySummary{
				Category:  e.Category,
				Allocated: decimal.Zero,
				Spent:     decimal.Zero,
			})
		}

		c := &summary.Categories[i]
		c.Count++
		c.Allocated = c.Allocated.Add(e.AllocatedAmount)
		c.Spent = c.Spent.Add(e.SpentAmount)
	}

	summary.Remaining = summary.TotalAllocated.Sub(summary.TotalSpent)
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	return summary
}
