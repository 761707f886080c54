package store

import "golang.org/x/exp/slices"

const (
	CategoryFoodAndDining     = "Food & Dining"
	CategoryTransportation    = "Transportation"
	CategoryShopping          = "Shopping"
	CategoryEntertainment     = "Entertainment"
	CategoryBillsAndUtilities = "Bills & Utilities"
	CategoryHealthcare        = "Healthcare"
	CategoryEducation         = "Education"
	CategoryTravel            = "Travel"
	CategorySavings           = "Savings"
	CategoryOther             = "Other"
)

// KnownCategories is the fixed set of labels users can pick from, in the
// order they are offered.
var KnownCategories = []string{
	CategoryFoodAndDining,
	CategoryTransportation,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBillsAndUtilities,
	CategoryHealthcare,
	CategoryEducation,
	CategoryTravel,
	CategorySavings,
	CategoryOther,
}

// IsKnownCategory reports whether category is one of KnownCategories.
func IsKnownCategory(category string) bool {
	return slices.Contains(KnownCategories, category)
}
