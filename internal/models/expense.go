package models

import "time"

// Expense categories accepted by the expense replace endpoint.
const (
	ExpenseCategoryTransport     = "transport"
	ExpenseCategoryAccommodation = "accommodation"
	ExpenseCategoryFood          = "food"
	ExpenseCategoryActivities    = "activities"
	ExpenseCategoryShopping      = "shopping"
	ExpenseCategoryOther         = "other"
)

// ExpenseCategories lists every valid category.
var ExpenseCategories = []string{
	ExpenseCategoryTransport,
	ExpenseCategoryAccommodation,
	ExpenseCategoryFood,
	ExpenseCategoryActivities,
	ExpenseCategoryShopping,
	ExpenseCategoryOther,
}

// IsValidExpenseCategory reports whether category is one of the known set.
func IsValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Expense belongs to a trip. Expenses are unordered; they are only
// categorized and summed.
type Expense struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TripID    uint      `gorm:"not null;index" json:"trip_id"`
	Category  string    `gorm:"not null" json:"category"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
