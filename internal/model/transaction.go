package model

import "time"

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Income categories. Unknown values fall back to CategoryOtherIncome
// at the API boundary.
const (
	CategorySalary      = "salary"
	CategoryFreelance   = "freelance"
	CategoryCashback    = "cashback"
	CategoryPix         = "pix"
	CategoryOtherIncome = "other_income"
)

// Expense categories. Unknown values fall back to CategoryOtherExpense.
const (
	CategoryGroceries    = "groceries"
	CategoryTransport    = "transport"
	CategoryHealth       = "health"
	CategoryPets         = "pets"
	CategoryClothing     = "clothing"
	CategoryOtherExpense = "other_expense"
)

var incomeCategories = map[string]struct{}{
	CategorySalary:      {},
	CategoryFreelance:   {},
	CategoryCashback:    {},
	CategoryPix:         {},
	CategoryOtherIncome: {},
}

var expenseCategories = map[string]struct{}{
	CategoryGroceries:    {},
	CategoryTransport:    {},
	CategoryHealth:       {},
	CategoryPets:         {},
	CategoryClothing:     {},
	CategoryOtherExpense: {},
}

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// NormalizeTransactionCategory returns category if it belongs to the
// closed set for the given type, otherwise the type's "other" fallback.
func NormalizeTransactionCategory(txType, category string) string {
	if txType == TypeIncome {
		if _, ok := incomeCategories[category]; ok {
			return category
		}
		return CategoryOtherIncome
	}
	if _, ok := expenseCategories[category]; ok {
		return category
	}
	return CategoryOtherExpense
}

// Transaction is a single dated income or expense entry. AmountCents is
// always positive; the sign in balance math comes from Type.
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
