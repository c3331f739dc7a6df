package model

import "time"

// Fixed-account (recurring bill) categories. Unknown values fall back
// to CategoryOtherBill.
const (
	CategoryRent        = "rent"
	CategoryCondo       = "condo"
	CategoryWater       = "water"
	CategoryElectricity = "electricity"
	CategoryInternet    = "internet"
	CategoryStreaming   = "streaming"
	CategoryGym         = "gym"
	CategoryPhone       = "phone"
	CategoryCard        = "card"
	CategoryOtherBill   = "other"
)

var billCategories = map[string]struct{}{
	CategoryRent:        {},
	CategoryCondo:       {},
	CategoryWater:       {},
	CategoryElectricity: {},
	CategoryInternet:    {},
	CategoryStreaming:   {},
	CategoryGym:         {},
	CategoryPhone:       {},
	CategoryCard:        {},
	CategoryOtherBill:   {},
}

// NormalizeBillCategory returns category if it belongs to the closed
// bill-category set, otherwise CategoryOtherBill.
func NormalizeBillCategory(category string) string {
	if _, ok := billCategories[category]; ok {
		return category
	}
	return CategoryOtherBill
}

// FixedAccount is a recurring monthly bill tracked by due-day-of-month.
// DueDay is in [1, 31] and is deliberately not validated against month
// length; months shorter than DueDay roll over per calendar arithmetic.
type FixedAccount struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	DueDay      int       `json:"due_day"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
