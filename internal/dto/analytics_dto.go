package dto

import (
	"github.com/shopspring/decimal"
)

// AffordabilityRequest describes a prospective purchase. Amount must be
// positive; the service rejects anything else.
type AffordabilityRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	CategoryID  string          `json:"category_id"`
	IsRecurring bool            `json:"is_recurring"`
}

// MonthlyTotalResponse is the monthly spend total for one month window
type MonthlyTotalResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// CategorySpendResponse is the spend for one category in a month window
type CategorySpendResponse struct {
	Month      string          `json:"month"`
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}
