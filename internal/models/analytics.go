package models

import "github.com/shopspring/decimal"

// Budget progress states
const (
	BudgetStateOK      = "ok"
	BudgetStateWarning = "warning"
	BudgetStateOver    = "over"
)

// Affordability verdict severities, ordered success < warning < error.
// Rules may only escalate severity, never lower it.
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Insight polarities
const (
	PolarityPositive = "positive"
	PolarityNegative = "negative"
	PolarityNeutral  = "neutral"
	PolarityDefault  = "default"
)

// BudgetStatus describes progress against a single ceiling. Percentage is
// clamped to 100 for display; the real overage stays recoverable from
// Spent minus Total.
type BudgetStatus struct {
	Spent      decimal.Decimal `json:"spent"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"`
	State      string          `json:"state"`
}

// CategoryBudgetStatus pairs a category with its budget progress
type CategoryBudgetStatus struct {
	CategoryID   string       `json:"category_id"`
	CategoryName string       `json:"category_name"`
	Status       BudgetStatus `json:"status"`
}

// BudgetOverview combines the overall status with per-category statuses
// for a given month. Unbudgeted categories are excluded.
type BudgetOverview struct {
	Month      string                 `json:"month"`
	Overall    BudgetStatus           `json:"overall"`
	Categories []CategoryBudgetStatus `json:"categories"`
}

// AffordabilityVerdict is the advisor's structured recommendation for a
// prospective purchase. Reasons preserve rule evaluation order.
type AffordabilityVerdict struct {
	CanAfford bool     `json:"can_afford"`
	Severity  string   `json:"severity"`
	Message   string   `json:"message"`
	Reasons   []string `json:"reasons"`
}

// Escalate raises the verdict's severity, never lowering it
func (v *AffordabilityVerdict) Escalate(severity string) {
	if severityRank(severity) > severityRank(v.Severity) {
		v.Severity = severity
	}
}

func severityRank(severity string) int {
	switch severity {
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	default:
		return 0
	}
}

// Insight is a single ranked observation about a user's spending
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Polarity    string `json:"polarity"`
}

// CategorySpend is the spend total for one category within a month window
type CategorySpend struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
}
