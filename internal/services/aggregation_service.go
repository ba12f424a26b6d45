package services

import (
	"time"

	"spendwise-server/internal/models"

	"github.com/shopspring/decimal"
)

// CurrentMonth formats a point in time as its YYYY-MM bucket key
func CurrentMonth(t time.Time) string {
	return t.Format(models.MonthFormat)
}

// PreviousMonth returns the bucket key of the calendar month before the
// given one. The computation anchors on the first of the month so that
// month arithmetic never rolls over on short months. An unparseable key
// yields "".
func PreviousMonth(month string) string {
	t, err := time.Parse(models.MonthFormat, month)
	if err != nil {
		return ""
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format(models.MonthFormat)
}

// aggregationService implements AggregationServiceInterface
type aggregationService struct{}

// NewAggregationService creates a new aggregation service
func NewAggregationService() AggregationServiceInterface {
	return &aggregationService{}
}

// MonthlySpend sums the amounts of all transactions dated within the
// given YYYY-MM month
func (s *aggregationService) MonthlySpend(transactions []models.Transaction, month string) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		if txn.InMonth(month) {
			total = total.Add(txn.Amount)
		}
	}
	return total
}

// CategorySpend sums the amounts of the month's transactions that
// reference the given category
func (s *aggregationService) CategorySpend(transactions []models.Transaction, categoryID, month string) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		if txn.CategoryID == categoryID && txn.InMonth(month) {
			total = total.Add(txn.Amount)
		}
	}
	return total
}

// SubscriptionTotal sums the amounts of all recurring transactions
// regardless of date
func (s *aggregationService) SubscriptionTotal(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		if txn.IsRecurring {
			total = total.Add(txn.Amount)
		}
	}
	return total
}

// SpendByCategory reduces the month's transactions into per-category totals
func (s *aggregationService) SpendByCategory(transactions []models.Transaction, month string) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, txn := range transactions {
		if !txn.InMonth(month) {
			continue
		}
		totals[txn.CategoryID] = totals[txn.CategoryID].Add(txn.Amount)
	}
	return totals
}
