package services

import (
	"spendwise-server/internal/models"

	"github.com/shopspring/decimal"
)

// BudgetWarningPercent is the utilization percentage at which a budget
// status flips from ok to warning. Policy constant, not a law of nature.
const BudgetWarningPercent = 80

var hundred = decimal.NewFromInt(100)

// budgetEvaluator implements BudgetEvaluatorInterface
type budgetEvaluator struct {
	aggregator AggregationServiceInterface
}

// NewBudgetEvaluator creates a new budget evaluator
func NewBudgetEvaluator(aggregator AggregationServiceInterface) BudgetEvaluatorInterface {
	return &budgetEvaluator{
		aggregator: aggregator,
	}
}

// RemainingBudget subtracts the month's spend from the overall ceiling.
// A negative result means the user is over budget; no clamping here.
func (s *budgetEvaluator) RemainingBudget(budget *models.Budget, monthlySpend decimal.Decimal) decimal.Decimal {
	return budget.TotalMonthly.Sub(monthlySpend)
}

// Status derives the display status for one spent/ceiling pair.
// A zero ceiling means the category is unbudgeted, which reads as
// {0%, ok} regardless of spend. Overage stays recoverable from
// Spent minus Total since the percentage is clamped at 100.
func (s *budgetEvaluator) Status(spent, total decimal.Decimal) models.BudgetStatus {
	status := models.BudgetStatus{
		Spent: spent,
		Total: total,
		State: models.BudgetStateOK,
	}

	if !total.IsPositive() {
		return status
	}

	percentage := spent.Div(total).Mul(hundred)
	if percentage.GreaterThan(hundred) {
		percentage = hundred
	}
	status.Percentage, _ = percentage.Float64()

	switch {
	case spent.GreaterThan(total):
		status.State = models.BudgetStateOver
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(BudgetWarningPercent)):
		status.State = models.BudgetStateWarning
	}

	return status
}

// Overview computes the overall status plus one status per budgeted
// category for the given month. Categories without a positive ceiling
// are excluded.
func (s *budgetEvaluator) Overview(budget *models.Budget, categories []models.Category, transactions []models.Transaction, month string) *models.BudgetOverview {
	overview := &models.BudgetOverview{
		Month:      month,
		Overall:    s.Status(s.aggregator.MonthlySpend(transactions, month), budget.TotalMonthly),
		Categories: []models.CategoryBudgetStatus{},
	}

	for _, category := range categories {
		ceiling := budget.CeilingFor(category.ID)
		if !ceiling.IsPositive() {
			continue
		}
		spent := s.aggregator.CategorySpend(transactions, category.ID, month)
		overview.Categories = append(overview.Categories, models.CategoryBudgetStatus{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Status:       s.Status(spent, ceiling),
		})
	}

	return overview
}
