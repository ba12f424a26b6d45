package services

import (
	"fmt"

	"spendwise-server/internal/models"

	"github.com/shopspring/decimal"
)

// SubscriptionReviewPercent is the subscription share of the monthly
// ceiling above which the subscription insight turns negative
var SubscriptionReviewPercent = decimal.NewFromInt(30)

// insightService implements InsightServiceInterface
type insightService struct {
	aggregator AggregationServiceInterface
	evaluator  BudgetEvaluatorInterface
}

// NewInsightService creates a new insight generator
func NewInsightService(aggregator AggregationServiceInterface, evaluator BudgetEvaluatorInterface) InsightServiceInterface {
	return &insightService{
		aggregator: aggregator,
		evaluator:  evaluator,
	}
}

// Generate runs the insight rules in a fixed order: top category,
// subscription share, month-over-month, budget remaining. Each rule
// appends at most one insight; skipped rules append nothing, so the
// result list stays deterministic for a given snapshot.
func (s *insightService) Generate(budget *models.Budget, categories []models.Category, transactions []models.Transaction, month string) []models.Insight {
	insights := []models.Insight{}

	monthlySpend := s.aggregator.MonthlySpend(transactions, month)

	if insight, ok := s.topCategoryInsight(categories, transactions, month, monthlySpend); ok {
		insights = append(insights, insight)
	}
	if insight, ok := s.subscriptionInsight(budget, transactions); ok {
		insights = append(insights, insight)
	}
	if insight, ok := s.monthOverMonthInsight(transactions, month, monthlySpend); ok {
		insights = append(insights, insight)
	}
	if insight, ok := s.budgetUsageInsight(budget, monthlySpend); ok {
		insights = append(insights, insight)
	}

	return insights
}

// topCategoryInsight names the category with the highest spend this
// month. Skipped when the month has no spend. Ties break on whichever
// category appears first in the ledger, which keeps the pick stable.
func (s *insightService) topCategoryInsight(categories []models.Category, transactions []models.Transaction, month string, monthlySpend decimal.Decimal) (models.Insight, bool) {
	if !monthlySpend.IsPositive() {
		return models.Insight{}, false
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, txn := range transactions {
		if !txn.InMonth(month) {
			continue
		}
		if _, seen := totals[txn.CategoryID]; !seen {
			order = append(order, txn.CategoryID)
		}
		totals[txn.CategoryID] = totals[txn.CategoryID].Add(txn.Amount)
	}

	if len(order) == 0 {
		return models.Insight{}, false
	}

	topID := order[0]
	for _, id := range order[1:] {
		if totals[id].GreaterThan(totals[topID]) {
			topID = id
		}
	}

	name := models.CategoryNameByID(categories, topID)
	share := totals[topID].Div(monthlySpend).Mul(hundred)

	return models.Insight{
		Title: fmt.Sprintf("%s is your top spend", name),
		Description: fmt.Sprintf("You've spent %s on %s this month, which is %s%% of your total spending.",
			formatAmount(totals[topID]), name, formatPercent(share)),
		Polarity: models.PolarityDefault,
	}, true
}

// subscriptionInsight reports the recurring share of the monthly ceiling.
// Skipped when there are no recurring commitments or no ceiling to
// compare against.
func (s *insightService) subscriptionInsight(budget *models.Budget, transactions []models.Transaction) (models.Insight, bool) {
	subscriptionTotal := s.aggregator.SubscriptionTotal(transactions)
	if !subscriptionTotal.IsPositive() || !budget.TotalMonthly.IsPositive() {
		return models.Insight{}, false
	}

	share := subscriptionTotal.Div(budget.TotalMonthly).Mul(hundred)
	insight := models.Insight{
		Title: fmt.Sprintf("Subscriptions: %s/month", formatAmount(subscriptionTotal)),
	}

	if share.GreaterThan(SubscriptionReviewPercent) {
		insight.Description = fmt.Sprintf("That's %s%% of your budget going to recurring expenses. Consider reviewing if you still need all of them.",
			formatPercent(share))
		insight.Polarity = models.PolarityNegative
	} else {
		insight.Description = fmt.Sprintf("Subscriptions take %s%% of your monthly budget, which is pretty reasonable!",
			formatPercent(share))
		insight.Polarity = models.PolarityPositive
	}

	return insight, true
}

// monthOverMonthInsight compares this month's spend to the previous
// calendar month. Skipped when the previous month has no spend, which
// also avoids a zero divisor on the change percentage.
func (s *insightService) monthOverMonthInsight(transactions []models.Transaction, month string, monthlySpend decimal.Decimal) (models.Insight, bool) {
	previous := PreviousMonth(month)
	if previous == "" {
		return models.Insight{}, false
	}

	previousSpend := s.aggregator.MonthlySpend(transactions, previous)
	if !previousSpend.IsPositive() {
		return models.Insight{}, false
	}

	change := monthlySpend.Sub(previousSpend)
	changePercent := change.Div(previousSpend).Mul(hundred)

	if change.IsPositive() {
		return models.Insight{
			Title: fmt.Sprintf("Spending is up %s%%", formatPercent(changePercent)),
			Description: fmt.Sprintf("You've spent %s more than last month. Keep an eye on your budget!",
				formatAmount(change)),
			Polarity: models.PolarityNegative,
		}, true
	}

	return models.Insight{
		Title: fmt.Sprintf("Spending is down %s%%", formatPercent(changePercent.Abs())),
		Description: fmt.Sprintf("Great job! You've spent %s less compared to last month.",
			formatAmount(change.Abs())),
		Polarity: models.PolarityPositive,
	}, true
}

// budgetUsageInsight reports how much of the monthly ceiling is left.
// Skipped when no ceiling is set.
func (s *insightService) budgetUsageInsight(budget *models.Budget, monthlySpend decimal.Decimal) (models.Insight, bool) {
	if !budget.TotalMonthly.IsPositive() {
		return models.Insight{}, false
	}

	remaining := budget.TotalMonthly.Sub(monthlySpend)
	usagePercent := monthlySpend.Div(budget.TotalMonthly).Mul(hundred)

	if !remaining.IsPositive() {
		return models.Insight{
			Title:       fmt.Sprintf("Over budget by %s", formatAmount(remaining.Abs())),
			Description: "You've exceeded your monthly budget. Consider cutting back on non-essential spending.",
			Polarity:    models.PolarityNegative,
		}, true
	}

	insight := models.Insight{
		Title: fmt.Sprintf("%s left to spend", formatAmount(remaining)),
	}
	if usagePercent.GreaterThan(decimal.NewFromInt(BudgetWarningPercent)) {
		insight.Description = fmt.Sprintf("You've used %s%% of your %s monthly budget. Time to slow down!",
			formatPercent(usagePercent), formatAmount(budget.TotalMonthly))
		insight.Polarity = models.PolarityNeutral
	} else {
		insight.Description = fmt.Sprintf("You've used %s%% of your %s monthly budget. Keep it up!",
			formatPercent(usagePercent), formatAmount(budget.TotalMonthly))
		insight.Polarity = models.PolarityPositive
	}

	return insight, true
}
