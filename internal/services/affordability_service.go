package services

import (
	"fmt"

	"spendwise-server/internal/models"

	"github.com/shopspring/decimal"
)

// Advisor policy thresholds. These are product-tuned values carried as
// named constants so the rule code reads as policy, not magic numbers.
var (
	// RemainingBudgetCautionRatio flags purchases consuming more than
	// this share of the remaining overall budget
	RemainingBudgetCautionRatio = decimal.NewFromFloat(0.5)

	// CategoryBudgetCautionRatio flags purchases consuming more than
	// this share of the remaining category budget
	CategoryBudgetCautionRatio = decimal.NewFromFloat(0.8)

	// SubscriptionLoadWarningPercent flags recurring purchases that push
	// the subscription total past this share of the monthly ceiling
	SubscriptionLoadWarningPercent = decimal.NewFromInt(40)
)

// Closing messages, picked from the final decision plus severity
const (
	affordMessageYes     = "Yes, you can afford this!"
	affordMessageCareful = "You can afford it, but be careful"
	affordMessageNo      = "This might not be the best idea right now"
)

// affordabilityService implements AffordabilityServiceInterface
type affordabilityService struct {
	aggregator AggregationServiceInterface
	evaluator  BudgetEvaluatorInterface
}

// NewAffordabilityService creates a new affordability advisor
func NewAffordabilityService(aggregator AggregationServiceInterface, evaluator BudgetEvaluatorInterface) AffordabilityServiceInterface {
	return &affordabilityService{
		aggregator: aggregator,
		evaluator:  evaluator,
	}
}

// Check runs the ordered rule set for a prospective purchase: overall
// budget, then category ceiling, then recurring load. Each rule may
// escalate the verdict's severity but never lowers it, and CanAfford
// stays false once any rule clears it. Reasons accumulate in rule order.
//
// Amount must be positive; the caller validates before invoking.
func (s *affordabilityService) Check(budget *models.Budget, categories []models.Category, transactions []models.Transaction, query AffordabilityQuery, month string) *models.AffordabilityVerdict {
	verdict := &models.AffordabilityVerdict{
		CanAfford: true,
		Severity:  models.SeveritySuccess,
		Reasons:   []string{},
	}

	remaining := s.evaluator.RemainingBudget(budget, s.aggregator.MonthlySpend(transactions, month))
	s.applyOverallBudgetRule(verdict, query.Amount, remaining)

	if query.CategoryID != "" {
		s.applyCategoryBudgetRule(verdict, budget, categories, transactions, query, month)
	}

	if query.IsRecurring {
		s.applyRecurringRule(verdict, budget, transactions, query.Amount)
	}

	switch {
	case verdict.CanAfford && verdict.Severity == models.SeveritySuccess:
		verdict.Message = affordMessageYes
	case verdict.CanAfford:
		verdict.Message = affordMessageCareful
	default:
		verdict.Message = affordMessageNo
	}

	return verdict
}

// applyOverallBudgetRule compares the amount against the remaining
// overall budget. A non-positive remaining budget makes any positive
// amount unaffordable, which falls out of the first comparison.
func (s *affordabilityService) applyOverallBudgetRule(verdict *models.AffordabilityVerdict, amount, remaining decimal.Decimal) {
	switch {
	case amount.GreaterThan(remaining):
		verdict.CanAfford = false
		verdict.Escalate(models.SeverityError)
		verdict.Reasons = append(verdict.Reasons,
			fmt.Sprintf("This exceeds your remaining budget by %s", formatAmount(amount.Sub(remaining))))
	case amount.GreaterThan(remaining.Mul(RemainingBudgetCautionRatio)):
		verdict.Escalate(models.SeverityWarning)
		share := amount.Div(remaining).Mul(hundred)
		verdict.Reasons = append(verdict.Reasons,
			fmt.Sprintf("This would use %s%% of your remaining budget", formatPercent(share)))
	default:
		verdict.Reasons = append(verdict.Reasons,
			fmt.Sprintf("You'll still have %s left in your budget", formatAmount(remaining.Sub(amount))))
	}
}

// applyCategoryBudgetRule compares the amount against the remaining
// ceiling of the tagged category. Unbudgeted categories are skipped.
func (s *affordabilityService) applyCategoryBudgetRule(verdict *models.AffordabilityVerdict, budget *models.Budget, categories []models.Category, transactions []models.Transaction, query AffordabilityQuery, month string) {
	ceiling := budget.CeilingFor(query.CategoryID)
	if !ceiling.IsPositive() {
		return
	}

	categoryName := models.CategoryNameByID(categories, query.CategoryID)
	categoryRemaining := ceiling.Sub(s.aggregator.CategorySpend(transactions, query.CategoryID, month))

	switch {
	case query.Amount.GreaterThan(categoryRemaining):
		verdict.CanAfford = false
		verdict.Escalate(models.SeverityError)
		verdict.Reasons = append(verdict.Reasons,
			fmt.Sprintf("This exceeds your %s budget by %s", categoryName, formatAmount(query.Amount.Sub(categoryRemaining))))
	case query.Amount.GreaterThan(categoryRemaining.Mul(CategoryBudgetCautionRatio)):
		verdict.Escalate(models.SeverityWarning)
		verdict.Reasons = append(verdict.Reasons,
			fmt.Sprintf("This uses most of your remaining %s budget", categoryName))
	}
}

// applyRecurringRule projects the purchase onto the subscription total.
// The percentage check is skipped when the monthly ceiling is zero since
// there is no budget to take a share of; the informational reason is
// appended either way.
func (s *affordabilityService) applyRecurringRule(verdict *models.AffordabilityVerdict, budget *models.Budget, transactions []models.Transaction, amount decimal.Decimal) {
	newSubscriptionTotal := s.aggregator.SubscriptionTotal(transactions).Add(amount)

	if budget.TotalMonthly.IsPositive() {
		subscriptionShare := newSubscriptionTotal.Div(budget.TotalMonthly).Mul(hundred)
		if subscriptionShare.GreaterThan(SubscriptionLoadWarningPercent) {
			verdict.Escalate(models.SeverityWarning)
			verdict.Reasons = append(verdict.Reasons,
				fmt.Sprintf("Your subscriptions would be %s%% of your monthly budget", formatPercent(subscriptionShare)))
		}
	}

	verdict.Reasons = append(verdict.Reasons,
		fmt.Sprintf("This adds %s to your monthly commitments", formatAmount(amount)))
}

// formatAmount renders a money amount rounded to whole units for
// embedding in reason and insight strings
func formatAmount(amount decimal.Decimal) string {
	return amount.Round(0).String()
}

// formatPercent renders a percentage rounded to whole points
func formatPercent(percent decimal.Decimal) string {
	return percent.Round(0).String()
}
