package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spendwise-server/internal/models"
	"spendwise-server/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMonth       = errors.New("month must be in YYYY-MM format")
	ErrCategoryIDRequired = errors.New("category id is required")
)

// spendingService orchestrates the pure analytics engines over a
// per-request snapshot from the repositories. The clock is injected so
// "current month" is deterministic under test.
type spendingService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	budgetService   BudgetServiceInterface
	aggregator      AggregationServiceInterface
	evaluator       BudgetEvaluatorInterface
	advisor         AffordabilityServiceInterface
	insights        InsightServiceInterface
	metrics         MetricsRecorderInterface
	now             func() time.Time
}

// NewSpendingService creates a new spending analytics service. A nil
// clock falls back to time.Now.
func NewSpendingService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	budgetService BudgetServiceInterface,
	aggregator AggregationServiceInterface,
	evaluator BudgetEvaluatorInterface,
	advisor AffordabilityServiceInterface,
	insights InsightServiceInterface,
	metrics MetricsRecorderInterface,
	now func() time.Time,
) SpendingServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &spendingService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		budgetService:   budgetService,
		aggregator:      aggregator,
		evaluator:       evaluator,
		advisor:         advisor,
		insights:        insights,
		metrics:         metrics,
		now:             now,
	}
}

// resolveMonth validates an explicit YYYY-MM month or falls back to the
// current calendar month from the injected clock
func (s *spendingService) resolveMonth(month string) (string, error) {
	if month == "" {
		return CurrentMonth(s.now()), nil
	}
	if _, err := time.Parse(models.MonthFormat, month); err != nil {
		return "", ErrInvalidMonth
	}
	return month, nil
}

// MonthlyTotal returns the total spend for the resolved month
func (s *spendingService) MonthlyTotal(userID uuid.UUID, month string) (decimal.Decimal, string, error) {
	resolved, err := s.resolveMonth(month)
	if err != nil {
		return decimal.Zero, "", err
	}

	transactions, err := s.transactionRepo.GetByMonth(userID, resolved)
	if err != nil {
		slog.Error("failed to load transactions for monthly total",
			"user_id", userID,
			"month", resolved,
			"error", err)
		return decimal.Zero, "", fmt.Errorf("failed to load transactions: %w", err)
	}

	total := s.aggregator.MonthlySpend(transactions, resolved)
	s.metrics.IncrementCounter("analytics_requests_total", map[string]string{"operation": "monthly_total"})

	return total, resolved, nil
}

// CategorySpend returns the spend for one category in the resolved month
func (s *spendingService) CategorySpend(userID uuid.UUID, categoryID, month string) (decimal.Decimal, string, error) {
	if categoryID == "" {
		return decimal.Zero, "", ErrCategoryIDRequired
	}

	resolved, err := s.resolveMonth(month)
	if err != nil {
		return decimal.Zero, "", err
	}

	transactions, err := s.transactionRepo.GetByMonth(userID, resolved)
	if err != nil {
		slog.Error("failed to load transactions for category spend",
			"user_id", userID,
			"category_id", categoryID,
			"month", resolved,
			"error", err)
		return decimal.Zero, "", fmt.Errorf("failed to load transactions: %w", err)
	}

	amount := s.aggregator.CategorySpend(transactions, categoryID, resolved)
	s.metrics.IncrementCounter("analytics_requests_total", map[string]string{"operation": "category_spend"})

	return amount, resolved, nil
}

// BudgetOverview returns the overall and per-category budget statuses
// for the resolved month
func (s *spendingService) BudgetOverview(userID uuid.UUID, month string) (*models.BudgetOverview, error) {
	resolved, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}

	budget, categories, err := s.loadBudgetAndCategories(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByMonth(userID, resolved)
	if err != nil {
		slog.Error("failed to load transactions for budget overview",
			"user_id", userID,
			"month", resolved,
			"error", err)
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	overview := s.evaluator.Overview(budget, categories, transactions, resolved)
	s.metrics.IncrementCounter("analytics_requests_total", map[string]string{"operation": "budget_status"})

	slog.Info("budget overview generated",
		"user_id", userID,
		"month", resolved,
		"state", overview.Overall.State,
		"category_count", len(overview.Categories))

	return overview, nil
}

// CheckAffordability runs the advisor for a prospective purchase against
// the current month. The full ledger is loaded since the recurring rule
// looks across all time.
func (s *spendingService) CheckAffordability(userID uuid.UUID, query AffordabilityQuery) (*models.AffordabilityVerdict, error) {
	if !query.Amount.IsPositive() {
		return nil, models.ErrInvalidAmount
	}

	budget, categories, err := s.loadBudgetAndCategories(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetAllByUserID(userID)
	if err != nil {
		slog.Error("failed to load ledger for affordability check",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	month := CurrentMonth(s.now())
	verdict := s.advisor.Check(budget, categories, transactions, query, month)

	s.metrics.IncrementCounter("affordability_checks_total", map[string]string{"severity": verdict.Severity})

	slog.Info("affordability check completed",
		"user_id", userID,
		"amount", query.Amount.String(),
		"can_afford", verdict.CanAfford,
		"severity", verdict.Severity)

	return verdict, nil
}

// Insights returns the ordered observation list for the resolved month.
// The full ledger is loaded since the rules look at the previous month
// and at all-time recurring commitments.
func (s *spendingService) Insights(userID uuid.UUID, month string) ([]models.Insight, error) {
	resolved, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}

	budget, categories, err := s.loadBudgetAndCategories(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetAllByUserID(userID)
	if err != nil {
		slog.Error("failed to load ledger for insights",
			"user_id", userID,
			"month", resolved,
			"error", err)
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	insights := s.insights.Generate(budget, categories, transactions, resolved)
	s.metrics.IncrementCounter("insights_generated_total", nil)

	return insights, nil
}

// loadBudgetAndCategories fetches the engine's reference data. The
// budget service materializes defaults for first-time users, so the
// engines always see a concrete budget.
func (s *spendingService) loadBudgetAndCategories(userID uuid.UUID) (*models.Budget, []models.Category, error) {
	budget, err := s.budgetService.GetBudget(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load budget: %w", err)
	}

	categories, err := s.categoryRepo.GetForUser(userID)
	if err != nil {
		slog.Error("failed to load categories",
			"user_id", userID,
			"error", err)
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return budget, categories, nil
}
