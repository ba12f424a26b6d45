package services

import (
	"errors"
	"fmt"
	"log/slog"

	"spendwise-server/internal/dto"
	"spendwise-server/internal/models"
	"spendwise-server/internal/repositories"

	"github.com/google/uuid"
)

// budgetService implements BudgetServiceInterface
type budgetService struct {
	budgetRepo repositories.BudgetRepositoryInterface
	metrics    MetricsRecorderInterface
}

// NewBudgetService creates a new budget service
func NewBudgetService(budgetRepo repositories.BudgetRepositoryInterface, metrics MetricsRecorderInterface) BudgetServiceInterface {
	return &budgetService{
		budgetRepo: budgetRepo,
		metrics:    metrics,
	}
}

// GetBudget returns the user's budget, materializing the default one on
// first access so every caller sees a concrete record
func (s *budgetService) GetBudget(userID uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByUserID(userID)
	if err == nil {
		return budget, nil
	}
	if !errors.Is(err, repositories.ErrBudgetNotFound) {
		slog.Error("failed to get budget",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	budget = models.DefaultBudget(userID)
	if err := s.budgetRepo.Create(budget); err != nil {
		slog.Error("failed to create default budget",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to create default budget: %w", err)
	}

	slog.Info("default budget created",
		"user_id", userID,
		"total_monthly", budget.TotalMonthly.String())

	return budget, nil
}

// ReplaceBudget overwrites the user's budget document with the given
// ceilings, last write wins
func (s *budgetService) ReplaceBudget(userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	if req.TotalMonthly.IsNegative() {
		return nil, models.ErrInvalidBudgetTotal
	}
	for _, ceiling := range req.CategoryBudgets {
		if ceiling.IsNegative() {
			return nil, models.ErrInvalidBudgetCeiling
		}
	}

	budget, err := s.GetBudget(userID)
	if err != nil {
		return nil, err
	}

	budget.TotalMonthly = req.TotalMonthly
	budget.CategoryBudgets = models.CeilingMap(req.CategoryBudgets)
	if budget.CategoryBudgets == nil {
		budget.CategoryBudgets = models.CeilingMap{}
	}

	if err := s.budgetRepo.Replace(budget); err != nil {
		slog.Error("failed to replace budget",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to replace budget: %w", err)
	}

	s.metrics.IncrementCounter("budget_updates_total", nil)

	slog.Info("budget replaced",
		"user_id", userID,
		"total_monthly", budget.TotalMonthly.String(),
		"category_count", len(budget.CategoryBudgets))

	return budget, nil
}
