package repositories

import (
	"errors"
	"fmt"

	"spendwise-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

// budgetRepository implements BudgetRepositoryInterface
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{
		db: db,
	}
}

// GetByUserID retrieves a user's budget record
func (r *budgetRepository) GetByUserID(userID uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("user_id = ?", userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// Create creates a budget record
func (r *budgetRepository) Create(budget *models.Budget) error {
	if err := r.db.Create(budget).Error; err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// Replace overwrites a user's budget with the given ceilings.
// Last write wins; there is no optimistic concurrency control.
func (r *budgetRepository) Replace(budget *models.Budget) error {
	result := r.db.Model(&models.Budget{}).
		Where("user_id = ?", budget.UserID).
		Select("total_monthly", "category_budgets", "updated_at").
		Updates(budget)

	if result.Error != nil {
		return fmt.Errorf("failed to replace budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
