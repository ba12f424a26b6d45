package repositories

import (
	"spendwise-server/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines persistence operations for transactions.
// Every query is scoped to an owner; there is no cross-user access path.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id, userID uuid.UUID) (*models.Transaction, error)
	GetByUserID(userID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	GetAllByUserID(userID uuid.UUID) ([]models.Transaction, error)
	GetByMonth(userID uuid.UUID, month string) ([]models.Transaction, error)
	GetRecurring(userID uuid.UUID) ([]models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id, userID uuid.UUID) error
}

// CategoryRepositoryInterface defines persistence operations for categories
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetForUser(userID uuid.UUID) ([]models.Category, error)
	Delete(id string, userID uuid.UUID) error
	SeedDefaults() error
}

// BudgetRepositoryInterface defines persistence operations for budgets
type BudgetRepositoryInterface interface {
	GetByUserID(userID uuid.UUID) (*models.Budget, error)
	Create(budget *models.Budget) error
	Replace(budget *models.Budget) error
}

// UserRepositoryInterface defines persistence operations for users
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}
