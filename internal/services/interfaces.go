package services

import (
	"time"

	"spendwise-server/internal/dto"
	"spendwise-server/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregationServiceInterface provides pure reductions over a transaction
// snapshot. All methods are deterministic, side-effect-free and total:
// empty input yields zero, malformed rows are excluded rather than failing.
type AggregationServiceInterface interface {
	// MonthlySpend sums amounts over transactions in the YYYY-MM bucket
	MonthlySpend(transactions []models.Transaction, month string) decimal.Decimal

	// CategorySpend sums amounts over transactions in the bucket that
	// reference the given category
	CategorySpend(transactions []models.Transaction, categoryID, month string) decimal.Decimal

	// SubscriptionTotal sums amounts over all recurring transactions,
	// across all time. It estimates the recurring monthly burden, so
	// each commitment should be recorded at most once.
	SubscriptionTotal(transactions []models.Transaction) decimal.Decimal

	// SpendByCategory breaks down a month's spend per referenced category
	SpendByCategory(transactions []models.Transaction, month string) map[string]decimal.Decimal
}

// BudgetEvaluatorInterface translates spend plus ceilings into progress states
type BudgetEvaluatorInterface interface {
	// RemainingBudget returns the overall ceiling minus the month's spend.
	// The result may be negative; no clamping is applied.
	RemainingBudget(budget *models.Budget, monthlySpend decimal.Decimal) decimal.Decimal

	// Status derives the display status for one spent/ceiling pair
	Status(spent, total decimal.Decimal) models.BudgetStatus

	// Overview combines the overall status with per-category statuses
	// for a month. Unbudgeted categories are excluded.
	Overview(budget *models.Budget, categories []models.Category, transactions []models.Transaction, month string) *models.BudgetOverview
}

// AffordabilityQuery describes a prospective purchase to evaluate.
// Amount must be positive; the API layer rejects anything else before
// the advisor runs.
type AffordabilityQuery struct {
	Amount      decimal.Decimal
	CategoryID  string
	IsRecurring bool
}

// AffordabilityServiceInterface is the decision procedure for
// "can I afford this purchase"
type AffordabilityServiceInterface interface {
	Check(budget *models.Budget, categories []models.Category, transactions []models.Transaction, query AffordabilityQuery, month string) *models.AffordabilityVerdict
}

// InsightServiceInterface produces the ordered observation list for a month
type InsightServiceInterface interface {
	Generate(budget *models.Budget, categories []models.Category, transactions []models.Transaction, month string) []models.Insight
}

// SpendingServiceInterface orchestrates the analytics engines over a
// per-request snapshot fetched from the stores. An empty month resolves
// to the current calendar month from the service's injected clock.
type SpendingServiceInterface interface {
	MonthlyTotal(userID uuid.UUID, month string) (decimal.Decimal, string, error)
	CategorySpend(userID uuid.UUID, categoryID, month string) (decimal.Decimal, string, error)
	BudgetOverview(userID uuid.UUID, month string) (*models.BudgetOverview, error)
	CheckAffordability(userID uuid.UUID, query AffordabilityQuery) (*models.AffordabilityVerdict, error)
	Insights(userID uuid.UUID, month string) ([]models.Insight, error)
}

// TransactionServiceInterface defines transaction CRUD operations
type TransactionServiceInterface interface {
	ListTransactions(userID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	GetTransaction(id, userID uuid.UUID) (*models.Transaction, error)
	CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	UpdateTransaction(id, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(id, userID uuid.UUID) error
}

// CategoryServiceInterface defines category management operations
type CategoryServiceInterface interface {
	ListCategories(userID uuid.UUID) ([]models.Category, error)
	CreateCategory(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error)
	DeleteCategory(userID uuid.UUID, categoryID string) error
}

// BudgetServiceInterface defines budget access and replacement.
// A missing budget record is materialized with defaults on first access.
type BudgetServiceInterface interface {
	GetBudget(userID uuid.UUID) (*models.Budget, error)
	ReplaceBudget(userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error)
}

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.AccessClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
