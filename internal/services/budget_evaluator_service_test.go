package services

import (
	"testing"

	"spendwise-server/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// BudgetEvaluatorSuite defines the test suite for BudgetEvaluatorInterface
type BudgetEvaluatorSuite struct {
	suite.Suite
	evaluator  BudgetEvaluatorInterface
	testUserID uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *BudgetEvaluatorSuite) SetupTest() {
	s.evaluator = NewBudgetEvaluator(NewAggregationService())
	s.testUserID = uuid.New()
}

// TestBudgetEvaluatorSuite runs the test suite
func TestBudgetEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(BudgetEvaluatorSuite))
}

func (s *BudgetEvaluatorSuite) budget(totalMonthly int64, ceilings models.CeilingMap) *models.Budget {
	return &models.Budget{
		ID:              uuid.New(),
		UserID:          s.testUserID,
		TotalMonthly:    decimal.NewFromInt(totalMonthly),
		CategoryBudgets: ceilings,
	}
}

func (s *BudgetEvaluatorSuite) TestRemainingBudget_Subtracts() {
	budget := s.budget(2000, nil)
	remaining := s.evaluator.RemainingBudget(budget, decimal.NewFromInt(1500))
	s.True(decimal.NewFromInt(500).Equal(remaining))
}

func (s *BudgetEvaluatorSuite) TestRemainingBudget_MayGoNegative() {
	budget := s.budget(1000, nil)
	remaining := s.evaluator.RemainingBudget(budget, decimal.NewFromInt(1400))
	s.True(decimal.NewFromInt(-400).Equal(remaining))
}

func (s *BudgetEvaluatorSuite) TestStatus_ZeroTotal_ReadsAsOK() {
	status := s.evaluator.Status(decimal.NewFromInt(750), decimal.Zero)

	s.Equal(models.BudgetStateOK, status.State)
	s.Equal(float64(0), status.Percentage)
	s.True(decimal.NewFromInt(750).Equal(status.Spent))
}

func (s *BudgetEvaluatorSuite) TestStatus_BelowWarningThreshold() {
	status := s.evaluator.Status(decimal.NewFromInt(79), decimal.NewFromInt(100))

	s.Equal(models.BudgetStateOK, status.State)
	s.Equal(float64(79), status.Percentage)
}

func (s *BudgetEvaluatorSuite) TestStatus_AtWarningThreshold() {
	status := s.evaluator.Status(decimal.NewFromInt(80), decimal.NewFromInt(100))

	s.Equal(models.BudgetStateWarning, status.State)
	s.Equal(float64(80), status.Percentage)
}

func (s *BudgetEvaluatorSuite) TestStatus_AtCeiling_IsWarningNotOver() {
	status := s.evaluator.Status(decimal.NewFromInt(100), decimal.NewFromInt(100))

	s.Equal(models.BudgetStateWarning, status.State)
	s.Equal(float64(100), status.Percentage)
}

func (s *BudgetEvaluatorSuite) TestStatus_OverCeiling_ClampsPercentage() {
	status := s.evaluator.Status(decimal.NewFromInt(130), decimal.NewFromInt(100))

	s.Equal(models.BudgetStateOver, status.State)
	s.Equal(float64(100), status.Percentage)
	s.True(decimal.NewFromInt(130).Equal(status.Spent))
	s.True(decimal.NewFromInt(100).Equal(status.Total))
}

func (s *BudgetEvaluatorSuite) TestOverview_ExcludesUnbudgetedCategories() {
	budget := s.budget(1000, models.CeilingMap{
		"food": decimal.NewFromInt(400),
	})
	categories := []models.Category{
		{ID: "food", Name: "Food & Dining"},
		{ID: "transport", Name: "Transport"},
	}
	transactions := []models.Transaction{
		{UserID: s.testUserID, Amount: decimal.NewFromInt(100), Date: "2025-03-05", CategoryID: "food", PaymentMethod: models.PaymentMethodCash},
		{UserID: s.testUserID, Amount: decimal.NewFromInt(50), Date: "2025-03-06", CategoryID: "transport", PaymentMethod: models.PaymentMethodCash},
	}

	overview := s.evaluator.Overview(budget, categories, transactions, "2025-03")

	s.Equal("2025-03", overview.Month)
	s.True(decimal.NewFromInt(150).Equal(overview.Overall.Spent))
	s.Equal(models.BudgetStateOK, overview.Overall.State)
	s.Require().Len(overview.Categories, 1)
	s.Equal("food", overview.Categories[0].CategoryID)
	s.Equal("Food & Dining", overview.Categories[0].CategoryName)
	s.True(decimal.NewFromInt(100).Equal(overview.Categories[0].Status.Spent))
}

func (s *BudgetEvaluatorSuite) TestOverview_NoBudgetedCategories_ReturnsEmptyList() {
	budget := s.budget(1000, nil)
	categories := []models.Category{{ID: "food", Name: "Food & Dining"}}

	overview := s.evaluator.Overview(budget, categories, nil, "2025-03")

	s.NotNil(overview.Categories)
	s.Empty(overview.Categories)
}

func (s *BudgetEvaluatorSuite) TestOverview_CategoryOverCeiling() {
	budget := s.budget(1000, models.CeilingMap{
		"food": decimal.NewFromInt(100),
	})
	categories := []models.Category{{ID: "food", Name: "Food & Dining"}}
	transactions := []models.Transaction{
		{UserID: s.testUserID, Amount: decimal.NewFromInt(160), Date: "2025-03-08", CategoryID: "food", PaymentMethod: models.PaymentMethodUPI},
	}

	overview := s.evaluator.Overview(budget, categories, transactions, "2025-03")

	s.Require().Len(overview.Categories, 1)
	s.Equal(models.BudgetStateOver, overview.Categories[0].Status.State)
	s.Equal(float64(100), overview.Categories[0].Status.Percentage)
}
