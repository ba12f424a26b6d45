package services

import (
	"testing"

	"spendwise-server/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// InsightServiceSuite defines the test suite for InsightServiceInterface
type InsightServiceSuite struct {
	suite.Suite
	service    InsightServiceInterface
	testUserID uuid.UUID
	categories []models.Category
	month      string
}

// SetupTest runs before each test in the suite
func (s *InsightServiceSuite) SetupTest() {
	aggregator := NewAggregationService()
	s.service = NewInsightService(aggregator, NewBudgetEvaluator(aggregator))
	s.testUserID = uuid.New()
	s.categories = models.DefaultCategories()
	s.month = "2025-03"
}

// TestInsightServiceSuite runs the test suite
func TestInsightServiceSuite(t *testing.T) {
	suite.Run(t, new(InsightServiceSuite))
}

func (s *InsightServiceSuite) budget(totalMonthly int64) *models.Budget {
	return &models.Budget{
		ID:           uuid.New(),
		UserID:       s.testUserID,
		TotalMonthly: decimal.NewFromInt(totalMonthly),
	}
}

func (s *InsightServiceSuite) transaction(amount int64, date, categoryID string, recurring bool) models.Transaction {
	return models.Transaction{
		ID:            uuid.New(),
		UserID:        s.testUserID,
		Amount:        decimal.NewFromInt(amount),
		Date:          date,
		CategoryID:    categoryID,
		PaymentMethod: models.PaymentMethodUPI,
		IsRecurring:   recurring,
	}
}

func (s *InsightServiceSuite) TestGenerate_EmptyLedger_NoInsights() {
	insights := s.service.Generate(s.budget(0), s.categories, nil, s.month)

	s.NotNil(insights)
	s.Empty(insights)
}

func (s *InsightServiceSuite) TestTopCategory_NamesHighestSpend() {
	transactions := []models.Transaction{
		s.transaction(300, "2025-03-05", "food", false),
		s.transaction(200, "2025-03-10", "transport", false),
	}

	insights := s.service.Generate(s.budget(0), s.categories, transactions, s.month)

	s.Require().Len(insights, 1)
	s.Equal("Food & Dining is your top spend", insights[0].Title)
	s.Equal("You've spent 300 on Food & Dining this month, which is 60% of your total spending.", insights[0].Description)
	s.Equal(models.PolarityDefault, insights[0].Polarity)
}

func (s *InsightServiceSuite) TestTopCategory_TieBreaksOnFirstAppearance() {
	transactions := []models.Transaction{
		s.transaction(250, "2025-03-05", "transport", false),
		s.transaction(250, "2025-03-10", "food", false),
	}

	insights := s.service.Generate(s.budget(0), s.categories, transactions, s.month)

	s.Require().Len(insights, 1)
	s.Equal("Transport is your top spend", insights[0].Title)
}

func (s *InsightServiceSuite) TestTopCategory_OrphanedCategory_FallsBackToUnknown() {
	transactions := []models.Transaction{
		s.transaction(100, "2025-03-05", "deleted-category", false),
	}

	insights := s.service.Generate(s.budget(0), s.categories, transactions, s.month)

	s.Require().Len(insights, 1)
	s.Equal("Unknown is your top spend", insights[0].Title)
}

func (s *InsightServiceSuite) TestSubscription_OverReviewThreshold_Negative() {
	transactions := []models.Transaction{
		s.transaction(350, "2024-12-15", "subscriptions", true),
	}

	insights := s.service.Generate(s.budget(1000), s.categories, transactions, s.month)

	s.Require().Len(insights, 2)
	s.Equal("Subscriptions: 350/month", insights[0].Title)
	s.Equal("That's 35% of your budget going to recurring expenses. Consider reviewing if you still need all of them.", insights[0].Description)
	s.Equal(models.PolarityNegative, insights[0].Polarity)

	s.Equal("1000 left to spend", insights[1].Title)
	s.Equal("You've used 0% of your 1000 monthly budget. Keep it up!", insights[1].Description)
	s.Equal(models.PolarityPositive, insights[1].Polarity)
}

func (s *InsightServiceSuite) TestSubscription_AtReviewThreshold_Positive() {
	transactions := []models.Transaction{
		s.transaction(300, "2024-12-15", "subscriptions", true),
	}

	insights := s.service.Generate(s.budget(1000), s.categories, transactions, s.month)

	s.Require().NotEmpty(insights)
	s.Equal("Subscriptions: 300/month", insights[0].Title)
	s.Equal("Subscriptions take 30% of your monthly budget, which is pretty reasonable!", insights[0].Description)
	s.Equal(models.PolarityPositive, insights[0].Polarity)
}

func (s *InsightServiceSuite) TestSubscription_NoRecurring_Skipped() {
	transactions := []models.Transaction{
		s.transaction(100, "2025-03-05", "food", false),
	}

	insights := s.service.Generate(s.budget(0), s.categories, transactions, s.month)

	for _, insight := range insights {
		s.NotContains(insight.Title, "Subscriptions:")
	}
}

func (s *InsightServiceSuite) TestMonthOverMonth_SpendingUp() {
	transactions := []models.Transaction{
		s.transaction(400, "2025-02-10", "food", false),
		s.transaction(500, "2025-03-10", "food", false),
	}

	insights := s.service.Generate(s.budget(0), s.categories, transactions, s.month)

	s.Require().Len(insights, 2)
	s.Equal("Spending is up 25%", insights[1].Title)
	s.Equal("You've spent 100 more than last month. Keep an eye on your budget!", insights[1].Description)
	s.Equal(models.PolarityNegative, insights[1].Polarity)
}

func (s *InsightServiceSuite) TestMonthOverMonth_SpendingDown() {
	transactions := []models.Transaction{
		s.transaction(400, "2025-02-10", "food", false),
		s.transaction(300, "2025-03-10", "food", false),
	}

	insights := s.service.Generate(s.budget(0), s.categories, transactions, s.month)

	s.Require().Len(insights, 2)
	s.Equal("Spending is down 25%", insights[1].Title)
	s.Equal("Great job! You've spent 100 less compared to last month.", insights[1].Description)
	s.Equal(models.PolarityPositive, insights[1].Polarity)
}

func (s *InsightServiceSuite) TestMonthOverMonth_NoPriorSpend_Skipped() {
	transactions := []models.Transaction{
		s.transaction(500, "2025-03-10", "food", false),
	}

	insights := s.service.Generate(s.budget(0), s.categories, transactions, s.month)

	s.Require().Len(insights, 1)
	s.NotContains(insights[0].Title, "Spending is")
}

func (s *InsightServiceSuite) TestBudgetUsage_HighUsage_Neutral() {
	transactions := []models.Transaction{
		s.transaction(850, "2025-03-10", "food", false),
	}

	insights := s.service.Generate(s.budget(1000), s.categories, transactions, s.month)

	s.Require().Len(insights, 2)
	s.Equal("150 left to spend", insights[1].Title)
	s.Equal("You've used 85% of your 1000 monthly budget. Time to slow down!", insights[1].Description)
	s.Equal(models.PolarityNeutral, insights[1].Polarity)
}

func (s *InsightServiceSuite) TestBudgetUsage_AtWarningBoundary_Positive() {
	transactions := []models.Transaction{
		s.transaction(800, "2025-03-10", "food", false),
	}

	insights := s.service.Generate(s.budget(1000), s.categories, transactions, s.month)

	s.Require().Len(insights, 2)
	s.Equal("200 left to spend", insights[1].Title)
	s.Equal("You've used 80% of your 1000 monthly budget. Keep it up!", insights[1].Description)
	s.Equal(models.PolarityPositive, insights[1].Polarity)
}

func (s *InsightServiceSuite) TestBudgetUsage_OverBudget_Negative() {
	transactions := []models.Transaction{
		s.transaction(1200, "2025-03-10", "food", false),
	}

	insights := s.service.Generate(s.budget(1000), s.categories, transactions, s.month)

	s.Require().Len(insights, 2)
	s.Equal("Over budget by 200", insights[1].Title)
	s.Equal("You've exceeded your monthly budget. Consider cutting back on non-essential spending.", insights[1].Description)
	s.Equal(models.PolarityNegative, insights[1].Polarity)
}

func (s *InsightServiceSuite) TestBudgetUsage_ExactlyAtCeiling_ReadsAsOver() {
	transactions := []models.Transaction{
		s.transaction(1000, "2025-03-10", "food", false),
	}

	insights := s.service.Generate(s.budget(1000), s.categories, transactions, s.month)

	s.Require().Len(insights, 2)
	s.Equal("Over budget by 0", insights[1].Title)
}

func (s *InsightServiceSuite) TestGenerate_FullLedger_FixedOrder() {
	transactions := []models.Transaction{
		s.transaction(300, "2025-03-05", "food", false),
		s.transaction(350, "2025-03-02", "subscriptions", true),
		s.transaction(400, "2025-02-10", "food", false),
	}

	insights := s.service.Generate(s.budget(1000), s.categories, transactions, s.month)

	s.Require().Len(insights, 4)
	s.Equal("Subscriptions is your top spend", insights[0].Title)
	s.Equal("Subscriptions: 350/month", insights[1].Title)
	s.Equal("Spending is up 63%", insights[2].Title)
	s.Equal("350 left to spend", insights[3].Title)
}
