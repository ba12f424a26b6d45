package services

import (
	"errors"
	"testing"
	"time"

	"spendwise-server/internal/models"
	"spendwise-server/internal/repositories"
	"spendwise-server/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// metricsStub records counter increments without a Prometheus registry.
// The real recorder registers collectors globally, which does not play
// well with per-test setup.
type metricsStub struct {
	counters map[string]int
}

func newMetricsStub() *metricsStub {
	return &metricsStub{counters: make(map[string]int)}
}

func (m *metricsStub) IncrementCounter(name string, tags map[string]string) {
	m.counters[name]++
}

func (m *metricsStub) RecordProcessingTime(name string, duration time.Duration) {}

func (m *metricsStub) RecordGauge(name string, value float64, tags map[string]string) {}

// SpendingServiceSuite defines the test suite for SpendingServiceInterface
type SpendingServiceSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	categoryRepo    *repository_mocks.MockCategoryRepositoryInterface
	budgetRepo      *repository_mocks.MockBudgetRepositoryInterface
	metrics         *metricsStub
	service         SpendingServiceInterface
	testUserID      uuid.UUID
	fixedNow        time.Time
}

// SetupTest runs before each test in the suite
func (s *SpendingServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.budgetRepo = repository_mocks.NewMockBudgetRepositoryInterface(s.ctrl)
	s.metrics = newMetricsStub()
	s.testUserID = uuid.New()
	s.fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	aggregator := NewAggregationService()
	evaluator := NewBudgetEvaluator(aggregator)
	budgetService := NewBudgetService(s.budgetRepo, s.metrics)

	s.service = NewSpendingService(
		s.transactionRepo,
		s.categoryRepo,
		budgetService,
		aggregator,
		evaluator,
		NewAffordabilityService(aggregator, evaluator),
		NewInsightService(aggregator, evaluator),
		s.metrics,
		func() time.Time { return s.fixedNow },
	)
}

// TearDownTest runs after each test in the suite
func (s *SpendingServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestSpendingServiceSuite runs the test suite
func TestSpendingServiceSuite(t *testing.T) {
	suite.Run(t, new(SpendingServiceSuite))
}

func (s *SpendingServiceSuite) transaction(amount int64, date, categoryID string, recurring bool) models.Transaction {
	return models.Transaction{
		ID:            uuid.New(),
		UserID:        s.testUserID,
		Amount:        decimal.NewFromInt(amount),
		Date:          date,
		CategoryID:    categoryID,
		PaymentMethod: models.PaymentMethodCard,
		IsRecurring:   recurring,
	}
}

func (s *SpendingServiceSuite) budget(totalMonthly int64, ceilings models.CeilingMap) *models.Budget {
	return &models.Budget{
		ID:              uuid.New(),
		UserID:          s.testUserID,
		TotalMonthly:    decimal.NewFromInt(totalMonthly),
		CategoryBudgets: ceilings,
	}
}

func (s *SpendingServiceSuite) TestMonthlyTotal_EmptyMonth_ResolvesToCurrentMonth() {
	transactions := []models.Transaction{
		s.transaction(120, "2025-03-01", "food", false),
		s.transaction(80, "2025-03-20", "transport", false),
	}
	s.transactionRepo.EXPECT().GetByMonth(s.testUserID, "2025-03").Return(transactions, nil)

	total, resolved, err := s.service.MonthlyTotal(s.testUserID, "")
	s.NoError(err)
	s.Equal("2025-03", resolved)
	s.True(decimal.NewFromInt(200).Equal(total))
	s.Equal(1, s.metrics.counters["analytics_requests_total"])
}

func (s *SpendingServiceSuite) TestMonthlyTotal_ExplicitMonth() {
	s.transactionRepo.EXPECT().GetByMonth(s.testUserID, "2025-01").Return([]models.Transaction{}, nil)

	total, resolved, err := s.service.MonthlyTotal(s.testUserID, "2025-01")
	s.NoError(err)
	s.Equal("2025-01", resolved)
	s.True(total.IsZero())
}

func (s *SpendingServiceSuite) TestMonthlyTotal_InvalidMonth() {
	_, _, err := s.service.MonthlyTotal(s.testUserID, "March 2025")
	s.ErrorIs(err, ErrInvalidMonth)
}

func (s *SpendingServiceSuite) TestMonthlyTotal_RepositoryError() {
	s.transactionRepo.EXPECT().GetByMonth(s.testUserID, "2025-03").Return(nil, errors.New("connection reset"))

	_, _, err := s.service.MonthlyTotal(s.testUserID, "2025-03")
	s.Error(err)
	s.Contains(err.Error(), "failed to load transactions")
}

func (s *SpendingServiceSuite) TestCategorySpend_RequiresCategoryID() {
	_, _, err := s.service.CategorySpend(s.testUserID, "", "2025-03")
	s.ErrorIs(err, ErrCategoryIDRequired)
}

func (s *SpendingServiceSuite) TestCategorySpend_FiltersByCategory() {
	transactions := []models.Transaction{
		s.transaction(100, "2025-03-01", "food", false),
		s.transaction(40, "2025-03-02", "transport", false),
	}
	s.transactionRepo.EXPECT().GetByMonth(s.testUserID, "2025-03").Return(transactions, nil)

	amount, resolved, err := s.service.CategorySpend(s.testUserID, "food", "")
	s.NoError(err)
	s.Equal("2025-03", resolved)
	s.True(decimal.NewFromInt(100).Equal(amount))
}

func (s *SpendingServiceSuite) TestBudgetOverview_Success() {
	budget := s.budget(1000, models.CeilingMap{"food": decimal.NewFromInt(400)})
	s.budgetRepo.EXPECT().GetByUserID(s.testUserID).Return(budget, nil)
	s.categoryRepo.EXPECT().GetForUser(s.testUserID).Return(models.DefaultCategories(), nil)
	s.transactionRepo.EXPECT().GetByMonth(s.testUserID, "2025-03").Return([]models.Transaction{
		s.transaction(300, "2025-03-05", "food", false),
	}, nil)

	overview, err := s.service.BudgetOverview(s.testUserID, "")
	s.NoError(err)
	s.Equal("2025-03", overview.Month)
	s.True(decimal.NewFromInt(300).Equal(overview.Overall.Spent))
	s.Require().Len(overview.Categories, 1)
	s.Equal("food", overview.Categories[0].CategoryID)
}

func (s *SpendingServiceSuite) TestBudgetOverview_MaterializesDefaultBudget() {
	s.budgetRepo.EXPECT().GetByUserID(s.testUserID).Return(nil, repositories.ErrBudgetNotFound)
	s.budgetRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.categoryRepo.EXPECT().GetForUser(s.testUserID).Return(models.DefaultCategories(), nil)
	s.transactionRepo.EXPECT().GetByMonth(s.testUserID, "2025-03").Return([]models.Transaction{}, nil)

	overview, err := s.service.BudgetOverview(s.testUserID, "")
	s.NoError(err)
	s.True(decimal.NewFromInt(30000).Equal(overview.Overall.Total))
	s.NotEmpty(overview.Categories)
}

func (s *SpendingServiceSuite) TestCheckAffordability_RejectsNonPositiveAmount() {
	_, err := s.service.CheckAffordability(s.testUserID, AffordabilityQuery{Amount: decimal.Zero})
	s.ErrorIs(err, models.ErrInvalidAmount)

	_, err = s.service.CheckAffordability(s.testUserID, AffordabilityQuery{Amount: decimal.NewFromInt(-5)})
	s.ErrorIs(err, models.ErrInvalidAmount)
}

func (s *SpendingServiceSuite) TestCheckAffordability_UsesCurrentMonthFromClock() {
	budget := s.budget(2000, nil)
	s.budgetRepo.EXPECT().GetByUserID(s.testUserID).Return(budget, nil)
	s.categoryRepo.EXPECT().GetForUser(s.testUserID).Return(models.DefaultCategories(), nil)
	s.transactionRepo.EXPECT().GetAllByUserID(s.testUserID).Return([]models.Transaction{
		s.transaction(1000, "2025-03-05", "food", false),
		s.transaction(5000, "2025-02-05", "food", false),
	}, nil)

	verdict, err := s.service.CheckAffordability(s.testUserID, AffordabilityQuery{Amount: decimal.NewFromInt(400)})
	s.NoError(err)
	s.True(verdict.CanAfford)
	s.Equal(models.SeveritySuccess, verdict.Severity)
	s.Equal([]string{"You'll still have 600 left in your budget"}, verdict.Reasons)
	s.Equal(1, s.metrics.counters["affordability_checks_total"])
}

func (s *SpendingServiceSuite) TestCheckAffordability_LedgerLoadFailure() {
	budget := s.budget(2000, nil)
	s.budgetRepo.EXPECT().GetByUserID(s.testUserID).Return(budget, nil)
	s.categoryRepo.EXPECT().GetForUser(s.testUserID).Return(models.DefaultCategories(), nil)
	s.transactionRepo.EXPECT().GetAllByUserID(s.testUserID).Return(nil, errors.New("timeout"))

	_, err := s.service.CheckAffordability(s.testUserID, AffordabilityQuery{Amount: decimal.NewFromInt(400)})
	s.Error(err)
	s.Contains(err.Error(), "failed to load transactions")
}

func (s *SpendingServiceSuite) TestInsights_InvalidMonth() {
	_, err := s.service.Insights(s.testUserID, "2025/03")
	s.ErrorIs(err, ErrInvalidMonth)
}

func (s *SpendingServiceSuite) TestInsights_Success() {
	budget := s.budget(1000, nil)
	s.budgetRepo.EXPECT().GetByUserID(s.testUserID).Return(budget, nil)
	s.categoryRepo.EXPECT().GetForUser(s.testUserID).Return(models.DefaultCategories(), nil)
	s.transactionRepo.EXPECT().GetAllByUserID(s.testUserID).Return([]models.Transaction{
		s.transaction(300, "2025-03-05", "food", false),
	}, nil)

	insights, err := s.service.Insights(s.testUserID, "")
	s.NoError(err)
	s.Require().Len(insights, 2)
	s.Equal("Food & Dining is your top spend", insights[0].Title)
	s.Equal("700 left to spend", insights[1].Title)
	s.Equal(1, s.metrics.counters["insights_generated_total"])
}

func (s *SpendingServiceSuite) TestInsights_CategoryLoadFailure() {
	budget := s.budget(1000, nil)
	s.budgetRepo.EXPECT().GetByUserID(s.testUserID).Return(budget, nil)
	s.categoryRepo.EXPECT().GetForUser(s.testUserID).Return(nil, errors.New("boom"))

	_, err := s.service.Insights(s.testUserID, "2025-03")
	s.Error(err)
	s.Contains(err.Error(), "failed to load categories")
}
