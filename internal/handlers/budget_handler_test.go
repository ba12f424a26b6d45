package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spendwise-server/internal/dto"
	"spendwise-server/internal/models"
	"spendwise-server/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	echo        *echo.Echo
	mockService *service_mocks.MockBudgetServiceInterface
	handler     *BudgetHandler
	userID      uuid.UUID
}

func TestBudgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerSuite))
}

func (s *BudgetHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.mockService = service_mocks.NewMockBudgetServiceInterface(s.ctrl)
	s.handler = NewBudgetHandler(s.mockService)
	s.userID = uuid.New()
}

func (s *BudgetHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BudgetHandlerSuite) TestGet_Success() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/budget", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	budget := models.DefaultBudget(s.userID)
	budget.ID = uuid.New()
	budget.UpdatedAt = time.Now()

	s.mockService.EXPECT().
		GetBudget(s.userID).
		Return(budget, nil)

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.BudgetResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(decimal.NewFromInt(30000).Equal(response.TotalMonthly))
	s.Len(response.CategoryBudgets, 9)
}

func (s *BudgetHandlerSuite) TestGet_MissingUserContext() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/budget", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_002")
}

func (s *BudgetHandlerSuite) TestGet_ServiceError() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/budget", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		GetBudget(s.userID).
		Return(nil, errors.New("db down"))

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_001")
}

func (s *BudgetHandlerSuite) TestUpdate_Success() {
	body, _ := json.Marshal(map[string]interface{}{
		"total_monthly": 20000,
		"category_budgets": map[string]int{
			"food":      5000,
			"transport": 2000,
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budget", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	updated := &models.Budget{
		ID:           uuid.New(),
		UserID:       s.userID,
		TotalMonthly: decimal.NewFromInt(20000),
		CategoryBudgets: models.CeilingMap{
			"food":      decimal.NewFromInt(5000),
			"transport": decimal.NewFromInt(2000),
		},
		UpdatedAt: time.Now(),
	}

	s.mockService.EXPECT().
		ReplaceBudget(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
			s.True(decimal.NewFromInt(20000).Equal(req.TotalMonthly))
			s.Len(req.CategoryBudgets, 2)
			return updated, nil
		})

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.BudgetResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(decimal.NewFromInt(20000).Equal(response.TotalMonthly))
	s.Len(response.CategoryBudgets, 2)
}

func (s *BudgetHandlerSuite) TestUpdate_NegativeTotal() {
	body, _ := json.Marshal(map[string]interface{}{
		"total_monthly": -100,
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budget", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		ReplaceBudget(s.userID, gomock.Any()).
		Return(nil, models.ErrInvalidBudgetTotal)

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "BUDGET_002")
}

func (s *BudgetHandlerSuite) TestUpdate_NegativeCeiling() {
	body, _ := json.Marshal(map[string]interface{}{
		"total_monthly": 10000,
		"category_budgets": map[string]int{
			"food": -1,
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budget", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		ReplaceBudget(s.userID, gomock.Any()).
		Return(nil, models.ErrInvalidBudgetCeiling)

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "BUDGET_003")
}

func (s *BudgetHandlerSuite) TestUpdate_MalformedBody() {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budget", bytes.NewBufferString("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_001")
}

func (s *BudgetHandlerSuite) TestUpdate_MissingTotalRejectedByValidator() {
	body, _ := json.Marshal(map[string]interface{}{
		"category_budgets": map[string]int{"food": 5000},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budget", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.Error(s.handler.Update(c))
}
