package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spendwise-server/internal/dto"
	"spendwise-server/internal/models"
	"spendwise-server/internal/repositories"
	"spendwise-server/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	echo        *echo.Echo
	mockService *service_mocks.MockTransactionServiceInterface
	handler     *TransactionHandler
	userID      uuid.UUID
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.mockService = service_mocks.NewMockTransactionServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.mockService)
	s.userID = uuid.New()
}

func (s *TransactionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionHandlerSuite) newTransaction() *models.Transaction {
	now := time.Now()
	return &models.Transaction{
		ID:            uuid.New(),
		UserID:        s.userID,
		Amount:        decimal.NewFromInt(250),
		Date:          "2025-03-12",
		CategoryID:    "food",
		PaymentMethod: models.PaymentMethodCard,
		Notes:         gofakeit.Sentence(3),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *TransactionHandlerSuite) TestList_Success() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?offset=10&limit=5", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	c.QueryParams().Add("offset", "10")
	c.QueryParams().Add("limit", "5")

	transactions := []models.Transaction{*s.newTransaction(), *s.newTransaction()}

	s.mockService.EXPECT().
		ListTransactions(s.userID, 10, 5).
		Return(transactions, int64(42), nil)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TransactionListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Transactions, 2)
	s.Equal(int64(42), response.Total)
	s.Equal(10, response.Offset)
	s.Equal(5, response.Limit)
}

func (s *TransactionHandlerSuite) TestList_DefaultPaging() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		ListTransactions(s.userID, 0, 50).
		Return([]models.Transaction{}, int64(0), nil)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *TransactionHandlerSuite) TestList_MissingUserContext() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_002")
}

func (s *TransactionHandlerSuite) TestList_ServiceError() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		ListTransactions(s.userID, 0, 50).
		Return(nil, int64(0), errors.New("db down"))

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_001")
}

func (s *TransactionHandlerSuite) TestGet_Success() {
	transaction := s.newTransaction()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/transactions/%s", transaction.ID), nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(transaction.ID.String())
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		GetTransaction(transaction.ID, s.userID).
		Return(transaction, nil)

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TransactionResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(transaction.ID.String(), response.ID)
	s.Equal("food", response.CategoryID)
}

func (s *TransactionHandlerSuite) TestGet_InvalidID() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	c.Set("user_id", s.userID)

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_003")
}

func (s *TransactionHandlerSuite) TestGet_NotFound() {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/transactions/%s", id), nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		GetTransaction(id, s.userID).
		Return(nil, repositories.ErrTransactionNotFound)

	s.NoError(s.handler.Get(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_001")
}

func (s *TransactionHandlerSuite) TestCreate_Success() {
	body, _ := json.Marshal(map[string]interface{}{
		"amount":         250,
		"date":           "2025-03-12",
		"category_id":    "food",
		"payment_method": "card",
		"notes":          "weekly groceries",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	created := s.newTransaction()

	s.mockService.EXPECT().
		CreateTransaction(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
			s.True(decimal.NewFromInt(250).Equal(req.Amount))
			s.Equal("2025-03-12", req.Date)
			s.Equal("food", req.CategoryID)
			s.Equal("card", req.PaymentMethod)
			return created, nil
		})

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response SuccessResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.NotNil(response.Data)
	s.Equal("Transaction recorded", response.Message)
}

func (s *TransactionHandlerSuite) TestCreate_ValidationFailure() {
	// payment_method fails the oneof constraint
	body, _ := json.Marshal(map[string]interface{}{
		"amount":         250,
		"date":           "2025-03-12",
		"category_id":    "food",
		"payment_method": "cheque",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.Error(s.handler.Create(c))
}

func (s *TransactionHandlerSuite) TestCreate_InvalidAmountFromService() {
	body, _ := json.Marshal(map[string]interface{}{
		"amount":         -5,
		"date":           "2025-03-12",
		"category_id":    "food",
		"payment_method": "cash",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		CreateTransaction(s.userID, gomock.Any()).
		Return(nil, models.ErrInvalidAmount)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_002")
}

func (s *TransactionHandlerSuite) TestCreate_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBufferString("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_001")
}

func (s *TransactionHandlerSuite) TestUpdate_Success() {
	transaction := s.newTransaction()
	newAmount := decimal.NewFromInt(175)
	body, _ := json.Marshal(map[string]interface{}{
		"amount": 175,
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/transactions/%s", transaction.ID), bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(transaction.ID.String())
	c.Set("user_id", s.userID)

	transaction.Amount = newAmount

	s.mockService.EXPECT().
		UpdateTransaction(transaction.ID, s.userID, gomock.Any()).
		DoAndReturn(func(_, _ uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
			s.Require().NotNil(req.Amount)
			s.True(newAmount.Equal(*req.Amount))
			s.Nil(req.Date)
			s.Nil(req.CategoryID)
			return transaction, nil
		})

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TransactionResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(newAmount.Equal(response.Amount))
}

func (s *TransactionHandlerSuite) TestUpdate_NotFound() {
	id := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{"amount": 175})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/transactions/%s", id), bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		UpdateTransaction(id, s.userID, gomock.Any()).
		Return(nil, repositories.ErrTransactionNotFound)

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_001")
}

func (s *TransactionHandlerSuite) TestUpdate_MissingCategoryFromService() {
	id := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{"category_id": ""})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/transactions/%s", id), bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		UpdateTransaction(id, s.userID, gomock.Any()).
		Return(nil, models.ErrMissingCategory)

	s.NoError(s.handler.Update(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_004")
}

func (s *TransactionHandlerSuite) TestDelete_Success() {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%s", id), nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		DeleteTransaction(id, s.userID).
		Return(nil)

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *TransactionHandlerSuite) TestDelete_InvalidID() {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/garbage", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues("garbage")
	c.Set("user_id", s.userID)

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_003")
}

func (s *TransactionHandlerSuite) TestDelete_NotFound() {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/transactions/%s", id), nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		DeleteTransaction(id, s.userID).
		Return(repositories.ErrTransactionNotFound)

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_001")
}
