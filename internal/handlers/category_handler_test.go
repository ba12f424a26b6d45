package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"spendwise-server/internal/dto"
	"spendwise-server/internal/models"
	"spendwise-server/internal/repositories"
	"spendwise-server/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type CategoryHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	echo        *echo.Echo
	mockService *service_mocks.MockCategoryServiceInterface
	handler     *CategoryHandler
	userID      uuid.UUID
}

func TestCategoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlerSuite))
}

func (s *CategoryHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.mockService = service_mocks.NewMockCategoryServiceInterface(s.ctrl)
	s.handler = NewCategoryHandler(s.mockService)
	s.userID = uuid.New()
}

func (s *CategoryHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CategoryHandlerSuite) TestList_Success() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	categories := append(models.DefaultCategories(), models.Category{
		ID:     uuid.New().String(),
		UserID: s.userID.String(),
		Name:   "Pets",
		Color:  "category-other",
		Icon:   "PawPrint",
	})

	s.mockService.EXPECT().
		ListCategories(s.userID).
		Return(categories, nil)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusOK, rec.Code)

	var response []dto.CategoryResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response, 10)
	s.True(response[0].IsDefault)
	s.Equal("Pets", response[9].Name)
}

func (s *CategoryHandlerSuite) TestList_MissingUserContext() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "AUTH_002")
}

func (s *CategoryHandlerSuite) TestList_ServiceError() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		ListCategories(s.userID).
		Return(nil, errors.New("db down"))

	s.NoError(s.handler.List(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_001")
}

func (s *CategoryHandlerSuite) TestCreate_Success() {
	name := gofakeit.ProductCategory()
	body, _ := json.Marshal(map[string]string{
		"name":  name,
		"color": "category-other",
		"icon":  "Sparkles",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	created := &models.Category{
		ID:     uuid.New().String(),
		UserID: s.userID.String(),
		Name:   name,
		Color:  "category-other",
		Icon:   "Sparkles",
	}

	s.mockService.EXPECT().
		CreateCategory(s.userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
			s.Equal(name, req.Name)
			return created, nil
		})

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response SuccessResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.NotNil(response.Data)
	s.Equal("Category created", response.Message)
}

func (s *CategoryHandlerSuite) TestCreate_MissingNameRejectedByValidator() {
	body, _ := json.Marshal(map[string]string{
		"color": "category-other",
		"icon":  "Sparkles",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.Error(s.handler.Create(c))
}

func (s *CategoryHandlerSuite) TestCreate_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewBufferString("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)

	s.NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_001")
}

func (s *CategoryHandlerSuite) TestDelete_Success() {
	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+id, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/categories/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		DeleteCategory(s.userID, id).
		Return(nil)

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *CategoryHandlerSuite) TestDelete_BuiltInProtected() {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/food", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/categories/:id")
	c.SetParamNames("id")
	c.SetParamValues("food")
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		DeleteCategory(s.userID, "food").
		Return(models.ErrDefaultCategory)

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusForbidden, rec.Code)
	s.Contains(rec.Body.String(), "CATEGORY_002")
}

func (s *CategoryHandlerSuite) TestDelete_NotFound() {
	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+id, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/categories/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set("user_id", s.userID)

	s.mockService.EXPECT().
		DeleteCategory(s.userID, id).
		Return(repositories.ErrCategoryNotFound)

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "CATEGORY_001")
}

func (s *CategoryHandlerSuite) TestDelete_MissingID() {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/categories/:id")
	c.Set("user_id", s.userID)

	s.NoError(s.handler.Delete(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "CATEGORY_003")
}
