package handlers

import (
	"errors"
	"net/http"

	"spendwise-server/internal/dto"
	apierrors "spendwise-server/internal/errors"
	"spendwise-server/internal/models"
	"spendwise-server/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget endpoints
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// Get returns the user's budget, creating the default one on first access
func (h *BudgetHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	budget, err := h.budgetService.GetBudget(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewBudgetResponse(budget))
}

// Update replaces the user's budget document
func (h *BudgetHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.ReplaceBudget(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidBudgetTotal):
			return SendError(c, apierrors.BudgetInvalidTotal)
		case errors.Is(err, models.ErrInvalidBudgetCeiling):
			return SendError(c, apierrors.BudgetInvalidCeiling)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewBudgetResponse(budget))
}
