package handlers

import (
	"errors"
	"net/http"
	"time"

	"spendwise-server/internal/dto"
	apierrors "spendwise-server/internal/errors"
	"spendwise-server/internal/models"
	"spendwise-server/internal/services"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler exposes the derived spending analytics
type AnalyticsHandler struct {
	spendingService services.SpendingServiceInterface
	metrics         services.MetricsRecorderInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(spendingService services.SpendingServiceInterface, metrics services.MetricsRecorderInterface) *AnalyticsHandler {
	return &AnalyticsHandler{
		spendingService: spendingService,
		metrics:         metrics,
	}
}

// MonthlyTotal returns the total spend for a month, defaulting to the
// current one
func (h *AnalyticsHandler) MonthlyTotal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	start := time.Now()
	total, month, err := h.spendingService.MonthlyTotal(userID, c.QueryParam("month"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			return SendError(c, apierrors.ValidationInvalidMonth)
		}
		return SendSystemError(c, err)
	}
	h.metrics.RecordProcessingTime("analytics_request", time.Since(start))

	return c.JSON(http.StatusOK, dto.MonthlyTotalResponse{
		Month: month,
		Total: total,
	})
}

// CategorySpend returns one category's spend for a month
func (h *AnalyticsHandler) CategorySpend(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	categoryID := c.QueryParam("category_id")

	start := time.Now()
	amount, month, err := h.spendingService.CategorySpend(userID, categoryID, c.QueryParam("month"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryIDRequired):
			return SendError(c, apierrors.CategoryIDRequired)
		case errors.Is(err, services.ErrInvalidMonth):
			return SendError(c, apierrors.ValidationInvalidMonth)
		}
		return SendSystemError(c, err)
	}
	h.metrics.RecordProcessingTime("analytics_request", time.Since(start))

	return c.JSON(http.StatusOK, dto.CategorySpendResponse{
		Month:      month,
		CategoryID: categoryID,
		Amount:     amount,
	})
}

// BudgetStatus returns the overall and per-category budget progress
func (h *AnalyticsHandler) BudgetStatus(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	start := time.Now()
	overview, err := h.spendingService.BudgetOverview(userID, c.QueryParam("month"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			return SendError(c, apierrors.ValidationInvalidMonth)
		}
		return SendSystemError(c, err)
	}
	h.metrics.RecordProcessingTime("analytics_request", time.Since(start))

	return c.JSON(http.StatusOK, overview)
}

// CheckAffordability evaluates a prospective purchase
func (h *AnalyticsHandler) CheckAffordability(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.AffordabilityRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	if !req.Amount.IsPositive() {
		return SendError(c, apierrors.TransactionInvalidAmount, apierrors.WithDetails("Amount must be positive"))
	}

	start := time.Now()
	verdict, err := h.spendingService.CheckAffordability(userID, services.AffordabilityQuery{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidAmount) {
			return SendError(c, apierrors.TransactionInvalidAmount)
		}
		return SendSystemError(c, err)
	}
	h.metrics.RecordProcessingTime("analytics_request", time.Since(start))

	return c.JSON(http.StatusOK, verdict)
}

// Insights returns the ordered observation list for a month
func (h *AnalyticsHandler) Insights(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	start := time.Now()
	insights, err := h.spendingService.Insights(userID, c.QueryParam("month"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			return SendError(c, apierrors.ValidationInvalidMonth)
		}
		return SendSystemError(c, err)
	}
	h.metrics.RecordProcessingTime("analytics_request", time.Since(start))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"insights": insights,
	})
}
