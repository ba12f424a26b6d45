package dto

import (
	"time"

	"spendwise-server/internal/models"

	"github.com/shopspring/decimal"
)

// UpdateBudgetRequest replaces the whole budget document. Categories
// absent from the map become unbudgeted.
type UpdateBudgetRequest struct {
	TotalMonthly    decimal.Decimal            `json:"total_monthly" validate:"required"`
	CategoryBudgets map[string]decimal.Decimal `json:"category_budgets"`
}

// BudgetResponse is the wire shape of a budget document
type BudgetResponse struct {
	ID              string                     `json:"id"`
	TotalMonthly    decimal.Decimal            `json:"total_monthly"`
	CategoryBudgets map[string]decimal.Decimal `json:"category_budgets"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// NewBudgetResponse maps a budget model to its wire shape
func NewBudgetResponse(budget *models.Budget) BudgetResponse {
	ceilings := budget.CategoryBudgets
	if ceilings == nil {
		ceilings = models.CeilingMap{}
	}
	return BudgetResponse{
		ID:              budget.ID.String(),
		TotalMonthly:    budget.TotalMonthly,
		CategoryBudgets: ceilings,
		UpdatedAt:       budget.UpdatedAt,
	}
}

// CreateCategoryRequest is the payload for a user-defined category
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"required,max=30"`
	Icon  string `json:"icon" validate:"required,max=30"`
}

// CategoryResponse is the wire shape of a category
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"is_default"`
}

// NewCategoryResponse maps a category model to its wire shape
func NewCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		IsDefault: category.IsDefault,
	}
}

// NewCategoryListResponse maps a category list
func NewCategoryListResponse(categories []models.Category) []CategoryResponse {
	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, NewCategoryResponse(&categories[i]))
	}
	return items
}
