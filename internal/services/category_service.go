package services

import (
	"fmt"
	"log/slog"

	"spendwise-server/internal/dto"
	"spendwise-server/internal/models"
	"spendwise-server/internal/repositories"

	"github.com/google/uuid"
)

// categoryService implements CategoryServiceInterface
type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

// ListCategories returns the built-in categories plus the user's own
func (s *categoryService) ListCategories(userID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetForUser(userID)
	if err != nil {
		slog.Error("failed to list categories",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a user-defined category
func (s *categoryService) CreateCategory(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		UserID:    userID.String(),
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		IsDefault: false,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		slog.Error("failed to create category",
			"user_id", userID,
			"name", req.Name,
			"error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("category created",
		"user_id", userID,
		"category_id", category.ID,
		"name", category.Name)

	return category, nil
}

// DeleteCategory removes a user-created category. Built-in categories
// are never deletable.
func (s *categoryService) DeleteCategory(userID uuid.UUID, categoryID string) error {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}

	if category.IsDefault {
		slog.Warn("attempt to delete built-in category",
			"user_id", userID,
			"category_id", categoryID)
		return models.ErrDefaultCategory
	}

	if category.UserID != userID.String() {
		return repositories.ErrCategoryNotFound
	}

	if err := s.categoryRepo.Delete(categoryID, userID); err != nil {
		slog.Error("failed to delete category",
			"user_id", userID,
			"category_id", categoryID,
			"error", err)
		return err
	}

	slog.Info("category deleted",
		"user_id", userID,
		"category_id", categoryID)

	return nil
}
