package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnknownCategoryName is the display fallback for transactions whose
// category id no longer resolves to a known category.
const UnknownCategoryName = "Unknown"

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrDefaultCategory      = errors.New("default categories cannot be removed")
)

// Category groups transactions for budgeting and reporting.
// Built-in categories ship with every account and carry an empty UserID;
// user-created categories are scoped to their owner.
type Category struct {
	ID        string    `gorm:"type:varchar(100);primary_key" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Color     string    `gorm:"type:varchar(50)" json:"color,omitempty"`
	Icon      string    `gorm:"type:varchar(50)" json:"icon,omitempty"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	return c.Validate()
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrCategoryNameRequired
	}
	return nil
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// DefaultCategories returns the fixed built-in category set that ships
// with every account. These are never removable.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food & Dining", Color: "category-food", Icon: "UtensilsCrossed", IsDefault: true},
		{ID: "transport", Name: "Transport", Color: "category-transport", Icon: "Car", IsDefault: true},
		{ID: "shopping", Name: "Shopping", Color: "category-shopping", Icon: "ShoppingBag", IsDefault: true},
		{ID: "bills", Name: "Bills & Utilities", Color: "category-bills", Icon: "Receipt", IsDefault: true},
		{ID: "subscriptions", Name: "Subscriptions", Color: "category-subscriptions", Icon: "Repeat", IsDefault: true},
		{ID: "entertainment", Name: "Entertainment", Color: "category-entertainment", Icon: "Gamepad2", IsDefault: true},
		{ID: "health", Name: "Health", Color: "category-health", Icon: "Heart", IsDefault: true},
		{ID: "education", Name: "Education", Color: "category-education", Icon: "GraduationCap", IsDefault: true},
		{ID: "other", Name: "Other", Color: "category-other", Icon: "MoreHorizontal", IsDefault: true},
	}
}

// CategoryNameByID resolves a category id against the given set,
// falling back to UnknownCategoryName for orphaned references.
func CategoryNameByID(categories []Category, id string) string {
	for i := range categories {
		if categories[i].ID == id {
			return categories[i].Name
		}
	}
	return UnknownCategoryName
}
