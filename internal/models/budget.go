package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidBudgetTotal   = errors.New("budget total must not be negative")
	ErrInvalidBudgetCeiling = errors.New("category budget ceilings must not be negative")
)

// Budget holds a user's monthly spending ceilings. Exactly one record
// exists per user; it is created lazily with defaults on first access
// and updated by full replace.
type Budget struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TotalMonthly    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_monthly"`
	CategoryBudgets CeilingMap `gorm:"type:text" json:"category_budgets"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return b.Validate()
}

// Validate validates the budget fields. Category ceilings are allowed to
// exceed or undercut the overall ceiling; no cross-field invariant holds.
func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if b.TotalMonthly.IsNegative() {
		return ErrInvalidBudgetTotal
	}

	for _, ceiling := range b.CategoryBudgets {
		if ceiling.IsNegative() {
			return ErrInvalidBudgetCeiling
		}
	}

	return nil
}

// CeilingFor returns the monthly ceiling for a category. Categories
// absent from the map are unbudgeted (ceiling zero).
func (b *Budget) CeilingFor(categoryID string) decimal.Decimal {
	if ceiling, ok := b.CategoryBudgets[categoryID]; ok {
		return ceiling
	}
	return decimal.Zero
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}

// DefaultBudget returns the budget a user starts with before setting
// their own ceilings.
func DefaultBudget(userID uuid.UUID) *Budget {
	return &Budget{
		UserID:       userID,
		TotalMonthly: decimal.NewFromInt(30000),
		CategoryBudgets: CeilingMap{
			"food":          decimal.NewFromInt(8000),
			"transport":     decimal.NewFromInt(4000),
			"shopping":      decimal.NewFromInt(5000),
			"bills":         decimal.NewFromInt(5000),
			"subscriptions": decimal.NewFromInt(2000),
			"entertainment": decimal.NewFromInt(3000),
			"health":        decimal.NewFromInt(2000),
			"education":     decimal.NewFromInt(3000),
			"other":         decimal.NewFromInt(2000),
		},
	}
}

// CeilingMap maps category ids to monthly ceilings. Stored as a JSON
// text column for portability between PostgreSQL and SQLite.
type CeilingMap map[string]decimal.Decimal

// Value implements driver.Valuer interface
func (m CeilingMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	// Return string for SQLite compatibility
	return string(bytes), nil
}

// Scan implements sql.Scanner interface
func (m *CeilingMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CeilingMap", value)
	}

	if len(bytes) == 0 {
		*m = nil
		return nil
	}

	return json.Unmarshal(bytes, m)
}
