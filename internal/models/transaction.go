package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentMethodCash       = "cash"
	PaymentMethodUPI        = "upi"
	PaymentMethodCard       = "card"
	PaymentMethodNetBanking = "netbanking"

	// TransactionDateFormat is the canonical wire format for transaction dates.
	// Month bucketing uses the first 7 characters (YYYY-MM).
	TransactionDateFormat = "2006-01-02"
	MonthFormat           = "2006-01"
)

var (
	ErrInvalidAmount        = errors.New("transaction amount must be positive")
	ErrInvalidDate          = errors.New("transaction date must be YYYY-MM-DD")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingCategory      = errors.New("transaction category is required")
)

// Transaction represents a single recorded expense
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date          string          `gorm:"type:varchar(10);not null;index" json:"date"`
	CategoryID    string          `gorm:"type:varchar(100);not null;index" json:"category_id"`
	PaymentMethod string          `gorm:"type:varchar(20);not null" json:"payment_method"`
	Notes         string          `gorm:"type:varchar(255)" json:"notes,omitempty"`
	IsRecurring   bool            `gorm:"not null;default:false" json:"is_recurring"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if _, err := time.Parse(TransactionDateFormat, t.Date); err != nil {
		return ErrInvalidDate
	}

	if t.CategoryID == "" {
		return ErrMissingCategory
	}

	if !IsValidPaymentMethod(t.PaymentMethod) {
		return ErrInvalidPaymentMethod
	}

	return nil
}

// Month returns the YYYY-MM bucket this transaction falls into.
// Malformed dates yield a bucket no valid month ever matches.
func (t *Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// InMonth reports whether the transaction's date falls into the given
// YYYY-MM month bucket.
func (t *Transaction) InMonth(month string) bool {
	return month != "" && t.Month() == month
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidPaymentMethod checks if the payment method is valid
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodNetBanking:
		return true
	default:
		return false
	}
}

// AllPaymentMethods returns all valid payment method constants
func AllPaymentMethods() []string {
	return []string{
		PaymentMethodCash,
		PaymentMethodUPI,
		PaymentMethodCard,
		PaymentMethodNetBanking,
	}
}
