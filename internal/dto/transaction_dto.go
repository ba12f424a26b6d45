package dto

import (
	"time"

	"spendwise-server/internal/models"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for recording a transaction.
// Amount positivity is enforced in the model since validator tags do not
// see inside decimal.Decimal.
type CreateTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Date          string          `json:"date" validate:"required,datetime=2006-01-02"`
	CategoryID    string          `json:"category_id" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash upi card netbanking"`
	Notes         string          `json:"notes" validate:"omitempty,max=500"`
	IsRecurring   bool            `json:"is_recurring"`
}

// UpdateTransactionRequest carries a partial update; nil fields are
// left untouched
type UpdateTransactionRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Date          *string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CategoryID    *string          `json:"category_id,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty" validate:"omitempty,oneof=cash upi card netbanking"`
	Notes         *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
	IsRecurring   *bool            `json:"is_recurring,omitempty"`
}

// TransactionResponse is the wire shape of a single transaction
type TransactionResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	CategoryID    string          `json:"category_id"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	IsRecurring   bool            `json:"is_recurring"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TransactionListResponse is a paginated transaction page
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Offset       int                   `json:"offset"`
	Limit        int                   `json:"limit"`
}

// NewTransactionResponse maps a model to its wire shape
func NewTransactionResponse(txn *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID.String(),
		Amount:        txn.Amount,
		Date:          txn.Date,
		CategoryID:    txn.CategoryID,
		PaymentMethod: txn.PaymentMethod,
		Notes:         txn.Notes,
		IsRecurring:   txn.IsRecurring,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
}

// NewTransactionListResponse maps a page of transactions
func NewTransactionListResponse(txns []models.Transaction, total int64, offset, limit int) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, NewTransactionResponse(&txns[i]))
	}
	return TransactionListResponse{
		Transactions: items,
		Total:        total,
		Offset:       offset,
		Limit:        limit,
	}
}
