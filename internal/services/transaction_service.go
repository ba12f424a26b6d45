package services

import (
	"fmt"
	"log/slog"

	"spendwise-server/internal/dto"
	"spendwise-server/internal/models"
	"spendwise-server/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// transactionService implements TransactionServiceInterface
type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repositories.TransactionRepositoryInterface, metrics MetricsRecorderInterface) TransactionServiceInterface {
	return &transactionService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
	}
}

// ListTransactions returns a page of the user's transactions, newest first
func (s *transactionService) ListTransactions(userID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	transactions, total, err := s.transactionRepo.GetByUserID(userID, offset, limit)
	if err != nil {
		slog.Error("failed to list transactions",
			"user_id", userID,
			"error", err)
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}

// GetTransaction returns one transaction, scoped to its owner
func (s *transactionService) GetTransaction(id, userID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// CreateTransaction records a new transaction
func (s *transactionService) CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	transaction := &models.Transaction{
		UserID:        userID,
		Amount:        req.Amount,
		Date:          req.Date,
		CategoryID:    req.CategoryID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		IsRecurring:   req.IsRecurring,
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		slog.Error("failed to create transaction",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.metrics.IncrementCounter("transactions_created_total", map[string]string{
		"payment_method": transaction.PaymentMethod,
	})

	slog.Info("transaction created",
		"user_id", userID,
		"transaction_id", transaction.ID,
		"amount", transaction.Amount.String(),
		"category_id", transaction.CategoryID)

	return transaction, nil
}

// UpdateTransaction applies a partial update to an owned transaction
func (s *transactionService) UpdateTransaction(id, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Date != nil {
		transaction.Date = *req.Date
	}
	if req.CategoryID != nil {
		transaction.CategoryID = *req.CategoryID
	}
	if req.PaymentMethod != nil {
		transaction.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		transaction.Notes = *req.Notes
	}
	if req.IsRecurring != nil {
		transaction.IsRecurring = *req.IsRecurring
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		slog.Error("failed to update transaction",
			"user_id", userID,
			"transaction_id", id,
			"error", err)
		return nil, err
	}

	slog.Info("transaction updated",
		"user_id", userID,
		"transaction_id", id)

	return transaction, nil
}

// DeleteTransaction permanently removes an owned transaction
func (s *transactionService) DeleteTransaction(id, userID uuid.UUID) error {
	if err := s.transactionRepo.Delete(id, userID); err != nil {
		return err
	}

	slog.Info("transaction deleted",
		"user_id", userID,
		"transaction_id", id)

	return nil
}
