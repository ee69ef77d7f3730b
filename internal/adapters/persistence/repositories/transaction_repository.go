package repositories

import (
	"context"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a ledger entry
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// ListSince lists all transactions after the given time, newest first
func (r *transactionRepository) ListSince(ctx context.Context, since time.Time) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("transaction_date >= ?", since).
		Order("transaction_date DESC").
		Find(&txns).Error
	return txns, err
}

// CountRepaymentsBefore counts a member's loan repayment transactions
// dated before the cutoff
func (r *transactionRepository) CountRepaymentsBefore(ctx context.Context, memberID uint, before time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("member_id = ? AND transaction_type = ? AND transaction_date < ?",
			memberID, models.TxnTypeLoanRepayment, before).
		Count(&count).Error
	return count, err
}
