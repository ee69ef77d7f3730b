package services

import (
	"context"
	"errors"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/core/domain"

	"gorm.io/gorm"
)

// SavingsService handles savings bookkeeping
type SavingsService struct {
	memberRepo  repositories.MemberRepository
	savingsRepo repositories.SavingsRepository
	txnRepo     repositories.TransactionRepository
}

// NewSavingsService creates a new savings service
func NewSavingsService(
	memberRepo repositories.MemberRepository,
	savingsRepo repositories.SavingsRepository,
	txnRepo repositories.TransactionRepository,
) *SavingsService {
	return &SavingsService{
		memberRepo:  memberRepo,
		savingsRepo: savingsRepo,
		txnRepo:     txnRepo,
	}
}

// SavingsEntryInput represents a deposit or withdrawal
type SavingsEntryInput struct {
	MemberID uint    `json:"member_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// Deposit books a deposit into the member's active savings account
func (s *SavingsService) Deposit(ctx context.Context, input *SavingsEntryInput) (*models.Transaction, error) {
	account, err := s.activeAccount(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	account.Balance += input.Amount
	if err := s.savingsRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return s.bookEntry(ctx, account, models.TxnTypeDeposit, input.Amount, "Savings deposit")
}

// Withdraw books a withdrawal from the member's active savings account
func (s *SavingsService) Withdraw(ctx context.Context, input *SavingsEntryInput) (*models.Transaction, error) {
	account, err := s.activeAccount(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	if account.Balance < input.Amount {
		return nil, domain.ErrInsufficientBalance
	}

	account.Balance -= input.Amount
	if err := s.savingsRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return s.bookEntry(ctx, account, models.TxnTypeWithdrawal, input.Amount, "Savings withdrawal")
}

func (s *SavingsService) activeAccount(ctx context.Context, memberID uint) (*models.SavingsAccount, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	account, err := s.savingsRepo.GetActiveByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSavingsNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *SavingsService) bookEntry(ctx context.Context, account *models.SavingsAccount, txnType string, amount float64, description string) (*models.Transaction, error) {
	txn := &models.Transaction{
		TransactionNo:    newTransactionNo(),
		MemberID:         account.MemberID,
		SavingsAccountID: &account.ID,
		TransactionType:  txnType,
		Amount:           amount,
		BalanceAfter:     account.Balance,
		Description:      description,
		TransactionDate:  time.Now(),
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}
