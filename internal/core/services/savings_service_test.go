package services

import (
	"context"
	"testing"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSavingsService(db *gorm.DB) *SavingsService {
	return NewSavingsService(
		repositories.NewMemberRepository(db),
		repositories.NewSavingsRepository(db),
		repositories.NewTransactionRepository(db),
	)
}

func TestDepositUpdatesBalanceAndLedger(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSavingsService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	account := createTestSavings(t, db, member.ID, 1000)

	txn, err := svc.Deposit(ctx, &SavingsEntryInput{MemberID: member.ID, Amount: 500})
	require.NoError(t, err)

	assert.Equal(t, models.TxnTypeDeposit, txn.TransactionType)
	assert.InDelta(t, 1500, txn.BalanceAfter, 0.01)

	var updated models.SavingsAccount
	require.NoError(t, db.First(&updated, account.ID).Error)
	assert.InDelta(t, 1500, updated.Balance, 0.01)
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSavingsService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 100)

	_, err := svc.Withdraw(ctx, &SavingsEntryInput{MemberID: member.ID, Amount: 500})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	txn, err := svc.Withdraw(ctx, &SavingsEntryInput{MemberID: member.ID, Amount: 100})
	require.NoError(t, err)
	assert.Zero(t, txn.BalanceAfter)
}

func TestSavingsEntryMissingMemberOrAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestSavingsService(db)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, &SavingsEntryInput{MemberID: 9999, Amount: 500})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	member := createTestMember(t, db)
	_, err = svc.Deposit(ctx, &SavingsEntryInput{MemberID: member.ID, Amount: 500})
	assert.ErrorIs(t, err, domain.ErrSavingsNotFound)
}
