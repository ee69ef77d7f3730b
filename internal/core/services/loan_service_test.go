package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditCheckCleanHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 10000)

	check, err := svc.CreditCheck(ctx, member.ID, 20000)
	require.NoError(t, err)

	assert.Equal(t, 100, check.Score)
	assert.Equal(t, models.CreditCheckPassed, check.Status)
}

func TestCreditCheckMemberNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)

	_, err := svc.CreditCheck(context.Background(), 9999, 20000)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestCreditCheckOutstandingDebtDeduction(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 10000)
	// 600,000 outstanding caps the debt deduction at 50
	createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 600000, 600000)

	check, err := svc.CreditCheck(ctx, member.ID, 20000)
	require.NoError(t, err)

	assert.Equal(t, 50, check.Score)
	assert.Equal(t, models.CreditCheckPassed, check.Status, "50 is the pass boundary")
}

func TestCreditCheckAmountVersusSavingsDeduction(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 10000)

	// Above 3x savings but within 5x: -20
	check, err := svc.CreditCheck(ctx, member.ID, 40000)
	require.NoError(t, err)
	assert.Equal(t, 80, check.Score)

	// Above 5x savings: -30
	check, err = svc.CreditCheck(ctx, member.ID, 60000)
	require.NoError(t, err)
	assert.Equal(t, 70, check.Score)
}

func TestCreditCheckRepaymentHistoryDeduction(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 10000)

	// The repayment count filters on transaction_date < now, which
	// matches every historical repayment. Four repayments cost 20.
	for i := 0; i < 4; i++ {
		require.NoError(t, db.Create(&models.Transaction{
			TransactionNo:   fmt.Sprintf("TX-HIST-%d", i),
			MemberID:        member.ID,
			TransactionType: models.TxnTypeLoanRepayment,
			Amount:          1000,
			TransactionDate: time.Now().AddDate(0, -i-1, 0),
		}).Error)
	}

	check, err := svc.CreditCheck(ctx, member.ID, 20000)
	require.NoError(t, err)
	assert.Equal(t, 80, check.Score)
}

func TestCreditCheckScoreClampedToZero(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 1000)
	createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 900000, 900000)
	for i := 0; i < 8; i++ {
		require.NoError(t, db.Create(&models.Transaction{
			TransactionNo:   fmt.Sprintf("TX-CLAMP-%d", i),
			MemberID:        member.ID,
			TransactionType: models.TxnTypeLoanRepayment,
			Amount:          500,
			TransactionDate: time.Now().AddDate(0, 0, -i-1),
		}).Error)
	}

	// -50 debt, -30 amount over 5x savings, -30 repayments (capped)
	check, err := svc.CreditCheck(ctx, member.ID, 50000)
	require.NoError(t, err)

	assert.Equal(t, 0, check.Score)
	assert.Equal(t, models.CreditCheckFailed, check.Status)
}

func TestQuickLoanApprovalExceedsLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 10000)

	// Passes the credit check (score 80) but breaches the 3x cap
	_, err := svc.QuickLoanApproval(context.Background(), &QuickLoanApprovalInput{
		MemberID: member.ID,
		Amount:   40000,
	})
	assert.ErrorIs(t, err, domain.ErrExceedsLimit)
}

func TestQuickLoanApprovalCreditCheckFailed(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 10000)
	// -50 debt plus -15 repayments takes the score to 35
	createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 500000, 500000)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Transaction{
			TransactionNo:   fmt.Sprintf("TX-FAIL-%d", i),
			MemberID:        member.ID,
			TransactionType: models.TxnTypeLoanRepayment,
			Amount:          1000,
			TransactionDate: time.Now().AddDate(0, 0, -i-1),
		}).Error)
	}

	_, err := svc.QuickLoanApproval(context.Background(), &QuickLoanApprovalInput{
		MemberID: member.ID,
		Amount:   20000,
	})
	assert.ErrorIs(t, err, domain.ErrCreditCheckFailed)
}

func TestQuickLoanApprovalPreferredRate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 10000)

	loan, err := svc.QuickLoanApproval(context.Background(), &QuickLoanApprovalInput{
		MemberID: member.ID,
		Amount:   25000,
		Purpose:  "School fees",
	})
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusApproved, loan.Status)
	assert.Equal(t, QuickLoanTermMonths, loan.TermMonths)
	assert.Equal(t, PreferredMonthlyRate, loan.InterestRate)

	// Simple interest: 25000 * 1% * 12 = 3000
	assert.InDelta(t, 3000, loan.InterestAmount, 0.01)
	assert.InDelta(t, 28000, loan.TotalAmount, 0.01)
	assert.InDelta(t, 28000.0/12, loan.InstallmentAmount, 0.01)

	require.NotNil(t, loan.DueDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 365), *loan.DueDate, time.Minute)

	// The approval writes an audit entry
	var auditCount int64
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("action = ?", "quick_loan_approval").
		Count(&auditCount).Error)
	assert.EqualValues(t, 1, auditCount)
}

func TestQuickLoanApprovalStandardRate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 10000)
	// 250,000 outstanding drops the score to 75, below the preferred tier
	createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 250000, 250000)

	loan, err := svc.QuickLoanApproval(context.Background(), &QuickLoanApprovalInput{
		MemberID: member.ID,
		Amount:   20000,
	})
	require.NoError(t, err)

	assert.Equal(t, StandardMonthlyRate, loan.InterestRate)
	assert.InDelta(t, 20000*0.015*12, loan.InterestAmount, 0.01)
	assert.InDelta(t, (20000+3600.0)/12, loan.InstallmentAmount, 0.01)
}

func TestDisburseLoan(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusApproved, 12000, 12000)

	disbursed, err := svc.DisburseLoan(ctx, loan.ID)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusDisbursed, disbursed.Status)
	assert.NotNil(t, disbursed.DisbursedAt)

	var txn models.Transaction
	require.NoError(t, db.Where("loan_id = ? AND transaction_type = ?",
		loan.ID, models.TxnTypeLoanDisbursement).First(&txn).Error)
	assert.InDelta(t, loan.Principal, txn.Amount, 0.01)

	// A second disbursement is rejected
	_, err = svc.DisburseLoan(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidLoanStatus)
}

func TestRecordRepaymentSettlesLoan(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLoanService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 12000, 12000)

	_, err := svc.RecordRepayment(ctx, &RecordRepaymentInput{
		MemberID: member.ID,
		LoanID:   loan.ID,
		Amount:   5000,
	})
	require.NoError(t, err)

	var updated models.Loan
	require.NoError(t, db.First(&updated, loan.ID).Error)
	assert.InDelta(t, 7000, updated.Balance, 0.01)
	assert.Equal(t, models.LoanStatusDisbursed, updated.Status)

	// Overpaying clamps the balance at zero and settles the loan
	_, err = svc.RecordRepayment(ctx, &RecordRepaymentInput{
		MemberID: member.ID,
		LoanID:   loan.ID,
		Amount:   8000,
	})
	require.NoError(t, err)

	require.NoError(t, db.First(&updated, loan.ID).Error)
	assert.Zero(t, updated.Balance)
	assert.Equal(t, models.LoanStatusFullyPaid, updated.Status)
}
