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

func newTestRestructuringService(db *gorm.DB) *RestructuringService {
	return NewRestructuringService(db,
		repositories.NewLoanRepository(db),
		repositories.NewAuditLogRepository(db))
}

func TestRequestRestructuring(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRestructuringService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 24000, 12000)

	restructuring, err := svc.RequestRestructuring(ctx, &RequestRestructuringInput{
		LoanID:        loan.ID,
		NewTermMonths: 6,
		Reason:        "Reduced income",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RestructuringStatusPending, restructuring.Status)
	assert.Equal(t, loan.TermMonths, restructuring.OldTermMonths)
	// New installment spreads the outstanding balance over the new term
	assert.InDelta(t, 2000, restructuring.NewInstallment, 0.01)

	_, err = svc.RequestRestructuring(ctx, &RequestRestructuringInput{
		LoanID:        9999,
		NewTermMonths: 6,
	})
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestApproveRestructuringAppliesToLoan(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRestructuringService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 24000, 12000)

	restructuring, err := svc.RequestRestructuring(ctx, &RequestRestructuringInput{
		LoanID:        loan.ID,
		NewTermMonths: 6,
	})
	require.NoError(t, err)

	approved, err := svc.ApproveRestructuring(ctx, restructuring.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RestructuringStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	var updated models.Loan
	require.NoError(t, db.First(&updated, loan.ID).Error)
	assert.Equal(t, 6, updated.TermMonths)
	assert.InDelta(t, 2000, updated.InstallmentAmount, 0.01)

	var audits int64
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("action = ?", "restructuring_approved").
		Count(&audits).Error)
	assert.EqualValues(t, 1, audits)
}

// Approving twice must fail: once the row leaves pending it can no
// longer be found by the approval query.
func TestApproveRestructuringNotIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRestructuringService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 24000, 12000)

	restructuring, err := svc.RequestRestructuring(ctx, &RequestRestructuringInput{
		LoanID:        loan.ID,
		NewTermMonths: 6,
	})
	require.NoError(t, err)

	_, err = svc.ApproveRestructuring(ctx, restructuring.ID)
	require.NoError(t, err)

	_, err = svc.ApproveRestructuring(ctx, restructuring.ID)
	assert.ErrorIs(t, err, domain.ErrRestructuringNotFound)
}

func TestApproveRestructuringMissingRow(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRestructuringService(db)

	_, err := svc.ApproveRestructuring(context.Background(), 424242)
	assert.ErrorIs(t, err, domain.ErrRestructuringNotFound)
}
