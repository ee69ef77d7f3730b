package services

import (
	"context"
	"testing"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLatePenalty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db, repositories.NewLoanRepository(db))
	ctx := context.Background()

	member := createTestMember(t, db)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 12000, 12000)

	penalty, err := svc.ApplyLatePenalty(ctx, member.ID, loan.ID)
	require.NoError(t, err)

	// 2% of the 1000 installment
	assert.InDelta(t, 20, penalty.Amount, 0.01)
	assert.Equal(t, models.PenaltyStatusPending, penalty.Status)

	_, err = svc.ApplyLatePenalty(ctx, member.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestSchedulePaymentReminder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db, repositories.NewLoanRepository(db))
	ctx := context.Background()

	member := createTestMember(t, db)

	// A loan without a due date cannot take a reminder
	noDue := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 12000, 12000)
	_, err := svc.SchedulePaymentReminder(ctx, member.ID, noDue.ID, 3)
	assert.ErrorIs(t, err, domain.ErrLoanNoDueDate)

	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 12000, 12000)
	require.NoError(t, db.Model(&models.Loan{}).
		Where("id = ?", loan.ID).
		Update("due_date", due).Error)

	reminder, err := svc.SchedulePaymentReminder(ctx, member.ID, loan.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, models.ReminderStatusScheduled, reminder.Status)
	assert.Equal(t, due.AddDate(0, 0, -3), reminder.ScheduledFor)
}

func TestDispatchDueReminders(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db, repositories.NewLoanRepository(db))
	ctx := context.Background()

	member := createTestMember(t, db)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 12000, 12000)

	past := &models.Reminder{
		MemberID:     member.ID,
		LoanID:       loan.ID,
		ReminderType: "payment_due",
		ScheduledFor: time.Now().Add(-time.Hour),
		Status:       models.ReminderStatusScheduled,
	}
	future := &models.Reminder{
		MemberID:     member.ID,
		LoanID:       loan.ID,
		ReminderType: "payment_due",
		ScheduledFor: time.Now().Add(24 * time.Hour),
		Status:       models.ReminderStatusScheduled,
	}
	require.NoError(t, db.Create(past).Error)
	require.NoError(t, db.Create(future).Error)

	count, err := svc.DispatchDueReminders(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	var sent models.Reminder
	require.NoError(t, db.First(&sent, past.ID).Error)
	assert.Equal(t, models.ReminderStatusSent, sent.Status)
	assert.NotNil(t, sent.SentAt)

	var untouched models.Reminder
	require.NoError(t, db.First(&untouched, future.ID).Error)
	assert.Equal(t, models.ReminderStatusScheduled, untouched.Status)
}
