package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/core/domain"

	"gorm.io/gorm"
)

// LatePenaltyRate is the late penalty as a fraction of the installment
const LatePenaltyRate = 0.02

// PenaltyService handles late penalties and payment reminders
type PenaltyService struct {
	db       *gorm.DB
	loanRepo repositories.LoanRepository
}

// NewPenaltyService creates a new penalty service
func NewPenaltyService(db *gorm.DB, loanRepo repositories.LoanRepository) *PenaltyService {
	return &PenaltyService{db: db, loanRepo: loanRepo}
}

// ApplyLatePenalty books a pending penalty of 2% of the loan's
// installment amount.
func (s *PenaltyService) ApplyLatePenalty(ctx context.Context, memberID, loanID uint) (*models.Penalty, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	penalty := &models.Penalty{
		MemberID: memberID,
		LoanID:   loan.ID,
		Amount:   loan.InstallmentAmount * LatePenaltyRate,
		Reason:   "Late installment on " + loan.LoanNo,
		Status:   models.PenaltyStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(penalty).Error; err != nil {
		return nil, err
	}

	return penalty, nil
}

// SchedulePaymentReminder schedules a reminder N days before the
// loan's due date.
func (s *PenaltyService) SchedulePaymentReminder(ctx context.Context, memberID, loanID uint, daysBeforeDue int) (*models.Reminder, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	if loan.DueDate == nil {
		return nil, domain.ErrLoanNoDueDate
	}

	reminder := &models.Reminder{
		MemberID:     memberID,
		LoanID:       loan.ID,
		ReminderType: "payment_due",
		Message: fmt.Sprintf("Loan %s installment of %.2f is due on %s",
			loan.LoanNo, loan.InstallmentAmount, loan.DueDate.Format("2006-01-02")),
		ScheduledFor: loan.DueDate.AddDate(0, 0, -daysBeforeDue),
		Status:       models.ReminderStatusScheduled,
	}

	if err := s.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return nil, err
	}

	return reminder, nil
}

// DispatchDueReminders marks scheduled reminders whose time has come
// as sent. Called from the daily cron job.
func (s *PenaltyService) DispatchDueReminders(ctx context.Context) (int64, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("status = ? AND scheduled_for <= ?", models.ReminderStatusScheduled, now).
		Updates(map[string]interface{}{
			"status":  models.ReminderStatusSent,
			"sent_at": &now,
		})
	return result.RowsAffected, result.Error
}
