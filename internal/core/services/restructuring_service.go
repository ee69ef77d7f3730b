package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/core/domain"

	"gorm.io/gorm"
)

// RestructuringService handles loan restructuring requests
type RestructuringService struct {
	db        *gorm.DB
	loanRepo  repositories.LoanRepository
	auditRepo repositories.AuditLogRepository
}

// NewRestructuringService creates a new restructuring service
func NewRestructuringService(db *gorm.DB, loanRepo repositories.LoanRepository, auditRepo repositories.AuditLogRepository) *RestructuringService {
	return &RestructuringService{db: db, loanRepo: loanRepo, auditRepo: auditRepo}
}

// RequestRestructuringInput represents a restructuring request
type RequestRestructuringInput struct {
	LoanID        uint   `json:"loan_id" validate:"required"`
	NewTermMonths int    `json:"new_term_months" validate:"required,gt=0"`
	Reason        string `json:"reason,omitempty"`
}

// RequestRestructuring inserts a pending restructuring row with the
// new installment derived from the current balance and requested term.
func (s *RestructuringService) RequestRestructuring(ctx context.Context, input *RequestRestructuringInput) (*models.LoanRestructuring, error) {
	loan, err := s.loanRepo.GetByID(ctx, input.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	restructuring := &models.LoanRestructuring{
		LoanID:         loan.ID,
		MemberID:       loan.MemberID,
		OldTermMonths:  loan.TermMonths,
		NewTermMonths:  input.NewTermMonths,
		OldInstallment: loan.InstallmentAmount,
		NewInstallment: loan.Balance / float64(input.NewTermMonths),
		Reason:         input.Reason,
		Status:         models.RestructuringStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(restructuring).Error; err != nil {
		return nil, err
	}

	return restructuring, nil
}

// ApproveRestructuring applies a pending restructuring to its loan and
// marks it approved. Only pending rows can be approved; a second call
// on the same row fails. The loan update and the status update are two
// statements, not one transaction.
func (s *RestructuringService) ApproveRestructuring(ctx context.Context, restructuringID uint) (*models.LoanRestructuring, error) {
	var restructuring models.LoanRestructuring
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", restructuringID, models.RestructuringStatusPending).
		First(&restructuring).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRestructuringNotFound
		}
		return nil, err
	}

	if restructuring.NewTermMonths <= 0 || restructuring.NewInstallment <= 0 {
		return nil, domain.ErrInvalidState
	}

	err = s.loanRepo.UpdateFields(ctx, restructuring.LoanID, map[string]interface{}{
		"term_months":        restructuring.NewTermMonths,
		"installment_amount": restructuring.NewInstallment,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	restructuring.Status = models.RestructuringStatusApproved
	restructuring.ApprovedAt = &now
	if err := s.db.WithContext(ctx).Save(&restructuring).Error; err != nil {
		return nil, err
	}

	if err := s.auditRepo.Create(ctx, &models.AuditLog{
		MemberID: &restructuring.MemberID,
		Action:   "restructuring_approved",
		Entity:   "loan_restructuring",
		EntityID: restructuring.ID,
		Details: fmt.Sprintf("loan %d restructured to %d months at %.2f/month",
			restructuring.LoanID, restructuring.NewTermMonths, restructuring.NewInstallment),
	}); err != nil {
		log.Printf("⚠️ Audit log write failed for restructuring %d: %v", restructuring.ID, err)
	}

	return &restructuring, nil
}
