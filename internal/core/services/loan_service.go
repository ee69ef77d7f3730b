package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/core/domain"

	"gorm.io/gorm"
)

// Credit scoring and quick-approval parameters
const (
	// LoanLimitMultiplier caps a quick loan at this multiple of the
	// member's active savings balance.
	LoanLimitMultiplier = 3.0

	// Monthly flat rates by credit tier (percent)
	PreferredMonthlyRate = 1.0
	StandardMonthlyRate  = 1.5

	// PreferredScoreThreshold selects the preferred rate
	PreferredScoreThreshold = 80

	// PassScoreThreshold is the minimum passing credit score
	PassScoreThreshold = 50

	// QuickLoanTermMonths is the fixed quick-loan term
	QuickLoanTermMonths = 12
)

// LoanService handles credit scoring, quick approval and loan bookkeeping
type LoanService struct {
	db          *gorm.DB
	memberRepo  repositories.MemberRepository
	savingsRepo repositories.SavingsRepository
	loanRepo    repositories.LoanRepository
	txnRepo     repositories.TransactionRepository
	auditRepo   repositories.AuditLogRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	db *gorm.DB,
	memberRepo repositories.MemberRepository,
	savingsRepo repositories.SavingsRepository,
	loanRepo repositories.LoanRepository,
	txnRepo repositories.TransactionRepository,
	auditRepo repositories.AuditLogRepository,
) *LoanService {
	return &LoanService{
		db:          db,
		memberRepo:  memberRepo,
		savingsRepo: savingsRepo,
		loanRepo:    loanRepo,
		txnRepo:     txnRepo,
		auditRepo:   auditRepo,
	}
}

// activeSavingsBalance returns the member's active savings balance,
// treating a missing account as zero.
func (s *LoanService) activeSavingsBalance(ctx context.Context, memberID uint) (float64, error) {
	account, err := s.savingsRepo.GetActiveByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return account.Balance, nil
}

// CreditCheck scores a member for the requested loan amount and
// persists the result.
//
// Scoring starts at 100 and deducts:
//   - up to 50 in proportion to the member's outstanding disbursed-loan
//     balance (balance / 10,000, capped),
//   - 20 when the requested amount exceeds 3x the active savings
//     balance, 30 when it exceeds 5x,
//   - 5 per prior repayment transaction dated before now, capped at 30.
//     The date filter matches effectively all historical repayments;
//     that is the documented behavior of the rule, reproduced as-is.
//
// The score is clamped to [0,100]; status is "passed" iff score >= 50.
func (s *LoanService) CreditCheck(ctx context.Context, memberID uint, loanAmount float64) (*models.CreditCheck, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	score := 100.0

	// Outstanding disbursed debt
	outstanding, err := s.loanRepo.SumDisbursedBalanceByMember(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	score -= math.Min(50, outstanding/10000)

	// Requested amount versus savings
	savings, err := s.activeSavingsBalance(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	if loanAmount > 5*savings {
		score -= 30
	} else if loanAmount > 3*savings {
		score -= 20
	}

	// Repayment history
	repayments, err := s.txnRepo.CountRepaymentsBefore(ctx, member.ID, time.Now())
	if err != nil {
		return nil, err
	}
	score -= math.Min(30, float64(repayments)*5)

	// Clamp to [0, 100]
	score = math.Max(0, math.Min(100, score))

	status := models.CreditCheckFailed
	if score >= PassScoreThreshold {
		status = models.CreditCheckPassed
	}

	check := &models.CreditCheck{
		MemberID:   member.ID,
		LoanAmount: loanAmount,
		Score:      int(score),
		Status:     status,
		Details: fmt.Sprintf("outstanding=%.2f savings=%.2f repayments=%d",
			outstanding, savings, repayments),
		CheckedAt: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(check).Error; err != nil {
		return nil, err
	}

	return check, nil
}

// QuickLoanApprovalInput represents quick approval input
type QuickLoanApprovalInput struct {
	MemberID uint    `json:"member_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Purpose  string  `json:"purpose,omitempty"`
}

// QuickLoanApproval runs a credit check and, when it passes and the
// amount is within 3x the member's savings, books a 12-month loan in
// approved status. Interest is simple, not compound:
// interest = amount * monthlyRate * 12.
func (s *LoanService) QuickLoanApproval(ctx context.Context, input *QuickLoanApprovalInput) (*models.Loan, error) {
	check, err := s.CreditCheck(ctx, input.MemberID, input.Amount)
	if err != nil {
		return nil, err
	}
	if check.Status != models.CreditCheckPassed {
		return nil, domain.ErrCreditCheckFailed
	}

	savings, err := s.activeSavingsBalance(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	maxLoan := LoanLimitMultiplier * savings
	if input.Amount > maxLoan {
		return nil, domain.ErrExceedsLimit
	}

	rate := StandardMonthlyRate
	if check.Score >= PreferredScoreThreshold {
		rate = PreferredMonthlyRate
	}

	interest := input.Amount * (rate / 100) * QuickLoanTermMonths
	total := input.Amount + interest
	installment := total / QuickLoanTermMonths
	dueDate := time.Now().AddDate(0, 0, 365)

	loan := &models.Loan{
		LoanNo:            newLoanNo(),
		MemberID:          input.MemberID,
		Principal:         input.Amount,
		InterestRate:      rate,
		InterestAmount:    interest,
		TotalAmount:       total,
		PaidAmount:        0,
		Balance:           total,
		TermMonths:        QuickLoanTermMonths,
		InstallmentAmount: installment,
		Status:            models.LoanStatusApproved,
		Purpose:           input.Purpose,
		DueDate:           &dueDate,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	if err := s.auditRepo.Create(ctx, &models.AuditLog{
		MemberID: &input.MemberID,
		Action:   "quick_loan_approval",
		Entity:   "loan",
		EntityID: loan.ID,
		Details: fmt.Sprintf("loan %s approved: amount=%.2f score=%d rate=%.1f%%",
			loan.LoanNo, input.Amount, check.Score, rate),
	}); err != nil {
		log.Printf("⚠️ Audit log write failed for loan %s: %v", loan.LoanNo, err)
	}

	return loan, nil
}

// DisburseLoan moves an approved loan to disbursed and books the
// disbursement ledger entry.
func (s *LoanService) DisburseLoan(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	if loan.Status != models.LoanStatusApproved {
		return nil, domain.ErrInvalidLoanStatus
	}

	now := time.Now()
	loan.Status = models.LoanStatusDisbursed
	loan.DisbursedAt = &now
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		TransactionNo:   newTransactionNo(),
		MemberID:        loan.MemberID,
		LoanID:          &loan.ID,
		TransactionType: models.TxnTypeLoanDisbursement,
		Amount:          loan.Principal,
		BalanceAfter:    loan.Balance,
		Description:     "Loan disbursement " + loan.LoanNo,
		TransactionDate: now,
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return loan, nil
}

// RecordRepaymentInput represents a loan repayment
type RecordRepaymentInput struct {
	MemberID uint    `json:"member_id" validate:"required"`
	LoanID   uint    `json:"loan_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// RecordRepayment books a repayment against a loan and updates the
// loan's paid/balance figures. The loan update and the ledger insert
// are two separate statements, not one transaction.
func (s *LoanService) RecordRepayment(ctx context.Context, input *RecordRepaymentInput) (*models.Transaction, error) {
	loan, err := s.loanRepo.GetByID(ctx, input.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	loan.PaidAmount += input.Amount
	loan.Balance = loan.TotalAmount - loan.PaidAmount
	if loan.Balance <= 0 {
		loan.Balance = 0
		loan.Status = models.LoanStatusFullyPaid
	}
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		TransactionNo:   newTransactionNo(),
		MemberID:        input.MemberID,
		LoanID:          &loan.ID,
		TransactionType: models.TxnTypeLoanRepayment,
		Amount:          input.Amount,
		BalanceAfter:    loan.Balance,
		Description:     "Repayment on " + loan.LoanNo,
		TransactionDate: time.Now(),
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetMemberLoans lists a member's loans, newest first
func (s *LoanService) GetMemberLoans(ctx context.Context, memberID uint) ([]*models.Loan, error) {
	return s.loanRepo.GetByMemberID(ctx, memberID)
}
