package repositories

import (
	"context"

	"umoja-sacco/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetByMemberID gets all loans for a member, newest first
func (r *loanRepository) GetByMemberID(ctx context.Context, memberID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// Update updates a loan
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// UpdateFields updates specific loan fields
func (r *loanRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SumDisbursedBalanceByMember sums the outstanding balance of a
// member's disbursed loans
func (r *loanRepository) SumDisbursedBalanceByMember(ctx context.Context, memberID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("member_id = ? AND status = ?", memberID, models.LoanStatusDisbursed).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	return total, err
}
