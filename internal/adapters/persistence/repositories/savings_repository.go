package repositories

import (
	"context"

	"umoja-sacco/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// savingsRepository implements SavingsRepository interface
type savingsRepository struct {
	db *gorm.DB
}

// NewSavingsRepository creates a new savings repository
func NewSavingsRepository(db *gorm.DB) SavingsRepository {
	return &savingsRepository{db: db}
}

// Create creates a new savings account
func (r *savingsRepository) Create(ctx context.Context, account *models.SavingsAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// GetActiveByMemberID gets the member's active savings account.
// Members hold one active account at a time; the oldest wins if data
// ever contains more.
func (r *savingsRepository) GetActiveByMemberID(ctx context.Context, memberID uint) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND is_active = ?", memberID, true).
		Order("created_at ASC").
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Update updates a savings account
func (r *savingsRepository) Update(ctx context.Context, account *models.SavingsAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}
