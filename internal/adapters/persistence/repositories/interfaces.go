package repositories

import (
	"context"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
)

// MemberRepository defines member data access
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
}

// RefreshTokenRepository defines refresh token data access
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByMemberID(ctx context.Context, memberID uint) error
	DeleteExpired(ctx context.Context) error
}

// SavingsRepository defines savings account data access
type SavingsRepository interface {
	Create(ctx context.Context, account *models.SavingsAccount) error
	GetActiveByMemberID(ctx context.Context, memberID uint) (*models.SavingsAccount, error)
	Update(ctx context.Context, account *models.SavingsAccount) error
}

// LoanRepository defines loan data access
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	GetByMemberID(ctx context.Context, memberID uint) ([]*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	SumDisbursedBalanceByMember(ctx context.Context, memberID uint) (float64, error)
}

// TransactionRepository defines ledger data access
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	ListSince(ctx context.Context, since time.Time) ([]*models.Transaction, error)
	CountRepaymentsBefore(ctx context.Context, memberID uint, before time.Time) (int64, error)
}

// AuditLogRepository defines audit trail data access
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}
