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
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewMemberRepository(db),
		repositories.NewRefreshTokenRepository(db),
		repositories.NewSavingsRepository(db),
		testConfig(),
	)
}

func TestRegisterOpensSavingsAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	result, err := svc.Register(context.Background(), &RegisterInput{
		FirstName:  "Grace",
		LastName:   "Wanjiku",
		Phone:      "+254700000001",
		Email:      "grace@example.com",
		NationalID: "12345678",
		Password:   "strongpass1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEmpty(t, result.Member.MemberNo)
	assert.Equal(t, "Grace Wanjiku", result.Member.FullName)

	var account models.SavingsAccount
	require.NoError(t, db.Where("member_id = ?", result.Member.ID).First(&account).Error)
	assert.Equal(t, models.SavingsTypeOrdinary, account.AccountType)
	assert.Zero(t, account.Balance)
	assert.True(t, account.IsActive)
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	input := &RegisterInput{
		FirstName:  "Grace",
		LastName:   "Wanjiku",
		Phone:      "+254700000002",
		Email:      "grace2@example.com",
		NationalID: "22345678",
		Password:   "strongpass1",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	input.Email = "other@example.com"
	input.NationalID = "32345678"
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrMemberAlreadyExists)
}

func TestLoginByAnyIdentifier(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		FirstName:  "Grace",
		LastName:   "Wanjiku",
		Phone:      "+254700000003",
		Email:      "grace3@example.com",
		NationalID: "42345678",
		Password:   "strongpass1",
	})
	require.NoError(t, err)

	for _, identifier := range []string{"+254700000003", "grace3@example.com", registered.Member.MemberNo} {
		result, err := svc.Login(ctx, &LoginInput{
			Identifier: identifier,
			Password:   "strongpass1",
		})
		require.NoError(t, err, "identifier %q", identifier)
		assert.Equal(t, registered.Member.ID, result.Member.ID)
	}

	_, err = svc.Login(ctx, &LoginInput{
		Identifier: "+254700000003",
		Password:   "wrongpass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		FirstName:  "Grace",
		LastName:   "Wanjiku",
		Phone:      "+254700000004",
		Email:      "grace4@example.com",
		NationalID: "52345678",
		Password:   "strongpass1",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Member{}).
		Where("id = ?", registered.Member.ID).
		Update("is_active", false).Error)

	_, err = svc.Login(ctx, &LoginInput{
		Identifier: "+254700000004",
		Password:   "strongpass1",
	})
	assert.ErrorIs(t, err, domain.ErrMemberInactive)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		FirstName:  "Grace",
		LastName:   "Wanjiku",
		Phone:      "+254700000005",
		Email:      "grace5@example.com",
		NationalID: "62345678",
		Password:   "strongpass1",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token is revoked and cannot be replayed
	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

// The nightly sweep purges tokens past their expiry and leaves live
// ones untouched.
func TestDeleteExpiredRefreshTokens(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRefreshTokenRepository(db)
	ctx := context.Background()

	member := createTestMember(t, db)

	expired := &models.RefreshToken{
		MemberID:  member.ID,
		TokenHash: "hash-expired",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	live := &models.RefreshToken{
		MemberID:  member.ID,
		TokenHash: "hash-live",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, expired))
	require.NoError(t, repo.Create(ctx, live))

	require.NoError(t, repo.DeleteExpired(ctx))

	var remaining []models.RefreshToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "hash-live", remaining[0].TokenHash)
}

// Register a member, fund their savings, then approve a quick loan
// within the 3x cap.
func TestRegisterThenQuickLoanApproval(t *testing.T) {
	db := setupTestDB(t)
	authSvc := newTestAuthService(db)
	loanSvc := newTestLoanService(db)
	savingsSvc := NewSavingsService(
		repositories.NewMemberRepository(db),
		repositories.NewSavingsRepository(db),
		repositories.NewTransactionRepository(db),
	)
	ctx := context.Background()

	registered, err := authSvc.Register(ctx, &RegisterInput{
		FirstName:  "Grace",
		LastName:   "Wanjiku",
		Phone:      "+254700000001",
		Email:      "grace.e2e@example.com",
		NationalID: "72345678",
		Password:   "strongpass1",
	})
	require.NoError(t, err)

	_, err = savingsSvc.Deposit(ctx, &SavingsEntryInput{
		MemberID: registered.Member.ID,
		Amount:   50000,
	})
	require.NoError(t, err)

	loan, err := loanSvc.QuickLoanApproval(ctx, &QuickLoanApprovalInput{
		MemberID: registered.Member.ID,
		Amount:   100000,
		Purpose:  "Working capital",
	})
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusApproved, loan.Status)
	assert.Equal(t, 12, loan.TermMonths)
	// Clean history scores 100, so the preferred 1.0% rate applies
	assert.InDelta(t, (100000+100000*0.01*12)/12, loan.InstallmentAmount, 0.01)
}
