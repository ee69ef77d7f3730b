package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database. The shared-cache
// DSN keeps the concurrent report queries on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

var testMemberSeq int

// createTestMember inserts an active member with unique contact details
func createTestMember(t *testing.T, db *gorm.DB) *models.Member {
	t.Helper()

	testMemberSeq++
	member := &models.Member{
		MemberNo:   fmt.Sprintf("SACCO-T%04d", testMemberSeq),
		FirstName:  "Amina",
		LastName:   "Otieno",
		Phone:      fmt.Sprintf("+2547%08d", testMemberSeq),
		Email:      fmt.Sprintf("amina%d@example.com", testMemberSeq),
		NationalID: fmt.Sprintf("ID%08d", testMemberSeq),
		Password:   "not-a-real-hash",
		JoinDate:   time.Now(),
		IsActive:   true,
		Role:       "MEMBER",
	}
	require.NoError(t, db.Create(member).Error)

	return member
}

// createTestSavings opens an active ordinary account with a balance
func createTestSavings(t *testing.T, db *gorm.DB, memberID uint, balance float64) *models.SavingsAccount {
	t.Helper()

	testMemberSeq++
	account := &models.SavingsAccount{
		AccountNo:   fmt.Sprintf("SA-T%04d", testMemberSeq),
		MemberID:    memberID,
		AccountType: models.SavingsTypeOrdinary,
		Balance:     balance,
		IsActive:    true,
	}
	require.NoError(t, db.Create(account).Error)

	return account
}

// createTestLoan inserts a loan in the given status
func createTestLoan(t *testing.T, db *gorm.DB, memberID uint, status string, total, balance float64) *models.Loan {
	t.Helper()

	testMemberSeq++
	loan := &models.Loan{
		LoanNo:            fmt.Sprintf("LN-T%04d", testMemberSeq),
		MemberID:          memberID,
		Principal:         total,
		InterestRate:      1.5,
		InterestAmount:    0,
		TotalAmount:       total,
		PaidAmount:        total - balance,
		Balance:           balance,
		TermMonths:        12,
		InstallmentAmount: total / 12,
		Status:            status,
	}
	require.NoError(t, db.Create(loan).Error)

	return loan
}

// newTestLoanService wires a loan service onto the test database
func newTestLoanService(db *gorm.DB) *LoanService {
	return NewLoanService(
		db,
		repositories.NewMemberRepository(db),
		repositories.NewSavingsRepository(db),
		repositories.NewLoanRepository(db),
		repositories.NewTransactionRepository(db),
		repositories.NewAuditLogRepository(db),
	)
}
