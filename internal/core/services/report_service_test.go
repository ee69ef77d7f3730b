package services

import (
	"context"
	"testing"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySummaryEmptyPeriod(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 31, 23, 59, 59, 0, time.UTC)

	summary, err := svc.GenerateMonthlySummary(context.Background(), start, end)
	require.NoError(t, err)

	// Every numeric field is zero-valued, never null
	assert.Zero(t, summary.TotalMembers)
	assert.Zero(t, summary.ActiveMembers)
	assert.Zero(t, summary.NewMembers)
	assert.Zero(t, summary.TotalSavingsBalance)
	assert.Zero(t, summary.LoansDisbursed)
	assert.Zero(t, summary.RepaymentsCollected)
	assert.Zero(t, summary.OutstandingBalance)
	assert.NotNil(t, summary.TransactionsByType)
	assert.Empty(t, summary.TransactionsByType)
}

func TestMonthlySummaryAggregates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 5000)

	now := time.Now()
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 0, 1)

	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 24000, 20000)
	require.NoError(t, db.Model(&models.Loan{}).
		Where("id = ?", loan.ID).
		Update("disbursed_at", now.AddDate(0, 0, -2)).Error)

	require.NoError(t, db.Create(&models.Transaction{
		TransactionNo:   "TX-SUM-1",
		MemberID:        member.ID,
		TransactionType: models.TxnTypeLoanRepayment,
		Amount:          4000,
		TransactionDate: now.AddDate(0, 0, -1),
	}).Error)
	require.NoError(t, db.Create(&models.Transaction{
		TransactionNo:   "TX-SUM-2",
		MemberID:        member.ID,
		TransactionType: models.TxnTypeDeposit,
		Amount:          1500,
		TransactionDate: now.AddDate(0, 0, -1),
	}).Error)

	summary, err := svc.GenerateMonthlySummary(ctx, start, end)
	require.NoError(t, err)

	assert.EqualValues(t, 1, summary.TotalMembers)
	assert.EqualValues(t, 1, summary.ActiveMembers)
	assert.InDelta(t, 5000, summary.TotalSavingsBalance, 0.01)
	assert.InDelta(t, 24000, summary.LoansDisbursed, 0.01)
	assert.InDelta(t, 4000, summary.RepaymentsCollected, 0.01)
	assert.InDelta(t, 20000, summary.OutstandingBalance, 0.01)

	byType := map[string]TxnTypeBreakdown{}
	for _, b := range summary.TransactionsByType {
		byType[b.TransactionType] = b
	}
	assert.InDelta(t, 4000, byType[models.TxnTypeLoanRepayment].Amount, 0.01)
	assert.EqualValues(t, 1, byType[models.TxnTypeDeposit].Count)
}

func TestLoanPortfolioOrderingAndSummary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	memberA := createTestMember(t, db)
	memberB := createTestMember(t, db)

	createTestLoan(t, db, memberA.ID, models.LoanStatusDisbursed, 10000, 4000)
	createTestLoan(t, db, memberB.ID, models.LoanStatusDisbursed, 50000, 45000)
	// Non-disbursed loans only appear in the status summary
	createTestLoan(t, db, memberA.ID, models.LoanStatusPending, 8000, 8000)

	portfolio, err := svc.GenerateLoanPortfolio(context.Background())
	require.NoError(t, err)

	require.Len(t, portfolio.Loans, 2)
	// Highest outstanding balance first
	assert.InDelta(t, 45000, portfolio.Loans[0].Balance, 0.01)
	assert.Equal(t, memberB.MemberNo, portfolio.Loans[0].MemberNo)
	assert.Equal(t, "Amina Otieno", portfolio.Loans[0].MemberName)

	byStatus := map[string]PortfolioStatusSummary{}
	for _, s := range portfolio.ByStatus {
		byStatus[s.Status] = s
	}
	assert.EqualValues(t, 2, byStatus[models.LoanStatusDisbursed].Count)
	assert.EqualValues(t, 1, byStatus[models.LoanStatusPending].Count)
	assert.InDelta(t, 49000, byStatus[models.LoanStatusDisbursed].Balance, 0.01)
}

func TestMemberStatementNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	start := time.Now().AddDate(0, -1, 0)
	_, err := svc.GenerateMemberStatement(context.Background(), 9999, start, time.Now())
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestMemberStatementPeriodFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	member := createTestMember(t, db)
	createTestSavings(t, db, member.ID, 3000)
	createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 12000, 12000)

	now := time.Now()
	require.NoError(t, db.Create(&models.Transaction{
		TransactionNo:   "TX-STMT-IN",
		MemberID:        member.ID,
		TransactionType: models.TxnTypeDeposit,
		Amount:          500,
		TransactionDate: now.AddDate(0, 0, -2),
	}).Error)
	require.NoError(t, db.Create(&models.Transaction{
		TransactionNo:   "TX-STMT-OUT",
		MemberID:        member.ID,
		TransactionType: models.TxnTypeDeposit,
		Amount:          700,
		TransactionDate: now.AddDate(0, -2, 0),
	}).Error)

	statement, err := svc.GenerateMemberStatement(ctx, member.ID, now.AddDate(0, 0, -7), now)
	require.NoError(t, err)

	assert.Equal(t, member.MemberNo, statement.Member.MemberNo)
	require.NotNil(t, statement.Savings)
	assert.InDelta(t, 3000, statement.Savings.Balance, 0.01)
	assert.Len(t, statement.Loans, 1)
	require.Len(t, statement.Transactions, 1)
	assert.Equal(t, "TX-STMT-IN", statement.Transactions[0].TransactionNo)
}

func TestMemberStatementWithoutSavingsAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	member := createTestMember(t, db)

	statement, err := svc.GenerateMemberStatement(context.Background(),
		member.ID, time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)

	assert.Nil(t, statement.Savings)
	assert.Empty(t, statement.Loans)
	assert.Empty(t, statement.Transactions)
}

func TestEndOfMonthPeriodBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)

	report, err := svc.GenerateEndOfMonth(context.Background(), 2026, time.February)
	require.NoError(t, err)

	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, time.February, report.Month)

	start := report.Summary.PeriodStart
	end := report.Summary.PeriodEnd
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	// Last instant of the last day of February
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 28, end.Day())
	assert.Equal(t, 23, end.Hour())

	require.NotNil(t, report.Portfolio)
}

func TestSaveAndListReports(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	saved, err := svc.SaveReport(ctx, domain.ReportMonthlySummary, start, end,
		map[string]int{"total_members": 3})
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusCompleted, saved.Status)
	assert.Contains(t, saved.Data, "total_members")

	reports, err := svc.ListReports(ctx, "", string(domain.ReportMonthlySummary))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, saved.ID, reports[0].ID)

	reports, err = svc.ListReports(ctx, "", string(domain.ReportEndOfMonth))
	require.NoError(t, err)
	assert.Empty(t, reports)
}
