package services

import (
	"context"
	"strings"
	"testing"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/core/domain"
	"umoja-sacco/internal/pkg/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestExportService(db *gorm.DB) *ExportService {
	return NewExportService(db, NewReportService(db))
}

func TestExportMembersCSV(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)
	ctx := context.Background()

	active := createTestMember(t, db)
	inactive := createTestMember(t, db)
	require.NoError(t, db.Model(&models.Member{}).
		Where("id = ?", inactive.ID).
		Update("is_active", false).Error)

	download, err := svc.BuildDownload(ctx, domain.DownloadMembers, export.FormatCSV,
		ExportFilters{Status: "active"})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", download.ContentType)
	assert.True(t, strings.HasSuffix(download.Filename, ".csv"))

	lines := strings.Split(strings.TrimRight(download.Body, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "member_no,full_name,phone,email,national_id,join_date,is_active,role,created_at", lines[0])
	assert.Contains(t, lines[1], active.MemberNo)
	assert.NotContains(t, download.Body, inactive.MemberNo)
}

func TestExportMembersSearchFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)

	member := createTestMember(t, db)

	download, err := svc.BuildDownload(context.Background(), domain.DownloadMembers,
		export.FormatCSV, ExportFilters{Search: member.MemberNo})
	require.NoError(t, err)
	assert.Contains(t, download.Body, member.MemberNo)

	download, err = svc.BuildDownload(context.Background(), domain.DownloadMembers,
		export.FormatCSV, ExportFilters{Search: "no-such-member"})
	require.NoError(t, err)
	// Empty result renders as an empty body, no header
	assert.Empty(t, download.Body)
}

func TestExportLoansWithMemberName(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)

	member := createTestMember(t, db)
	loan := createTestLoan(t, db, member.ID, models.LoanStatusDisbursed, 12000, 12000)

	download, err := svc.BuildDownload(context.Background(), domain.DownloadLoans,
		export.FormatCSV, ExportFilters{Status: models.LoanStatusDisbursed})
	require.NoError(t, err)

	assert.Contains(t, download.Body, loan.LoanNo)
	assert.Contains(t, download.Body, "Amina Otieno")
}

func TestExportSavingsWithMemberName(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)

	member := createTestMember(t, db)
	account := createTestSavings(t, db, member.ID, 5000)

	download, err := svc.BuildDownload(context.Background(), domain.DownloadSavings,
		export.FormatCSV, ExportFilters{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(download.Body, "\n"), "\n")
	require.Len(t, lines, 2)
	// member_no and member_name come from the join, never blank
	assert.Contains(t, lines[1], account.AccountNo)
	assert.Contains(t, lines[1], member.MemberNo)
	assert.Contains(t, lines[1], "Amina Otieno")
}

func TestExportGuarantorsFilteredByMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)

	borrower := createTestMember(t, db)
	guarantorA := createTestMember(t, db)
	guarantorB := createTestMember(t, db)
	loan := createTestLoan(t, db, borrower.ID, models.LoanStatusDisbursed, 24000, 24000)

	require.NoError(t, db.Create(&models.Guarantor{
		LoanID:            loan.ID,
		GuarantorMemberID: guarantorA.ID,
		GuaranteedAmount:  10000,
		Status:            "active",
	}).Error)
	require.NoError(t, db.Create(&models.Guarantor{
		LoanID:            loan.ID,
		GuarantorMemberID: guarantorB.ID,
		GuaranteedAmount:  8000,
		Status:            "active",
	}).Error)

	download, err := svc.BuildDownload(context.Background(), domain.DownloadGuarantors,
		export.FormatCSV, ExportFilters{MemberID: guarantorA.ID})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(download.Body, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], guarantorA.MemberNo)
	assert.Contains(t, lines[1], "Amina Otieno")
	assert.NotContains(t, download.Body, guarantorB.MemberNo)
}

func TestExportJSONFormat(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)

	member := createTestMember(t, db)

	download, err := svc.BuildDownload(context.Background(), domain.DownloadMembers,
		export.FormatJSON, ExportFilters{})
	require.NoError(t, err)

	assert.Equal(t, "application/json", download.ContentType)
	assert.True(t, strings.HasSuffix(download.Filename, ".json"))
	assert.True(t, strings.HasPrefix(download.Body, "["))
	assert.Contains(t, download.Body, member.MemberNo)
}

func TestExportMemberStatementRequiresMemberID(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)

	_, err := svc.BuildDownload(context.Background(), domain.DownloadMemberStatement,
		export.FormatCSV, ExportFilters{})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestExportUnknownDownloadType(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)

	_, err := svc.BuildDownload(context.Background(), domain.DownloadType("nonsense"),
		export.FormatCSV, ExportFilters{})
	assert.Error(t, err)
}

func TestExportMonthlySummarySheet(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExportService(db)

	createTestMember(t, db)

	download, err := svc.BuildDownload(context.Background(), domain.DownloadMonthlySummary,
		export.FormatCSV, ExportFilters{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(download.Body, "\n"), "\n")
	assert.Equal(t, "metric,value", lines[0])
	assert.Contains(t, download.Body, "total_members,1")
}
