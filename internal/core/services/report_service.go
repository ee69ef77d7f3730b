package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/core/domain"

	"gorm.io/gorm"
)

// ReportService produces read-only point-in-time aggregations
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// TxnTypeBreakdown is a per-transaction-type total for a period
type TxnTypeBreakdown struct {
	TransactionType string  `json:"transaction_type"`
	Count           int64   `json:"count"`
	Amount          float64 `json:"amount"`
}

// MonthlySummary aggregates membership, savings and loan activity for
// a period. Every numeric field defaults to zero when no rows match.
type MonthlySummary struct {
	PeriodStart         time.Time          `json:"period_start"`
	PeriodEnd           time.Time          `json:"period_end"`
	TotalMembers        int64              `json:"total_members"`
	ActiveMembers       int64              `json:"active_members"`
	NewMembers          int64              `json:"new_members"`
	TotalSavingsBalance float64            `json:"total_savings_balance"`
	LoansDisbursed      float64            `json:"loans_disbursed"`
	RepaymentsCollected float64            `json:"repayments_collected"`
	OutstandingBalance  float64            `json:"outstanding_balance"`
	TransactionsByType  []TxnTypeBreakdown `json:"transactions_by_type"`
}

// GenerateMonthlySummary runs the summary's seven aggregation queries
// concurrently; none depends on another's result. The first error wins.
func (s *ReportService) GenerateMonthlySummary(ctx context.Context, periodStart, periodEnd time.Time) (*MonthlySummary, error) {
	summary := &MonthlySummary{
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		TransactionsByType: []TxnTypeBreakdown{},
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 7)

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				errCh <- err
			}
		}()
	}

	run(func() error {
		return s.db.WithContext(ctx).Model(&models.Member{}).
			Count(&summary.TotalMembers).Error
	})

	run(func() error {
		return s.db.WithContext(ctx).Model(&models.Member{}).
			Where("is_active = ?", true).
			Count(&summary.ActiveMembers).Error
	})

	run(func() error {
		return s.db.WithContext(ctx).Model(&models.Member{}).
			Where("created_at BETWEEN ? AND ?", periodStart, periodEnd).
			Count(&summary.NewMembers).Error
	})

	run(func() error {
		return s.db.WithContext(ctx).Model(&models.SavingsAccount{}).
			Where("is_active = ?", true).
			Select("COALESCE(SUM(balance), 0)").
			Scan(&summary.TotalSavingsBalance).Error
	})

	run(func() error {
		return s.db.WithContext(ctx).Model(&models.Loan{}).
			Where("disbursed_at BETWEEN ? AND ?", periodStart, periodEnd).
			Select("COALESCE(SUM(principal), 0)").
			Scan(&summary.LoansDisbursed).Error
	})

	run(func() error {
		return s.db.WithContext(ctx).Model(&models.Transaction{}).
			Where("transaction_type = ? AND transaction_date BETWEEN ? AND ?",
				models.TxnTypeLoanRepayment, periodStart, periodEnd).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&summary.RepaymentsCollected).Error
	})

	run(func() error {
		return s.db.WithContext(ctx).Model(&models.Loan{}).
			Where("status = ?", models.LoanStatusDisbursed).
			Select("COALESCE(SUM(balance), 0)").
			Scan(&summary.OutstandingBalance).Error
	})

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return nil, err
	}

	// Per-type breakdown runs after the fan-out since it writes a slice
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("transaction_date BETWEEN ? AND ?", periodStart, periodEnd).
		Select("transaction_type, COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
		Group("transaction_type").
		Scan(&summary.TransactionsByType).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// PortfolioLoan is one disbursed loan with member display fields
// resolved by the join.
type PortfolioLoan struct {
	LoanID      uint       `json:"loan_id"`
	LoanNo      string     `json:"loan_no"`
	MemberNo    string     `json:"member_no"`
	FirstName   string     `json:"-"`
	LastName    string     `json:"-"`
	MemberName  string     `json:"member_name" gorm:"-"`
	Principal   float64    `json:"principal"`
	PaidAmount  float64    `json:"paid_amount"`
	Balance     float64    `json:"balance"`
	Status      string     `json:"status"`
	DisbursedAt *time.Time `json:"disbursed_at"`
	DueDate     *time.Time `json:"due_date"`
}

// PortfolioStatusSummary is a per-status count and total
type PortfolioStatusSummary struct {
	Status  string  `json:"status"`
	Count   int64   `json:"count"`
	Total   float64 `json:"total"`
	Balance float64 `json:"balance"`
}

// LoanPortfolio is the full portfolio report
type LoanPortfolio struct {
	Loans    []PortfolioLoan          `json:"loans"`
	ByStatus []PortfolioStatusSummary `json:"by_status"`
}

// GenerateLoanPortfolio lists disbursed loans with member names
// resolved in SQL, ordered by outstanding balance, plus a grouped
// per-status summary from a second query.
func (s *ReportService) GenerateLoanPortfolio(ctx context.Context) (*LoanPortfolio, error) {
	portfolio := &LoanPortfolio{
		Loans:    []PortfolioLoan{},
		ByStatus: []PortfolioStatusSummary{},
	}

	err := s.db.WithContext(ctx).
		Table("loans").
		Select(`loans.id as loan_id, loans.loan_no, members.member_no,
			members.first_name, members.last_name,
			loans.principal, loans.paid_amount, loans.balance, loans.status,
			loans.disbursed_at, loans.due_date`).
		Joins("LEFT JOIN members ON members.id = loans.member_id").
		Where("loans.status = ?", models.LoanStatusDisbursed).
		Order("loans.balance DESC").
		Scan(&portfolio.Loans).Error
	if err != nil {
		return nil, err
	}
	for i := range portfolio.Loans {
		portfolio.Loans[i].MemberName = portfolio.Loans[i].FirstName + " " + portfolio.Loans[i].LastName
	}

	err = s.db.WithContext(ctx).Model(&models.Loan{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(total_amount), 0) as total, COALESCE(SUM(balance), 0) as balance").
		Group("status").
		Scan(&portfolio.ByStatus).Error
	if err != nil {
		return nil, err
	}

	return portfolio, nil
}

// MemberStatement is a member's savings, loans and period transactions
type MemberStatement struct {
	Member       *models.MemberResponse `json:"member"`
	Savings      *models.SavingsAccount `json:"savings,omitempty"`
	Loans        []*models.Loan         `json:"loans"`
	Transactions []*models.Transaction  `json:"transactions"`
	PeriodStart  time.Time              `json:"period_start"`
	PeriodEnd    time.Time              `json:"period_end"`
}

// GenerateMemberStatement builds a statement for one member. The loan
// and transaction fetches run concurrently once the member is known.
func (s *ReportService) GenerateMemberStatement(ctx context.Context, memberID uint, periodStart, periodEnd time.Time) (*MemberStatement, error) {
	var member models.Member
	if err := s.db.WithContext(ctx).First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	statement := &MemberStatement{
		Member:       member.ToResponse(),
		Loans:        []*models.Loan{},
		Transactions: []*models.Transaction{},
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var account models.SavingsAccount
		err := s.db.WithContext(ctx).
			Where("member_id = ? AND is_active = ?", memberID, true).
			First(&account).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				errCh <- err
			}
			return
		}
		statement.Savings = &account
	}()
	go func() {
		defer wg.Done()
		errCh <- s.db.WithContext(ctx).
			Where("member_id = ?", memberID).
			Order("created_at DESC").
			Find(&statement.Loans).Error
	}()
	go func() {
		defer wg.Done()
		errCh <- s.db.WithContext(ctx).
			Where("member_id = ? AND transaction_date BETWEEN ? AND ?",
				memberID, periodStart, periodEnd).
			Order("transaction_date DESC").
			Find(&statement.Transactions).Error
	}()

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	return statement, nil
}

// EndOfMonthReport composes the monthly summary and loan portfolio
type EndOfMonthReport struct {
	Year      int             `json:"year"`
	Month     time.Month      `json:"month"`
	Summary   *MonthlySummary `json:"summary"`
	Portfolio *LoanPortfolio  `json:"portfolio"`
}

// GenerateEndOfMonth derives the month's bounds and composes the
// monthly summary with the loan portfolio.
func (s *ReportService) GenerateEndOfMonth(ctx context.Context, year int, month time.Month) (*EndOfMonthReport, error) {
	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	summary, err := s.GenerateMonthlySummary(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.GenerateLoanPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	return &EndOfMonthReport{
		Year:      year,
		Month:     month,
		Summary:   summary,
		Portfolio: portfolio,
	}, nil
}

// SaveReport serializes the report payload and stores it as completed
func (s *ReportService) SaveReport(ctx context.Context, reportType domain.ReportType, periodStart, periodEnd time.Time, data interface{}) (*models.Report, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ReportType:  string(reportType),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Data:        string(payload),
		Status:      models.ReportStatusCompleted,
		GeneratedAt: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}

	return report, nil
}

// ListReports lists the newest 50 saved reports, optionally filtered
// by status and report type.
func (s *ReportService) ListReports(ctx context.Context, status, reportType string) ([]*models.Report, error) {
	query := s.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if reportType != "" {
		query = query.Where("report_type = ?", reportType)
	}

	var reports []*models.Report
	err := query.Order("created_at DESC").Limit(50).Find(&reports).Error
	return reports, err
}
