package services

import (
	"context"
	"fmt"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/core/domain"
	"umoja-sacco/internal/pkg/export"

	"gorm.io/gorm"
)

// ExportFilters narrow a dataset before rendering. All fields are
// optional; zero values mean "no filter".
type ExportFilters struct {
	Status   string
	MemberID uint
	From     *time.Time
	To       *time.Time
	Search   string
}

// Download is a rendered export ready to be written to the response
type Download struct {
	Filename    string
	ContentType string
	Body        string
}

// ExportService renders datasets as downloadable CSV or JSON
type ExportService struct {
	db      *gorm.DB
	reports *ReportService
}

// NewExportService creates a new export service
func NewExportService(db *gorm.DB, reports *ReportService) *ExportService {
	return &ExportService{db: db, reports: reports}
}

// BuildDownload produces the export body, filename and content type
// for a download type and format.
func (s *ExportService) BuildDownload(ctx context.Context, downloadType domain.DownloadType, format export.Format, filters ExportFilters) (*Download, error) {
	columns, rows, err := s.rows(ctx, downloadType, filters)
	if err != nil {
		return nil, err
	}

	body, err := export.Render(columns, rows, format)
	if err != nil {
		return nil, err
	}

	return &Download{
		Filename:    export.Filename(string(downloadType), format),
		ContentType: export.ContentType(format),
		Body:        body,
	}, nil
}

// rows dispatches to the producer for a download type
func (s *ExportService) rows(ctx context.Context, downloadType domain.DownloadType, filters ExportFilters) ([]string, []export.Row, error) {
	switch downloadType {
	case domain.DownloadMembers:
		return s.memberRows(ctx, filters)
	case domain.DownloadSavings:
		return s.savingsRows(ctx, filters)
	case domain.DownloadLoans:
		return s.loanRows(ctx, filters)
	case domain.DownloadTransactions:
		return s.transactionRows(ctx, filters)
	case domain.DownloadPenalties:
		return s.penaltyRows(ctx, filters)
	case domain.DownloadCreditChecks:
		return s.creditCheckRows(ctx, filters)
	case domain.DownloadGuarantors:
		return s.guarantorRows(ctx, filters)
	case domain.DownloadReminders:
		return s.reminderRows(ctx, filters)
	case domain.DownloadAuditLogs:
		return s.auditLogRows(ctx, filters)
	case domain.DownloadCompliance:
		return s.complianceRows(ctx, filters)
	case domain.DownloadCampaigns:
		return s.campaignRows(ctx, filters)
	case domain.DownloadPartners:
		return s.partnerRows(ctx, filters)
	case domain.DownloadMonthlySummary:
		return s.monthlySummaryRows(ctx, filters)
	case domain.DownloadLoanPortfolio:
		return s.loanPortfolioRows(ctx)
	case domain.DownloadMemberStatement:
		return s.memberStatementRows(ctx, filters)
	default:
		return nil, nil, fmt.Errorf("unknown download type %q", downloadType)
	}
}

// applyPeriod adds a date range filter on a timestamp column
func applyPeriod(query *gorm.DB, column string, filters ExportFilters) *gorm.DB {
	if filters.From != nil {
		query = query.Where(column+" >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where(column+" <= ?", *filters.To)
	}
	return query
}

// period returns the filter range, defaulting to the current calendar
// month for the report-backed producers.
func period(filters ExportFilters) (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	if filters.From != nil {
		start = *filters.From
	}
	if filters.To != nil {
		end = *filters.To
	}
	return start, end
}

func (s *ExportService) memberRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	query := s.db.WithContext(ctx).Model(&models.Member{})
	switch filters.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR phone LIKE ? OR email LIKE ? OR member_no LIKE ?",
			like, like, like, like, like)
	}
	query = applyPeriod(query, "created_at", filters)

	var members []models.Member
	if err := query.Order("created_at DESC").Find(&members).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"member_no", "full_name", "phone", "email", "national_id", "join_date", "is_active", "role", "created_at"}
	rows := make([]export.Row, 0, len(members))
	for _, m := range members {
		rows = append(rows, export.Row{
			"member_no":   m.MemberNo,
			"full_name":   m.FullName(),
			"phone":       m.Phone,
			"email":       m.Email,
			"national_id": m.NationalID,
			"join_date":   m.JoinDate,
			"is_active":   m.IsActive,
			"role":        m.Role,
			"created_at":  m.CreatedAt,
		})
	}
	return columns, rows, nil
}

// The joined member name columns are declared directly on each result
// struct: GORM's schema parser skips unexported fields, so an embedded
// unexported struct would never receive the scanned values.
func displayName(first, last string) string {
	return first + " " + last
}

func (s *ExportService) savingsRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	var results []struct {
		FirstName   string
		LastName    string
		AccountNo   string
		MemberNo    string
		AccountType string
		Balance     float64
		IsActive    bool
		CreatedAt   time.Time
	}

	query := s.db.WithContext(ctx).
		Table("savings_accounts").
		Select(`savings_accounts.account_no, savings_accounts.account_type,
			savings_accounts.balance, savings_accounts.is_active, savings_accounts.created_at,
			members.member_no, members.first_name, members.last_name`).
		Joins("LEFT JOIN members ON members.id = savings_accounts.member_id")
	if filters.MemberID != 0 {
		query = query.Where("savings_accounts.member_id = ?", filters.MemberID)
	}
	query = applyPeriod(query, "savings_accounts.created_at", filters)

	if err := query.Order("savings_accounts.created_at DESC").Scan(&results).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"account_no", "member_no", "member_name", "account_type", "balance", "is_active", "created_at"}
	rows := make([]export.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, export.Row{
			"account_no":   r.AccountNo,
			"member_no":    r.MemberNo,
			"member_name":  displayName(r.FirstName, r.LastName),
			"account_type": r.AccountType,
			"balance":      r.Balance,
			"is_active":    r.IsActive,
			"created_at":   r.CreatedAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) loanRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	var results []struct {
		FirstName         string
		LastName          string
		LoanNo            string
		MemberNo          string
		Principal         float64
		InterestRate      float64
		TotalAmount       float64
		PaidAmount        float64
		Balance           float64
		TermMonths        int
		InstallmentAmount float64
		Status            string
		DueDate           *time.Time
		CreatedAt         time.Time
	}

	query := s.db.WithContext(ctx).
		Table("loans").
		Select(`loans.loan_no, loans.principal, loans.interest_rate, loans.total_amount,
			loans.paid_amount, loans.balance, loans.term_months, loans.installment_amount,
			loans.status, loans.due_date, loans.created_at,
			members.member_no, members.first_name, members.last_name`).
		Joins("LEFT JOIN members ON members.id = loans.member_id")
	if filters.Status != "" {
		query = query.Where("loans.status = ?", filters.Status)
	}
	if filters.MemberID != 0 {
		query = query.Where("loans.member_id = ?", filters.MemberID)
	}
	query = applyPeriod(query, "loans.created_at", filters)

	if err := query.Order("loans.created_at DESC").Scan(&results).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"loan_no", "member_no", "member_name", "principal", "interest_rate", "total_amount", "paid_amount", "balance", "term_months", "installment_amount", "status", "due_date", "created_at"}
	rows := make([]export.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, export.Row{
			"loan_no":            r.LoanNo,
			"member_no":          r.MemberNo,
			"member_name":        displayName(r.FirstName, r.LastName),
			"principal":          r.Principal,
			"interest_rate":      r.InterestRate,
			"total_amount":       r.TotalAmount,
			"paid_amount":        r.PaidAmount,
			"balance":            r.Balance,
			"term_months":        r.TermMonths,
			"installment_amount": r.InstallmentAmount,
			"status":             r.Status,
			"due_date":           r.DueDate,
			"created_at":         r.CreatedAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) transactionRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	var results []struct {
		FirstName       string
		LastName        string
		TransactionNo   string
		MemberNo        string
		TransactionType string
		Amount          float64
		BalanceAfter    float64
		Description     string
		TransactionDate time.Time
	}

	query := s.db.WithContext(ctx).
		Table("transactions").
		Select(`transactions.transaction_no, transactions.transaction_type, transactions.amount,
			transactions.balance_after, transactions.description, transactions.transaction_date,
			members.member_no, members.first_name, members.last_name`).
		Joins("LEFT JOIN members ON members.id = transactions.member_id")
	if filters.Status != "" {
		query = query.Where("transactions.transaction_type = ?", filters.Status)
	}
	if filters.MemberID != 0 {
		query = query.Where("transactions.member_id = ?", filters.MemberID)
	}
	query = applyPeriod(query, "transactions.transaction_date", filters)

	if err := query.Order("transactions.transaction_date DESC").Scan(&results).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"transaction_no", "member_no", "member_name", "transaction_type", "amount", "balance_after", "description", "transaction_date"}
	rows := make([]export.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, export.Row{
			"transaction_no":   r.TransactionNo,
			"member_no":        r.MemberNo,
			"member_name":      displayName(r.FirstName, r.LastName),
			"transaction_type": r.TransactionType,
			"amount":           r.Amount,
			"balance_after":    r.BalanceAfter,
			"description":      r.Description,
			"transaction_date": r.TransactionDate,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) penaltyRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	var results []struct {
		FirstName string
		LastName  string
		MemberNo  string
		LoanNo    string
		Amount    float64
		Reason    string
		Status    string
		CreatedAt time.Time
	}

	query := s.db.WithContext(ctx).
		Table("penalties").
		Select(`penalties.amount, penalties.reason, penalties.status, penalties.created_at,
			members.member_no, members.first_name, members.last_name, loans.loan_no`).
		Joins("LEFT JOIN members ON members.id = penalties.member_id").
		Joins("LEFT JOIN loans ON loans.id = penalties.loan_id")
	if filters.Status != "" {
		query = query.Where("penalties.status = ?", filters.Status)
	}
	if filters.MemberID != 0 {
		query = query.Where("penalties.member_id = ?", filters.MemberID)
	}
	query = applyPeriod(query, "penalties.created_at", filters)

	if err := query.Order("penalties.created_at DESC").Scan(&results).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"member_no", "member_name", "loan_no", "amount", "reason", "status", "created_at"}
	rows := make([]export.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, export.Row{
			"member_no":   r.MemberNo,
			"member_name": displayName(r.FirstName, r.LastName),
			"loan_no":     r.LoanNo,
			"amount":      r.Amount,
			"reason":      r.Reason,
			"status":      r.Status,
			"created_at":  r.CreatedAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) creditCheckRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	var results []struct {
		FirstName  string
		LastName   string
		MemberNo   string
		LoanAmount float64
		Score      int
		Status     string
		CheckedAt  time.Time
	}

	query := s.db.WithContext(ctx).
		Table("credit_checks").
		Select(`credit_checks.loan_amount, credit_checks.score, credit_checks.status,
			credit_checks.checked_at,
			members.member_no, members.first_name, members.last_name`).
		Joins("LEFT JOIN members ON members.id = credit_checks.member_id")
	if filters.Status != "" {
		query = query.Where("credit_checks.status = ?", filters.Status)
	}
	if filters.MemberID != 0 {
		query = query.Where("credit_checks.member_id = ?", filters.MemberID)
	}
	query = applyPeriod(query, "credit_checks.checked_at", filters)

	if err := query.Order("credit_checks.checked_at DESC").Scan(&results).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"member_no", "member_name", "loan_amount", "score", "status", "checked_at"}
	rows := make([]export.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, export.Row{
			"member_no":   r.MemberNo,
			"member_name": displayName(r.FirstName, r.LastName),
			"loan_amount": r.LoanAmount,
			"score":       r.Score,
			"status":      r.Status,
			"checked_at":  r.CheckedAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) guarantorRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	var results []struct {
		FirstName        string
		LastName         string
		MemberNo         string
		LoanNo           string
		GuaranteedAmount float64
		Status           string
		CreatedAt        time.Time
	}

	query := s.db.WithContext(ctx).
		Table("guarantors").
		Select(`guarantors.guaranteed_amount, guarantors.status, guarantors.created_at,
			members.member_no, members.first_name, members.last_name, loans.loan_no`).
		Joins("LEFT JOIN members ON members.id = guarantors.guarantor_member_id").
		Joins("LEFT JOIN loans ON loans.id = guarantors.loan_id")
	if filters.Status != "" {
		query = query.Where("guarantors.status = ?", filters.Status)
	}
	if filters.MemberID != 0 {
		query = query.Where("guarantors.guarantor_member_id = ?", filters.MemberID)
	}
	query = applyPeriod(query, "guarantors.created_at", filters)

	if err := query.Order("guarantors.created_at DESC").Scan(&results).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"loan_no", "guarantor_member_no", "guarantor_name", "guaranteed_amount", "status", "created_at"}
	rows := make([]export.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, export.Row{
			"loan_no":             r.LoanNo,
			"guarantor_member_no": r.MemberNo,
			"guarantor_name":      displayName(r.FirstName, r.LastName),
			"guaranteed_amount":   r.GuaranteedAmount,
			"status":              r.Status,
			"created_at":          r.CreatedAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) reminderRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	var results []struct {
		FirstName    string
		LastName     string
		MemberNo     string
		LoanNo       string
		ReminderType string
		Message      string
		ScheduledFor time.Time
		Status       string
		SentAt       *time.Time
	}

	query := s.db.WithContext(ctx).
		Table("reminders").
		Select(`reminders.reminder_type, reminders.message, reminders.scheduled_for,
			reminders.status, reminders.sent_at,
			members.member_no, members.first_name, members.last_name, loans.loan_no`).
		Joins("LEFT JOIN members ON members.id = reminders.member_id").
		Joins("LEFT JOIN loans ON loans.id = reminders.loan_id")
	if filters.Status != "" {
		query = query.Where("reminders.status = ?", filters.Status)
	}
	if filters.MemberID != 0 {
		query = query.Where("reminders.member_id = ?", filters.MemberID)
	}
	query = applyPeriod(query, "reminders.scheduled_for", filters)

	if err := query.Order("reminders.scheduled_for DESC").Scan(&results).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"member_no", "member_name", "loan_no", "reminder_type", "message", "scheduled_for", "status", "sent_at"}
	rows := make([]export.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, export.Row{
			"member_no":     r.MemberNo,
			"member_name":   displayName(r.FirstName, r.LastName),
			"loan_no":       r.LoanNo,
			"reminder_type": r.ReminderType,
			"message":       r.Message,
			"scheduled_for": r.ScheduledFor,
			"status":        r.Status,
			"sent_at":       r.SentAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) auditLogRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	query := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if filters.Status != "" {
		query = query.Where("action = ?", filters.Status)
	}
	if filters.MemberID != 0 {
		query = query.Where("member_id = ?", filters.MemberID)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("action LIKE ? OR entity LIKE ? OR details LIKE ?", like, like, like)
	}
	query = applyPeriod(query, "created_at", filters)

	var logs []models.AuditLog
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"id", "member_id", "action", "entity", "entity_id", "details", "created_at"}
	rows := make([]export.Row, 0, len(logs))
	for _, l := range logs {
		var memberID interface{}
		if l.MemberID != nil {
			memberID = *l.MemberID
		}
		rows = append(rows, export.Row{
			"id":         l.ID,
			"member_id":  memberID,
			"action":     l.Action,
			"entity":     l.Entity,
			"entity_id":  l.EntityID,
			"details":    l.Details,
			"created_at": l.CreatedAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) complianceRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	query := s.db.WithContext(ctx).Model(&models.ComplianceRecord{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.MemberID != 0 {
		query = query.Where("member_id = ?", filters.MemberID)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("requirement LIKE ? OR notes LIKE ?", like, like)
	}
	query = applyPeriod(query, "created_at", filters)

	var records []models.ComplianceRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"id", "member_id", "requirement", "status", "due_date", "notes", "created_at"}
	rows := make([]export.Row, 0, len(records))
	for _, r := range records {
		var memberID interface{}
		if r.MemberID != nil {
			memberID = *r.MemberID
		}
		rows = append(rows, export.Row{
			"id":          r.ID,
			"member_id":   memberID,
			"requirement": r.Requirement,
			"status":      r.Status,
			"due_date":    r.DueDate,
			"notes":       r.Notes,
			"created_at":  r.CreatedAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) campaignRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	query := s.db.WithContext(ctx).Model(&models.Campaign{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	query = applyPeriod(query, "created_at", filters)

	var campaigns []models.Campaign
	if err := query.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"name", "description", "target_amount", "raised_amount", "start_date", "end_date", "status", "created_at"}
	rows := make([]export.Row, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, export.Row{
			"name":          c.Name,
			"description":   c.Description,
			"target_amount": c.TargetAmount,
			"raised_amount": c.RaisedAmount,
			"start_date":    c.StartDate,
			"end_date":      c.EndDate,
			"status":        c.Status,
			"created_at":    c.CreatedAt,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) partnerRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	query := s.db.WithContext(ctx).Model(&models.Partner{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR partner_type LIKE ?", like, like)
	}
	query = applyPeriod(query, "created_at", filters)

	var partners []models.Partner
	if err := query.Order("created_at DESC").Find(&partners).Error; err != nil {
		return nil, nil, err
	}

	columns := []string{"name", "partner_type", "contact_email", "contact_phone", "status", "created_at"}
	rows := make([]export.Row, 0, len(partners))
	for _, p := range partners {
		rows = append(rows, export.Row{
			"name":          p.Name,
			"partner_type":  p.PartnerType,
			"contact_email": p.ContactEmail,
			"contact_phone": p.ContactPhone,
			"status":        p.Status,
			"created_at":    p.CreatedAt,
		})
	}
	return columns, rows, nil
}

// monthlySummaryRows flattens the summary report into one row per
// metric so the CSV reads as a name/value sheet.
func (s *ExportService) monthlySummaryRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	start, end := period(filters)
	summary, err := s.reports.GenerateMonthlySummary(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}

	columns := []string{"metric", "value"}
	rows := []export.Row{
		{"metric": "period_start", "value": summary.PeriodStart},
		{"metric": "period_end", "value": summary.PeriodEnd},
		{"metric": "total_members", "value": summary.TotalMembers},
		{"metric": "active_members", "value": summary.ActiveMembers},
		{"metric": "new_members", "value": summary.NewMembers},
		{"metric": "total_savings_balance", "value": summary.TotalSavingsBalance},
		{"metric": "loans_disbursed", "value": summary.LoansDisbursed},
		{"metric": "repayments_collected", "value": summary.RepaymentsCollected},
		{"metric": "outstanding_balance", "value": summary.OutstandingBalance},
	}
	for _, b := range summary.TransactionsByType {
		rows = append(rows, export.Row{
			"metric": "txn_" + b.TransactionType + "_amount",
			"value":  b.Amount,
		})
		rows = append(rows, export.Row{
			"metric": "txn_" + b.TransactionType + "_count",
			"value":  b.Count,
		})
	}
	return columns, rows, nil
}

func (s *ExportService) loanPortfolioRows(ctx context.Context) ([]string, []export.Row, error) {
	portfolio, err := s.reports.GenerateLoanPortfolio(ctx)
	if err != nil {
		return nil, nil, err
	}

	columns := []string{"loan_no", "member_no", "member_name", "principal", "paid_amount", "balance", "status", "disbursed_at", "due_date"}
	rows := make([]export.Row, 0, len(portfolio.Loans))
	for _, l := range portfolio.Loans {
		rows = append(rows, export.Row{
			"loan_no":      l.LoanNo,
			"member_no":    l.MemberNo,
			"member_name":  l.MemberName,
			"principal":    l.Principal,
			"paid_amount":  l.PaidAmount,
			"balance":      l.Balance,
			"status":       l.Status,
			"disbursed_at": l.DisbursedAt,
			"due_date":     l.DueDate,
		})
	}
	return columns, rows, nil
}

// memberStatementRows exports one member's period transactions.
// MemberID is required for this dataset.
func (s *ExportService) memberStatementRows(ctx context.Context, filters ExportFilters) ([]string, []export.Row, error) {
	if filters.MemberID == 0 {
		return nil, nil, domain.ErrMemberNotFound
	}

	start, end := period(filters)
	statement, err := s.reports.GenerateMemberStatement(ctx, filters.MemberID, start, end)
	if err != nil {
		return nil, nil, err
	}

	columns := []string{"member_no", "member_name", "transaction_no", "transaction_type", "amount", "balance_after", "description", "transaction_date"}
	rows := make([]export.Row, 0, len(statement.Transactions))
	for _, t := range statement.Transactions {
		rows = append(rows, export.Row{
			"member_no":        statement.Member.MemberNo,
			"member_name":      statement.Member.FullName,
			"transaction_no":   t.TransactionNo,
			"transaction_type": t.TransactionType,
			"amount":           t.Amount,
			"balance_after":    t.BalanceAfter,
			"description":      t.Description,
			"transaction_date": t.TransactionDate,
		})
	}
	return columns, rows, nil
}
