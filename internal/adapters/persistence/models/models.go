package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Members & Auth
// ============================================================

// Member represents the members table
type Member struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	MemberNo         string         `gorm:"uniqueIndex;size:20;not null" json:"member_no"`
	FirstName        string         `gorm:"size:50;not null" json:"first_name"`
	LastName         string         `gorm:"size:50;not null" json:"last_name"`
	Phone            string         `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Email            string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	NationalID       string         `gorm:"uniqueIndex;size:20;not null" json:"national_id"`
	Password         string         `gorm:"size:255;not null" json:"-"`
	JoinDate         time.Time      `gorm:"not null" json:"join_date"`
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`
	TwoFactorEnabled bool           `gorm:"default:false" json:"two_factor_enabled"`
	TwoFactorSecret  string         `gorm:"size:64" json:"-"`
	Role             string         `gorm:"size:20;default:'MEMBER'" json:"role"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string {
	return "members"
}

// FullName returns the member display name
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// MemberResponse DTO
type MemberResponse struct {
	ID        uint      `json:"id"`
	MemberNo  string    `json:"member_no"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	JoinDate  time.Time `json:"join_date"`
	IsActive  bool      `json:"is_active"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		MemberNo:  m.MemberNo,
		FullName:  m.FullName(),
		Phone:     m.Phone,
		Email:     m.Email,
		JoinDate:  m.JoinDate,
		IsActive:  m.IsActive,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	MemberID  uint       `gorm:"index;not null" json:"member_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Member    Member     `gorm:"foreignKey:MemberID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Savings & Loans
// ============================================================

// Savings account types
const (
	SavingsTypeOrdinary  = "ordinary"
	SavingsTypeFixed     = "fixed"
	SavingsTypeVoluntary = "voluntary"
)

// SavingsAccount represents savings_accounts table
type SavingsAccount struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AccountNo   string    `gorm:"uniqueIndex;size:30;not null" json:"account_no"`
	MemberID    uint      `gorm:"index;not null" json:"member_id"`
	AccountType string    `gorm:"size:20;not null;default:'ordinary'" json:"account_type"`
	Balance     float64   `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (SavingsAccount) TableName() string {
	return "savings_accounts"
}

// Loan statuses
const (
	LoanStatusPending    = "pending"
	LoanStatusApproved   = "approved"
	LoanStatusDisbursed  = "disbursed"
	LoanStatusFullyPaid  = "fully_paid"
	LoanStatusDefaulted  = "defaulted"
	LoanStatusWrittenOff = "written_off"
)

// Loan represents the loans table.
// Balance = TotalAmount - PaidAmount is maintained by the writing
// service, not by a database constraint.
type Loan struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	LoanNo            string     `gorm:"uniqueIndex;size:30;not null" json:"loan_no"`
	MemberID          uint       `gorm:"index;not null" json:"member_id"`
	Principal         float64    `gorm:"type:decimal(15,2);not null" json:"principal"`
	InterestRate      float64    `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	InterestAmount    float64    `gorm:"type:decimal(15,2);not null" json:"interest_amount"`
	TotalAmount       float64    `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaidAmount        float64    `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	Balance           float64    `gorm:"type:decimal(15,2);not null" json:"balance"`
	TermMonths        int        `gorm:"not null" json:"term_months"`
	InstallmentAmount float64    `gorm:"type:decimal(15,2);not null" json:"installment_amount"`
	Status            string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Purpose           string     `gorm:"type:text" json:"purpose"`
	Guarantor1ID      *uint      `json:"guarantor1_id"`
	Guarantor2ID      *uint      `json:"guarantor2_id"`
	DisbursedAt       *time.Time `gorm:"index" json:"disbursed_at"`
	DueDate           *time.Time `gorm:"index" json:"due_date"`
	CreatedAt         time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Member     *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Guarantor1 *Member `gorm:"foreignKey:Guarantor1ID" json:"guarantor1,omitempty"`
	Guarantor2 *Member `gorm:"foreignKey:Guarantor2ID" json:"guarantor2,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanResponse DTO
type LoanResponse struct {
	ID                uint       `json:"id"`
	LoanNo            string     `json:"loan_no"`
	MemberID          uint       `json:"member_id"`
	MemberName        string     `json:"member_name,omitempty"`
	Principal         float64    `json:"principal"`
	InterestRate      float64    `json:"interest_rate"`
	TotalAmount       float64    `json:"total_amount"`
	PaidAmount        float64    `json:"paid_amount"`
	Balance           float64    `json:"balance"`
	TermMonths        int        `json:"term_months"`
	InstallmentAmount float64    `json:"installment_amount"`
	Status            string     `json:"status"`
	Purpose           string     `json:"purpose"`
	DueDate           *time.Time `json:"due_date"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:                l.ID,
		LoanNo:            l.LoanNo,
		MemberID:          l.MemberID,
		Principal:         l.Principal,
		InterestRate:      l.InterestRate,
		TotalAmount:       l.TotalAmount,
		PaidAmount:        l.PaidAmount,
		Balance:           l.Balance,
		TermMonths:        l.TermMonths,
		InstallmentAmount: l.InstallmentAmount,
		Status:            l.Status,
		Purpose:           l.Purpose,
		DueDate:           l.DueDate,
		CreatedAt:         l.CreatedAt,
	}
	if l.Member != nil {
		resp.MemberName = l.Member.FullName()
	}
	return resp
}

// Transaction types
const (
	TxnTypeDeposit          = "deposit"
	TxnTypeWithdrawal       = "withdrawal"
	TxnTypeLoanDisbursement = "loan_disbursement"
	TxnTypeLoanRepayment    = "loan_repayment"
	TxnTypePenalty          = "penalty"
	TxnTypeFee              = "fee"
)

// Transaction is an append-only ledger entry. A reversal flag exists
// but nothing currently reverses state.
type Transaction struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TransactionNo    string    `gorm:"uniqueIndex;size:30;not null" json:"transaction_no"`
	MemberID         uint      `gorm:"index;not null" json:"member_id"`
	SavingsAccountID *uint     `gorm:"index" json:"savings_account_id"`
	LoanID           *uint     `gorm:"index" json:"loan_id"`
	TransactionType  string    `gorm:"size:30;not null;index" json:"transaction_type"`
	Amount           float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	BalanceAfter     float64   `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	Description      string    `gorm:"size:255" json:"description"`
	Reversed         bool      `gorm:"default:false" json:"reversed"`
	TransactionDate  time.Time `gorm:"not null;index" json:"transaction_date"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ============================================================
// Credit & Risk
// ============================================================

// Credit check statuses
const (
	CreditCheckPassed = "passed"
	CreditCheckFailed = "failed"
)

// CreditCheck represents credit_checks table
type CreditCheck struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MemberID   uint      `gorm:"index;not null" json:"member_id"`
	LoanAmount float64   `gorm:"type:decimal(15,2);not null" json:"loan_amount"`
	Score      int       `gorm:"not null" json:"score"`
	Status     string    `gorm:"size:20;not null;index" json:"status"`
	Details    string    `gorm:"type:text" json:"details"`
	CheckedAt  time.Time `gorm:"not null;index" json:"checked_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (CreditCheck) TableName() string {
	return "credit_checks"
}

// Guarantor represents guarantors table (a member backing another member's loan)
type Guarantor struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	LoanID            uint      `gorm:"index;not null" json:"loan_id"`
	GuarantorMemberID uint      `gorm:"index;not null" json:"guarantor_member_id"`
	GuaranteedAmount  float64   `gorm:"type:decimal(15,2);not null" json:"guaranteed_amount"`
	Status            string    `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Loan            *Loan   `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
	GuarantorMember *Member `gorm:"foreignKey:GuarantorMemberID" json:"guarantor_member,omitempty"`
}

func (Guarantor) TableName() string {
	return "guarantors"
}

// Penalty statuses
const (
	PenaltyStatusPending = "pending"
	PenaltyStatusPaid    = "paid"
	PenaltyStatusWaived  = "waived"
)

// Penalty represents penalties table
type Penalty struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"index;not null" json:"member_id"`
	LoanID    uint      `gorm:"index;not null" json:"loan_id"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Reason    string    `gorm:"size:255" json:"reason"`
	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Loan   *Loan   `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

func (Penalty) TableName() string {
	return "penalties"
}

// Reminder statuses
const (
	ReminderStatusScheduled = "scheduled"
	ReminderStatusSent      = "sent"
	ReminderStatusCancelled = "cancelled"
)

// Reminder represents reminders table
type Reminder struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	MemberID     uint       `gorm:"index;not null" json:"member_id"`
	LoanID       uint       `gorm:"index;not null" json:"loan_id"`
	ReminderType string     `gorm:"size:30;not null;default:'payment_due'" json:"reminder_type"`
	Message      string     `gorm:"size:255" json:"message"`
	ScheduledFor time.Time  `gorm:"not null;index" json:"scheduled_for"`
	Status       string     `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	SentAt       *time.Time `json:"sent_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Reminder) TableName() string {
	return "reminders"
}

// ============================================================
// Back-office Records
// ============================================================

// AuditLog represents audit_logs table
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  *uint     `gorm:"index" json:"member_id"`
	Action    string    `gorm:"size:50;not null;index" json:"action"`
	Entity    string    `gorm:"size:50" json:"entity"`
	EntityID  uint      `json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:50" json:"ip_address"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Compliance statuses
const (
	ComplianceStatusCompliant    = "compliant"
	ComplianceStatusNonCompliant = "non_compliant"
	ComplianceStatusPending      = "pending"
)

// ComplianceRecord represents compliance_records table
type ComplianceRecord struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	MemberID    *uint      `gorm:"index" json:"member_id"`
	Requirement string     `gorm:"size:100;not null" json:"requirement"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	Notes       string     `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ComplianceRecord) TableName() string {
	return "compliance_records"
}

// Campaign represents campaigns table
type Campaign struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	TargetAmount float64    `gorm:"type:decimal(15,2);not null;default:0" json:"target_amount"`
	RaisedAmount float64    `gorm:"type:decimal(15,2);not null;default:0" json:"raised_amount"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Status       string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// Partner represents partners table
type Partner struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	PartnerType  string    `gorm:"size:50" json:"partner_type"`
	ContactEmail string    `gorm:"size:100" json:"contact_email"`
	ContactPhone string    `gorm:"size:20" json:"contact_phone"`
	Status       string    `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Partner) TableName() string {
	return "partners"
}

// Resource represents resources table (member education material etc.)
type Resource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Category    string    `gorm:"size:50;index" json:"category"`
	URL         string    `gorm:"size:255" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Resource) TableName() string {
	return "resources"
}

// Restructuring statuses
const (
	RestructuringStatusPending  = "pending"
	RestructuringStatusApproved = "approved"
	RestructuringStatusRejected = "rejected"
)

// LoanRestructuring represents loan_restructurings table
type LoanRestructuring struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	LoanID         uint       `gorm:"index;not null" json:"loan_id"`
	MemberID       uint       `gorm:"index;not null" json:"member_id"`
	OldTermMonths  int        `gorm:"not null" json:"old_term_months"`
	NewTermMonths  int        `gorm:"not null" json:"new_term_months"`
	OldInstallment float64    `gorm:"type:decimal(15,2);not null" json:"old_installment"`
	NewInstallment float64    `gorm:"type:decimal(15,2);not null" json:"new_installment"`
	Reason         string     `gorm:"size:255" json:"reason"`
	Status         string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApprovedAt     *time.Time `json:"approved_at"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

func (LoanRestructuring) TableName() string {
	return "loan_restructurings"
}

// Backup represents backups table (daily backup records)
type Backup struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BackupType string    `gorm:"size:30;not null;default:'full'" json:"backup_type"`
	Location   string    `gorm:"size:255" json:"location"`
	SizeBytes  int64     `json:"size_bytes"`
	Status     string    `gorm:"size:20;not null;default:'completed'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Backup) TableName() string {
	return "backups"
}

// Setting represents settings table (key-value)
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100;not null;column:setting_key" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Report statuses
const (
	ReportStatusCompleted = "completed"
)

// Report represents saved reports table
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReportType  string    `gorm:"size:50;not null;index" json:"report_type"`
	PeriodStart time.Time `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null" json:"period_end"`
	Data        string    `gorm:"type:longtext" json:"data"`
	Status      string    `gorm:"size:20;not null;default:'completed';index" json:"status"`
	GeneratedAt time.Time `gorm:"not null" json:"generated_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&RefreshToken{},
		&SavingsAccount{},
		&Loan{},
		&Transaction{},
		&CreditCheck{},
		&Guarantor{},
		&Penalty{},
		&Reminder{},
		&AuditLog{},
		&ComplianceRecord{},
		&Campaign{},
		&Partner{},
		&Resource{},
		&LoanRestructuring{},
		&Backup{},
		&Setting{},
		&Report{},
	)
}
