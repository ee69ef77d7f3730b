package domain

// Role represents a member role in the system
type Role string

const (
	RoleMember  Role = "MEMBER"
	RoleOfficer Role = "OFFICER"
	RoleAdmin   Role = "ADMIN"
)

// Action identifies a back-office operation dispatched through POST /sacco.
// The dispatch table lives in the sacco handler; unknown actions are
// rejected with the list of valid ones.
type Action string

const (
	ActionCreditCheck          Action = "credit_check"
	ActionQuickLoanApproval    Action = "quick_loan_approval"
	ActionDisburseLoan         Action = "disburse_loan"
	ActionRecordDeposit        Action = "record_deposit"
	ActionRecordWithdrawal     Action = "record_withdrawal"
	ActionRecordRepayment      Action = "record_repayment"
	ActionApplyLatePenalty     Action = "apply_late_penalty"
	ActionScheduleReminder     Action = "schedule_payment_reminder"
	ActionMonitorTransactions  Action = "monitor_transactions"
	ActionTrackCompliance      Action = "track_compliance"
	ActionAddComplianceRecord  Action = "add_compliance_record"
	ActionRegisterCampaign     Action = "register_campaign"
	ActionRegisterPartner      Action = "register_partner"
	ActionRegisterResource     Action = "register_resource"
	ActionRegisterGuarantor    Action = "register_guarantor"
	ActionRequestRestructuring Action = "request_restructuring"
	ActionApproveRestructuring Action = "approve_restructuring"
	ActionGetSetting           Action = "get_setting"
	ActionSetSetting           Action = "set_setting"
	ActionCreateBackup         Action = "create_backup"
)

// AllActions lists every dispatchable action, in the order they are
// reported back on an unknown-action request.
func AllActions() []Action {
	return []Action{
		ActionCreditCheck,
		ActionQuickLoanApproval,
		ActionDisburseLoan,
		ActionRecordDeposit,
		ActionRecordWithdrawal,
		ActionRecordRepayment,
		ActionApplyLatePenalty,
		ActionScheduleReminder,
		ActionMonitorTransactions,
		ActionTrackCompliance,
		ActionAddComplianceRecord,
		ActionRegisterCampaign,
		ActionRegisterPartner,
		ActionRegisterResource,
		ActionRegisterGuarantor,
		ActionRequestRestructuring,
		ActionApproveRestructuring,
		ActionGetSetting,
		ActionSetSetting,
		ActionCreateBackup,
	}
}

// DownloadType identifies an exportable dataset
type DownloadType string

const (
	DownloadMembers         DownloadType = "members"
	DownloadSavings         DownloadType = "savings"
	DownloadLoans           DownloadType = "loans"
	DownloadTransactions    DownloadType = "transactions"
	DownloadPenalties       DownloadType = "penalties"
	DownloadCreditChecks    DownloadType = "credit_checks"
	DownloadGuarantors      DownloadType = "guarantors"
	DownloadReminders       DownloadType = "reminders"
	DownloadAuditLogs       DownloadType = "audit_logs"
	DownloadCompliance      DownloadType = "compliance"
	DownloadCampaigns       DownloadType = "campaigns"
	DownloadPartners        DownloadType = "partners"
	DownloadMonthlySummary  DownloadType = "monthly_summary"
	DownloadLoanPortfolio   DownloadType = "loan_portfolio"
	DownloadMemberStatement DownloadType = "member_statement"
)

// AllDownloadTypes lists every exportable dataset
func AllDownloadTypes() []DownloadType {
	return []DownloadType{
		DownloadMembers,
		DownloadSavings,
		DownloadLoans,
		DownloadTransactions,
		DownloadPenalties,
		DownloadCreditChecks,
		DownloadGuarantors,
		DownloadReminders,
		DownloadAuditLogs,
		DownloadCompliance,
		DownloadCampaigns,
		DownloadPartners,
		DownloadMonthlySummary,
		DownloadLoanPortfolio,
		DownloadMemberStatement,
	}
}

// ReportType identifies a report engine operation
type ReportType string

const (
	ReportMonthlySummary  ReportType = "monthly_summary"
	ReportLoanPortfolio   ReportType = "loan_portfolio"
	ReportMemberStatement ReportType = "member_statement"
	ReportEndOfMonth      ReportType = "end_of_month"
)
