package handlers

import (
	"errors"

	"umoja-sacco/internal/core/domain"
	"umoja-sacco/internal/core/services"
	"umoja-sacco/internal/pkg/response"
	"umoja-sacco/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// SaccoHandler dispatches the one-shot back-office operations. Every
// request carries an "action" field naming the operation; the rest of
// the body is that operation's input.
type SaccoHandler struct {
	loans         *services.LoanService
	savings       *services.SavingsService
	penalties     *services.PenaltyService
	monitoring    *services.MonitoringService
	restructuring *services.RestructuringService
	outreach      *services.OutreachService
	settings      *services.SettingsService

	dispatch map[domain.Action]fiber.Handler
}

// NewSaccoHandler creates the handler and builds its dispatch table
func NewSaccoHandler(
	loans *services.LoanService,
	savings *services.SavingsService,
	penalties *services.PenaltyService,
	monitoring *services.MonitoringService,
	restructuring *services.RestructuringService,
	outreach *services.OutreachService,
	settings *services.SettingsService,
) *SaccoHandler {
	h := &SaccoHandler{
		loans:         loans,
		savings:       savings,
		penalties:     penalties,
		monitoring:    monitoring,
		restructuring: restructuring,
		outreach:      outreach,
		settings:      settings,
	}

	h.dispatch = map[domain.Action]fiber.Handler{
		domain.ActionCreditCheck:          h.creditCheck,
		domain.ActionQuickLoanApproval:    h.quickLoanApproval,
		domain.ActionDisburseLoan:         h.disburseLoan,
		domain.ActionRecordDeposit:        h.recordDeposit,
		domain.ActionRecordWithdrawal:     h.recordWithdrawal,
		domain.ActionRecordRepayment:      h.recordRepayment,
		domain.ActionApplyLatePenalty:     h.applyLatePenalty,
		domain.ActionScheduleReminder:     h.scheduleReminder,
		domain.ActionMonitorTransactions:  h.monitorTransactions,
		domain.ActionTrackCompliance:      h.trackCompliance,
		domain.ActionAddComplianceRecord:  h.addComplianceRecord,
		domain.ActionRegisterCampaign:     h.registerCampaign,
		domain.ActionRegisterPartner:      h.registerPartner,
		domain.ActionRegisterResource:     h.registerResource,
		domain.ActionRegisterGuarantor:    h.registerGuarantor,
		domain.ActionRequestRestructuring: h.requestRestructuring,
		domain.ActionApproveRestructuring: h.approveRestructuring,
		domain.ActionGetSetting:           h.getSetting,
		domain.ActionSetSetting:           h.setSetting,
		domain.ActionCreateBackup:         h.createBackup,
	}

	return h
}

// Dispatch routes a request to its action handler
// @Summary Execute a back-office operation
// @Description Dispatch one of the named SACCO operations. The body carries an "action" field plus that action's input fields.
// @Tags Sacco
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /sacco [post]
func (h *SaccoHandler) Dispatch(c *fiber.Ctx) error {
	var req struct {
		Action domain.Action `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	handler, ok := h.dispatch[req.Action]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":       false,
			"error":         "Unknown action",
			"valid_actions": domain.AllActions(),
		})
	}

	return handler(c)
}

// MyLoans lists the authenticated member's loans
// @Summary List my loans
// @Tags Sacco
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /loans/me [get]
func (h *SaccoHandler) MyLoans(c *fiber.Ctx) error {
	memberID, ok := c.Locals("memberID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	loans, err := h.loans.GetMemberLoans(c.Context(), memberID)
	if err != nil {
		return saccoError(c, err)
	}

	out := make([]interface{}, 0, len(loans))
	for _, loan := range loans {
		out = append(out, loan.ToResponse())
	}
	return response.Success(c, "Loans retrieved", out)
}

// ListResources serves the read-only back-office views
// @Summary List a back-office resource
// @Description Read-only views over campaigns, compliance records or transaction monitoring
// @Tags Sacco
// @Produce json
// @Param resource query string true "Resource name" Enums(campaigns, compliance, monitoring)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /sacco [get]
func (h *SaccoHandler) ListResources(c *fiber.Ctx) error {
	switch c.Query("resource") {
	case "campaigns":
		campaigns, err := h.outreach.ListCampaigns(c.Context())
		if err != nil {
			return saccoError(c, err)
		}
		return response.Success(c, "Campaigns retrieved", campaigns)
	case "compliance":
		summary, err := h.monitoring.TrackCompliance(c.Context())
		if err != nil {
			return saccoError(c, err)
		}
		return response.Success(c, "Compliance summary retrieved", summary)
	case "monitoring":
		result, err := h.monitoring.MonitorTransactions(c.Context())
		if err != nil {
			return saccoError(c, err)
		}
		return response.Success(c, "Transaction monitoring completed", result)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":         false,
			"error":           "Unknown resource",
			"valid_resources": []string{"campaigns", "compliance", "monitoring"},
		})
	}
}

// saccoError maps domain errors to HTTP responses. Missing records are
// 404; business-rule rejections are 422; the rest are 500.
func saccoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrSavingsNotFound),
		errors.Is(err, domain.ErrRestructuringNotFound),
		errors.Is(err, domain.ErrSettingNotFound),
		errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrCreditCheckFailed),
		errors.Is(err, domain.ErrExceedsLimit),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInvalidLoanStatus),
		errors.Is(err, domain.ErrLoanNoDueDate),
		errors.Is(err, domain.ErrInvalidState):
		return response.UnprocessableEntity(c, err.Error())
	default:
		return response.InternalServerError(c, "Operation failed")
	}
}

// parseInput parses and validates an action input from the request body
func parseInput(c *fiber.Ctx, input interface{}) error {
	if err := c.BodyParser(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return nil
}

type creditCheckRequest struct {
	MemberID   uint    `json:"member_id" validate:"required"`
	LoanAmount float64 `json:"loan_amount" validate:"required,gt=0"`
}

func (h *SaccoHandler) creditCheck(c *fiber.Ctx) error {
	var req creditCheckRequest
	if err := parseInput(c, &req); err != nil {
		return err
	}

	check, err := h.loans.CreditCheck(c.Context(), req.MemberID, req.LoanAmount)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Success(c, "Credit check completed", check)
}

func (h *SaccoHandler) quickLoanApproval(c *fiber.Ctx) error {
	var input services.QuickLoanApprovalInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	loan, err := h.loans.QuickLoanApproval(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Loan approved", loan.ToResponse())
}

type loanIDRequest struct {
	LoanID uint `json:"loan_id" validate:"required"`
}

func (h *SaccoHandler) disburseLoan(c *fiber.Ctx) error {
	var req loanIDRequest
	if err := parseInput(c, &req); err != nil {
		return err
	}

	loan, err := h.loans.DisburseLoan(c.Context(), req.LoanID)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Success(c, "Loan disbursed", loan.ToResponse())
}

func (h *SaccoHandler) recordDeposit(c *fiber.Ctx) error {
	var input services.SavingsEntryInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	txn, err := h.savings.Deposit(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Deposit recorded", txn)
}

func (h *SaccoHandler) recordWithdrawal(c *fiber.Ctx) error {
	var input services.SavingsEntryInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	txn, err := h.savings.Withdraw(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Withdrawal recorded", txn)
}

func (h *SaccoHandler) recordRepayment(c *fiber.Ctx) error {
	var input services.RecordRepaymentInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	txn, err := h.loans.RecordRepayment(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Repayment recorded", txn)
}

type penaltyRequest struct {
	MemberID uint `json:"member_id" validate:"required"`
	LoanID   uint `json:"loan_id" validate:"required"`
}

func (h *SaccoHandler) applyLatePenalty(c *fiber.Ctx) error {
	var req penaltyRequest
	if err := parseInput(c, &req); err != nil {
		return err
	}

	penalty, err := h.penalties.ApplyLatePenalty(c.Context(), req.MemberID, req.LoanID)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Penalty applied", penalty)
}

type reminderRequest struct {
	MemberID      uint `json:"member_id" validate:"required"`
	LoanID        uint `json:"loan_id" validate:"required"`
	DaysBeforeDue int  `json:"days_before_due" validate:"required,gt=0"`
}

func (h *SaccoHandler) scheduleReminder(c *fiber.Ctx) error {
	var req reminderRequest
	if err := parseInput(c, &req); err != nil {
		return err
	}

	reminder, err := h.penalties.SchedulePaymentReminder(c.Context(), req.MemberID, req.LoanID, req.DaysBeforeDue)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Reminder scheduled", reminder)
}

func (h *SaccoHandler) monitorTransactions(c *fiber.Ctx) error {
	result, err := h.monitoring.MonitorTransactions(c.Context())
	if err != nil {
		return saccoError(c, err)
	}
	return response.Success(c, "Monitoring sweep completed", result)
}

func (h *SaccoHandler) trackCompliance(c *fiber.Ctx) error {
	summary, err := h.monitoring.TrackCompliance(c.Context())
	if err != nil {
		return saccoError(c, err)
	}
	return response.Success(c, "Compliance summary", summary)
}

func (h *SaccoHandler) addComplianceRecord(c *fiber.Ctx) error {
	var input services.ComplianceRecordInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	record, err := h.monitoring.AddComplianceRecord(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Compliance record added", record)
}

func (h *SaccoHandler) registerCampaign(c *fiber.Ctx) error {
	var input services.RegisterCampaignInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	campaign, err := h.outreach.RegisterCampaign(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Campaign registered", campaign)
}

func (h *SaccoHandler) registerPartner(c *fiber.Ctx) error {
	var input services.RegisterPartnerInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	partner, err := h.outreach.RegisterPartner(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Partner registered", partner)
}

func (h *SaccoHandler) registerResource(c *fiber.Ctx) error {
	var input services.RegisterResourceInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	resource, err := h.outreach.RegisterResource(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Resource registered", resource)
}

func (h *SaccoHandler) registerGuarantor(c *fiber.Ctx) error {
	var input services.RegisterGuarantorInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	guarantor, err := h.outreach.RegisterGuarantor(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Guarantor registered", guarantor)
}

func (h *SaccoHandler) requestRestructuring(c *fiber.Ctx) error {
	var input services.RequestRestructuringInput
	if err := parseInput(c, &input); err != nil {
		return err
	}

	restructuring, err := h.restructuring.RequestRestructuring(c.Context(), &input)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Restructuring requested", restructuring)
}

type restructuringIDRequest struct {
	RestructuringID uint `json:"restructuring_id" validate:"required"`
}

func (h *SaccoHandler) approveRestructuring(c *fiber.Ctx) error {
	var req restructuringIDRequest
	if err := parseInput(c, &req); err != nil {
		return err
	}

	restructuring, err := h.restructuring.ApproveRestructuring(c.Context(), req.RestructuringID)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Success(c, "Restructuring approved", restructuring)
}

type settingKeyRequest struct {
	Key string `json:"key" validate:"required,max=100"`
}

func (h *SaccoHandler) getSetting(c *fiber.Ctx) error {
	var req settingKeyRequest
	if err := parseInput(c, &req); err != nil {
		return err
	}

	setting, err := h.settings.GetSetting(c.Context(), req.Key)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Success(c, "Setting retrieved", setting)
}

type setSettingRequest struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"required"`
}

func (h *SaccoHandler) setSetting(c *fiber.Ctx) error {
	var req setSettingRequest
	if err := parseInput(c, &req); err != nil {
		return err
	}

	setting, err := h.settings.SetSetting(c.Context(), req.Key, req.Value)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Success(c, "Setting saved", setting)
}

type createBackupRequest struct {
	BackupType string `json:"backup_type,omitempty" validate:"omitempty,max=30"`
}

func (h *SaccoHandler) createBackup(c *fiber.Ctx) error {
	var req createBackupRequest
	if err := parseInput(c, &req); err != nil {
		return err
	}

	backup, err := h.settings.CreateBackup(c.Context(), req.BackupType)
	if err != nil {
		return saccoError(c, err)
	}
	return response.Created(c, "Backup recorded", backup)
}
