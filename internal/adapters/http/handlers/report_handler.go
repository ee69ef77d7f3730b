package handlers

import (
	"errors"
	"strconv"
	"time"

	"umoja-sacco/internal/core/domain"
	"umoja-sacco/internal/core/services"
	"umoja-sacco/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles the report engine endpoints
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// parsePeriod reads from/to query params, defaulting to the current
// calendar month.
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, errors.New("from must be YYYY-MM-DD")
		}
		start = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, errors.New("to must be YYYY-MM-DD")
		}
		// Include the whole end day
		end = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return start, end, nil
}

// MonthlySummary returns the monthly summary report
// @Summary Monthly summary
// @Description Aggregate membership, savings and loan activity for a period
// @Tags Reports
// @Produce json
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /reports/monthly-summary [get]
func (h *ReportHandler) MonthlySummary(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	summary, err := h.reports.GenerateMonthlySummary(c.Context(), start, end)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate monthly summary")
	}

	return response.Success(c, "Monthly summary generated", summary)
}

// LoanPortfolio returns the loan portfolio report
// @Summary Loan portfolio
// @Description Disbursed loans with member names, ordered by outstanding balance, plus a per-status summary
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /reports/loan-portfolio [get]
func (h *ReportHandler) LoanPortfolio(c *fiber.Ctx) error {
	portfolio, err := h.reports.GenerateLoanPortfolio(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to generate loan portfolio")
	}

	return response.Success(c, "Loan portfolio generated", portfolio)
}

// MemberStatement returns one member's statement
// @Summary Member statement
// @Description A member's savings, loans and period transactions
// @Tags Reports
// @Produce json
// @Param id path int true "Member ID"
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /reports/member-statement/{id} [get]
func (h *ReportHandler) MemberStatement(c *fiber.Ctx) error {
	memberID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	start, end, err := parsePeriod(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	statement, err := h.reports.GenerateMemberStatement(c.Context(), uint(memberID), start, end)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to generate member statement")
	}

	return response.Success(c, "Member statement generated", statement)
}

// EndOfMonth generates and saves the end-of-month report
// @Summary End-of-month report
// @Description Compose the monthly summary and loan portfolio for a month, then save the result
// @Tags Reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 201 {object} response.Response
// @Security BearerAuth
// @Router /reports/end-of-month [post]
func (h *ReportHandler) EndOfMonth(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		return response.BadRequest(c, "year is required (2000-2100)")
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return response.BadRequest(c, "month is required (1-12)")
	}

	report, err := h.reports.GenerateEndOfMonth(c.Context(), year, time.Month(month))
	if err != nil {
		return response.InternalServerError(c, "Failed to generate end-of-month report")
	}

	saved, err := h.reports.SaveReport(c.Context(), domain.ReportEndOfMonth,
		report.Summary.PeriodStart, report.Summary.PeriodEnd, report)
	if err != nil {
		return response.InternalServerError(c, "Failed to save end-of-month report")
	}

	return response.Created(c, "End-of-month report saved", fiber.Map{
		"report_id": saved.ID,
		"report":    report,
	})
}

type generateReportRequest struct {
	ReportType  string     `json:"report_type" validate:"required"`
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	MemberID    uint       `json:"member_id"`
	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`
}

// period resolves the request's explicit bounds, defaulting to the
// current calendar month.
func (r *generateReportRequest) period() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	if r.PeriodStart != nil {
		start = *r.PeriodStart
	}
	if r.PeriodEnd != nil {
		end = *r.PeriodEnd
	}
	return start, end
}

// Generate runs a report engine operation and saves the result
// @Summary Generate and save a report
// @Description Run one of the report engine operations and persist the result
// @Tags Reports
// @Accept json
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /reports [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var req generateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	start, end := req.period()

	var (
		data       interface{}
		reportType domain.ReportType
		err        error
	)
	switch domain.ReportType(req.ReportType) {
	case domain.ReportMonthlySummary:
		reportType = domain.ReportMonthlySummary
		data, err = h.reports.GenerateMonthlySummary(c.Context(), start, end)
	case domain.ReportLoanPortfolio:
		reportType = domain.ReportLoanPortfolio
		data, err = h.reports.GenerateLoanPortfolio(c.Context())
	case domain.ReportMemberStatement:
		if req.MemberID == 0 {
			return response.BadRequest(c, "member_id is required for member statements")
		}
		reportType = domain.ReportMemberStatement
		data, err = h.reports.GenerateMemberStatement(c.Context(), req.MemberID, start, end)
	case domain.ReportEndOfMonth:
		if req.Year < 2000 || req.Year > 2100 || req.Month < 1 || req.Month > 12 {
			return response.BadRequest(c, "year (2000-2100) and month (1-12) are required")
		}
		reportType = domain.ReportEndOfMonth
		var report *services.EndOfMonthReport
		report, err = h.reports.GenerateEndOfMonth(c.Context(), req.Year, time.Month(req.Month))
		if err == nil {
			start, end = report.Summary.PeriodStart, report.Summary.PeriodEnd
			data = report
		}
	default:
		return response.BadRequest(c, "Unknown report type")
	}
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to generate report")
	}

	saved, err := h.reports.SaveReport(c.Context(), reportType, start, end, data)
	if err != nil {
		return response.InternalServerError(c, "Failed to save report")
	}

	return response.Created(c, "Report saved", fiber.Map{
		"report_id": saved.ID,
		"report":    data,
	})
}

// ListReports lists saved reports
// @Summary List saved reports
// @Description The newest 50 saved reports, optionally filtered by status and type
// @Tags Reports
// @Produce json
// @Param status query string false "Report status"
// @Param type query string false "Report type"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.reports.ListReports(c.Context(), c.Query("status"), c.Query("type"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list reports")
	}

	return response.Success(c, "Reports retrieved", reports)
}
