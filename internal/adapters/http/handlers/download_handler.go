package handlers

import (
	"errors"
	"strconv"
	"time"

	"umoja-sacco/internal/core/domain"
	"umoja-sacco/internal/core/services"
	"umoja-sacco/internal/pkg/export"
	"umoja-sacco/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DownloadHandler serves dataset exports
type DownloadHandler struct {
	exports *services.ExportService
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(exports *services.ExportService) *DownloadHandler {
	return &DownloadHandler{exports: exports}
}

// Download streams a dataset export
// @Summary Download a dataset
// @Description Export a dataset as csv, json or excel. Filters are optional query params.
// @Tags Downloads
// @Produce json
// @Param type path string true "Download type"
// @Param format query string false "csv, json or excel (default csv)"
// @Param status query string false "Status filter"
// @Param member_id query int false "Member ID filter"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param search query string false "Free-text search"
// @Success 200 {string} string "File body"
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /downloads/{type} [get]
func (h *DownloadHandler) Download(c *fiber.Ctx) error {
	downloadType := domain.DownloadType(c.Params("type"))
	if !validDownloadType(downloadType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":     false,
			"error":       "Unknown download type",
			"valid_types": domain.AllDownloadTypes(),
		})
	}

	format := export.Format(c.Query("format", string(export.FormatCSV)))
	if !format.IsValid() {
		return response.BadRequest(c, "format must be csv, json or excel")
	}

	filters, err := parseFilters(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	download, err := h.exports.BuildDownload(c.Context(), downloadType, format, filters)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to build download")
	}

	c.Set(fiber.HeaderContentType, download.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+download.Filename+`"`)
	return c.SendString(download.Body)
}

type downloadRequest struct {
	Type     string     `json:"type"`
	Format   string     `json:"format"`
	Status   string     `json:"status"`
	MemberID uint       `json:"member_id"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
	Search   string     `json:"search"`
}

// DownloadPost is the body-based variant of Download for clients that
// post their filters as JSON.
// @Summary Download a dataset (POST)
// @Description Export a dataset; the type, format and filters are carried in the JSON body
// @Tags Downloads
// @Accept json
// @Produce json
// @Success 200 {string} string "File body"
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /downloads [post]
func (h *DownloadHandler) DownloadPost(c *fiber.Ctx) error {
	var req downloadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	downloadType := domain.DownloadType(req.Type)
	if !validDownloadType(downloadType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":     false,
			"error":       "Unknown download type",
			"valid_types": domain.AllDownloadTypes(),
		})
	}

	format := export.Format(req.Format)
	if format == "" {
		format = export.FormatCSV
	}
	if !format.IsValid() {
		return response.BadRequest(c, "format must be csv, json or excel")
	}

	filters := services.ExportFilters{
		Status:   req.Status,
		MemberID: req.MemberID,
		From:     req.From,
		To:       req.To,
		Search:   req.Search,
	}

	download, err := h.exports.BuildDownload(c.Context(), downloadType, format, filters)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to build download")
	}

	c.Set(fiber.HeaderContentType, download.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+download.Filename+`"`)
	return c.SendString(download.Body)
}

// ListTypes lists the exportable datasets
// @Summary List download types
// @Tags Downloads
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /downloads [get]
func (h *DownloadHandler) ListTypes(c *fiber.Ctx) error {
	return response.Success(c, "Available download types", fiber.Map{
		"types":   domain.AllDownloadTypes(),
		"formats": []export.Format{export.FormatCSV, export.FormatJSON, export.FormatExcel},
	})
}

func validDownloadType(t domain.DownloadType) bool {
	for _, valid := range domain.AllDownloadTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

func parseFilters(c *fiber.Ctx) (services.ExportFilters, error) {
	filters := services.ExportFilters{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	if v := c.Query("member_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filters, errors.New("member_id must be a number")
		}
		filters.MemberID = uint(id)
	}

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filters, errors.New("from must be YYYY-MM-DD")
		}
		filters.From = &parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filters, errors.New("to must be YYYY-MM-DD")
		}
		end := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filters.To = &end
	}

	return filters, nil
}
