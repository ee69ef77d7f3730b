package handlers

import (
	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/adapters/persistence/repositories"
	"umoja-sacco/internal/pkg/pagination"
	"umoja-sacco/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles the member directory endpoints
type MemberHandler struct {
	members repositories.MemberRepository
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(members repositories.MemberRepository) *MemberHandler {
	return &MemberHandler{members: members}
}

// ListMembers lists registered members
// @Summary List members
// @Description Paginated member directory, newest first
// @Tags Members
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page (max 100)"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /members [get]
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.members.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	// Strip password hashes before the payload leaves the service
	responses := make([]*models.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, member.ToResponse())
	}

	return response.Success(c, "Members retrieved",
		pagination.NewResponse(responses, params, total))
}
