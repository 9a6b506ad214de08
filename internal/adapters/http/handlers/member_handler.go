package handlers

import (
	"strconv"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/services"
	"libralend/internal/pkg/pagination"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles membership endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// CreateMemberRequest represents create member request
type CreateMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Create creates a new member
// @Summary Create member
// @Description Register a new member with zero debt
// @Tags Members
// @Accept json
// @Produce json
// @Param body body CreateMemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Create(c.Context(), &services.CreateMemberInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// List lists members
// @Summary List members
// @Description List registered members
// @Tags Members
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.memberService.List(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	members := make([]*models.MemberResponse, 0, len(result.Members))
	for _, m := range result.Members {
		members = append(members, m.ToResponse())
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members":     members,
		"total":       result.Total,
		"page":        result.Page,
		"limit":       result.Limit,
		"total_pages": result.TotalPages,
	})
}

// GetByID gets a member by ID
// @Summary Get member by ID
// @Description Get a single member with outstanding debt
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetByID(c.Context(), uint(id))
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// UpdateMemberRequest represents update member request
type UpdateMemberRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Update updates a member
// @Summary Update member
// @Description Update name/email; debt is engine-owned and read only here
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param body body UpdateMemberRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), uint(id), &services.UpdateMemberInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// Delete deletes a member
// @Summary Delete member
// @Description Remove a member; refused while debt is outstanding
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.Delete(c.Context(), uint(id)); err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Member deleted successfully", nil)
}
