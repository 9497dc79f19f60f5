package handlers

import (
	"petfind/internal/adapters/http/middleware"
	"petfind/internal/core/domain"
	"petfind/internal/core/services"
	"petfind/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MembershipHandler manages shelter staff
type MembershipHandler struct {
	membershipService *services.MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// AddMemberRequest represents the add member body
type AddMemberRequest struct {
	UserID uint               `json:"user_id"`
	Role   domain.ShelterRole `json:"role"`
}

// UpdateMemberRequest represents the role change body
type UpdateMemberRequest struct {
	Role domain.ShelterRole `json:"role"`
}

// List returns the members of a shelter
func (h *MembershipHandler) List(c *fiber.Ctx) error {
	shelterID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	members, err := h.membershipService.ListForShelter(c.Context(), shelterID, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Members retrieved", fiber.Map{
		"members": members,
	})
}

// Add attaches a user to a shelter
func (h *MembershipHandler) Add(c *fiber.Ctx) error {
	shelterID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.UserID == 0 {
		return response.BadRequest(c, "User ID is required")
	}

	member, err := h.membershipService.Add(c.Context(), shelterID, req.UserID, req.Role, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Member added", fiber.Map{
		"member": member,
	})
}

// UpdateRole changes a member's shelter role
func (h *MembershipHandler) UpdateRole(c *fiber.Ctx) error {
	membershipID, ok := paramID(c, "membershipId")
	if !ok {
		return response.BadRequest(c, "Invalid membership ID")
	}

	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.membershipService.UpdateRole(c.Context(), membershipID, req.Role, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Member updated", fiber.Map{
		"member": member,
	})
}

// Remove detaches a member from its shelter
func (h *MembershipHandler) Remove(c *fiber.Ctx) error {
	membershipID, ok := paramID(c, "membershipId")
	if !ok {
		return response.BadRequest(c, "Invalid membership ID")
	}

	if err := h.membershipService.Remove(c.Context(), membershipID, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Member removed", nil)
}
