package handlers

import (
	"strings"

	"petfind/internal/adapters/http/middleware"
	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
	"petfind/internal/core/services"
	"petfind/internal/pkg/pagination"
	"petfind/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ShelterHandler handles shelter submission and review
type ShelterHandler struct {
	shelterService *services.ShelterService
}

// NewShelterHandler creates a new shelter handler
func NewShelterHandler(shelterService *services.ShelterService) *ShelterHandler {
	return &ShelterHandler{shelterService: shelterService}
}

// RejectShelterRequest carries the rejection reason
type RejectShelterRequest struct {
	Reason string `json:"reason"`
}

// Submit files a new shelter for review
func (h *ShelterHandler) Submit(c *fiber.Ctx) error {
	var req services.ShelterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	shelter, err := h.shelterService.Submit(c.Context(), req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Shelter submitted for review", fiber.Map{
		"shelter": shelter,
	})
}

// List returns shelters, paginated. Only admins may filter by
// a status other than approved.
func (h *ShelterHandler) List(c *fiber.Ctx) error {
	status := models.ShelterStatusApproved
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status = models.ShelterStatus(raw)
	}
	switch status {
	case models.ShelterStatusApproved:
	case models.ShelterStatusPending, models.ShelterStatusRejected:
		if role, _ := c.Locals(middleware.LocalRole).(string); role != string(domain.SystemRoleAdmin) {
			return response.Forbidden(c, "Only admins can list unapproved shelters")
		}
	default:
		return response.BadRequest(c, "Invalid status")
	}

	shelters, err := h.shelterService.List(c.Context(), &status)
	if err != nil {
		return response.FromError(c, err)
	}

	params := pagination.GetParams(c)
	page, total := pagination.Slice(shelters, params)
	return response.Success(c, "Shelters retrieved", pagination.NewResponse(page, params, total))
}

// Get returns one shelter
func (h *ShelterHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	shelter, err := h.shelterService.GetByID(c.Context(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Shelter retrieved", fiber.Map{
		"shelter": shelter,
	})
}

// Update applies a partial update
func (h *ShelterHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	var req services.UpdateShelterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	shelter, err := h.shelterService.Update(c.Context(), id, req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Shelter updated", fiber.Map{
		"shelter": shelter,
	})
}

// Approve accepts a pending shelter
func (h *ShelterHandler) Approve(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	shelter, err := h.shelterService.Approve(c.Context(), id, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Shelter approved", fiber.Map{
		"shelter": shelter,
	})
}

// Reject declines a pending shelter with a reason
func (h *ShelterHandler) Reject(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	var req RejectShelterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	shelter, err := h.shelterService.Reject(c.Context(), id, req.Reason, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Shelter rejected", fiber.Map{
		"shelter": shelter,
	})
}
