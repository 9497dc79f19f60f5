package handlers

import (
	"petfind/internal/adapters/http/middleware"
	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/services"
	"petfind/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdoptionHandler handles adoption requests
type AdoptionHandler struct {
	adoptionService *services.AdoptionService
}

// NewAdoptionHandler creates a new adoption handler
func NewAdoptionHandler(adoptionService *services.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptionService: adoptionService}
}

// Create files an adoption request for the current user
func (h *AdoptionHandler) Create(c *fiber.Ctx) error {
	var req services.CreateAdoptionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.AnimalID == 0 {
		return response.BadRequest(c, "Animal ID is required")
	}

	request, err := h.adoptionService.Create(c.Context(), req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Adoption request created", fiber.Map{
		"request": request,
	})
}

// Mine lists the current user's requests
func (h *AdoptionHandler) Mine(c *fiber.Ctx) error {
	requests, err := h.adoptionService.ListForRequester(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Adoption requests retrieved", fiber.Map{
		"requests": requests,
	})
}

// ForShelter lists a shelter's requests, optionally by status
func (h *AdoptionHandler) ForShelter(c *fiber.Ctx) error {
	shelterID, ok := paramID(c, "shelterId")
	if !ok {
		return response.BadRequest(c, "Invalid shelter ID")
	}

	var status *models.AdoptionRequestStatus
	if raw := queryString(c, "status"); raw != nil {
		s := models.AdoptionRequestStatus(*raw)
		switch s {
		case models.AdoptionStatusPending, models.AdoptionStatusUnderReview, models.AdoptionStatusApproved,
			models.AdoptionStatusRejected, models.AdoptionStatusCancelled:
			status = &s
		default:
			return response.BadRequest(c, "Invalid status")
		}
	}

	requests, err := h.adoptionService.ListForShelter(c.Context(), shelterID, middleware.UserID(c), status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Adoption requests retrieved", fiber.Map{
		"requests": requests,
	})
}

// Get returns one request to a party of it
func (h *AdoptionHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.adoptionService.GetByID(c.Context(), id, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Adoption request retrieved", fiber.Map{
		"request": request,
	})
}

// resolve runs one transition on the request named by the route
func (h *AdoptionHandler) resolve(c *fiber.Ctx, message string,
	transition func(*fiber.Ctx, uint, uint) (*models.AdoptionRequest, error)) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := transition(c, id, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, message, fiber.Map{
		"request": request,
	})
}

// Approve adopts the animal to the requester and rejects the others
func (h *AdoptionHandler) Approve(c *fiber.Ctx) error {
	return h.resolve(c, "Adoption request approved", func(c *fiber.Ctx, id, userID uint) (*models.AdoptionRequest, error) {
		return h.adoptionService.Approve(c.Context(), id, userID)
	})
}

// Reject declines a request
func (h *AdoptionHandler) Reject(c *fiber.Ctx) error {
	return h.resolve(c, "Adoption request rejected", func(c *fiber.Ctx, id, userID uint) (*models.AdoptionRequest, error) {
		return h.adoptionService.Reject(c.Context(), id, userID)
	})
}

// Cancel withdraws the caller's own request
func (h *AdoptionHandler) Cancel(c *fiber.Ctx) error {
	return h.resolve(c, "Adoption request cancelled", func(c *fiber.Ctx, id, userID uint) (*models.AdoptionRequest, error) {
		return h.adoptionService.Cancel(c.Context(), id, userID)
	})
}
