package handlers

import (
	"petfind/internal/adapters/http/middleware"
	"petfind/internal/core/services"
	"petfind/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the species and breed catalog
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// NameRequest is the body for catalog entries
type NameRequest struct {
	Name string `json:"name"`
}

// ListSpecies returns every species
func (h *CatalogHandler) ListSpecies(c *fiber.Ctx) error {
	species, err := h.catalogService.ListSpecies(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Species retrieved", fiber.Map{
		"species": species,
	})
}

// CreateSpecies adds a species (admin)
func (h *CatalogHandler) CreateSpecies(c *fiber.Ctx) error {
	var req NameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	species, err := h.catalogService.CreateSpecies(c.Context(), req.Name, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Species created", fiber.Map{
		"species": species,
	})
}

// ListBreeds returns the breeds of a species
func (h *CatalogHandler) ListBreeds(c *fiber.Ctx) error {
	speciesID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid species ID")
	}

	breeds, err := h.catalogService.ListBreeds(c.Context(), speciesID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Breeds retrieved", fiber.Map{
		"breeds": breeds,
	})
}

// CreateBreed adds a breed under a species (admin)
func (h *CatalogHandler) CreateBreed(c *fiber.Ctx) error {
	speciesID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid species ID")
	}

	var req NameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	breed, err := h.catalogService.CreateBreed(c.Context(), speciesID, req.Name, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Breed created", fiber.Map{
		"breed": breed,
	})
}

// UpdateSpecies renames a species (admin)
func (h *CatalogHandler) UpdateSpecies(c *fiber.Ctx) error {
	speciesID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid species ID")
	}

	var req NameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	species, err := h.catalogService.UpdateSpecies(c.Context(), speciesID, req.Name, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Species updated", fiber.Map{
		"species": species,
	})
}

// DeleteSpecies removes an unused species (admin)
func (h *CatalogHandler) DeleteSpecies(c *fiber.Ctx) error {
	speciesID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid species ID")
	}

	if err := h.catalogService.DeleteSpecies(c.Context(), speciesID, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Species deleted", nil)
}

// UpdateBreed renames a breed (admin)
func (h *CatalogHandler) UpdateBreed(c *fiber.Ctx) error {
	speciesID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid species ID")
	}
	breedID, ok := paramID(c, "breedId")
	if !ok {
		return response.BadRequest(c, "Invalid breed ID")
	}

	var req NameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	breed, err := h.catalogService.UpdateBreed(c.Context(), speciesID, breedID, req.Name, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Breed updated", fiber.Map{
		"breed": breed,
	})
}

// DeleteBreed removes an unused breed (admin)
func (h *CatalogHandler) DeleteBreed(c *fiber.Ctx) error {
	speciesID, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid species ID")
	}
	breedID, ok := paramID(c, "breedId")
	if !ok {
		return response.BadRequest(c, "Invalid breed ID")
	}

	if err := h.catalogService.DeleteBreed(c.Context(), speciesID, breedID, middleware.UserID(c)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Breed deleted", nil)
}
