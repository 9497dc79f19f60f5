package handlers

import (
	"petfind/internal/adapters/http/middleware"
	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/services"
	"petfind/internal/pkg/pagination"
	"petfind/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnimalHandler handles animal registration, publication and search
type AnimalHandler struct {
	animalService *services.AnimalService
}

// NewAnimalHandler creates a new animal handler
func NewAnimalHandler(animalService *services.AnimalService) *AnimalHandler {
	return &AnimalHandler{animalService: animalService}
}

// parseAnimalFilter reads search filters from the query string
func parseAnimalFilter(c *fiber.Ctx) (repositories.AnimalFilter, bool) {
	var (
		filter repositories.AnimalFilter
		ok     bool
	)
	for key, dst := range map[string]**uint{
		"shelter_id": &filter.ShelterID,
		"species_id": &filter.SpeciesID,
		"breed_id":   &filter.BreedID,
	} {
		if *dst, ok = queryUint(c, key); !ok {
			return filter, false
		}
	}
	for key, dst := range map[string]**bool{
		"is_sterilized": &filter.IsSterilized,
		"is_vaccinated": &filter.IsVaccinated,
		"has_microchip": &filter.HasMicrochip,
	} {
		if *dst, ok = queryBool(c, key); !ok {
			return filter, false
		}
	}

	if raw := queryString(c, "gender"); raw != nil {
		gender := models.AnimalGender(*raw)
		if !gender.Valid() {
			return filter, false
		}
		filter.Gender = &gender
	}
	if raw := queryString(c, "size"); raw != nil {
		size := models.AnimalSize(*raw)
		if !size.Valid() {
			return filter, false
		}
		filter.Size = &size
	}
	if raw := queryString(c, "status"); raw != nil {
		status := models.AnimalStatus(*raw)
		if !status.Valid() {
			return filter, false
		}
		filter.Status = &status
	}
	filter.Color = queryString(c, "color")
	filter.City = queryString(c, "city")
	return filter, true
}

// List searches animals, paginated
func (h *AnimalHandler) List(c *fiber.Ctx) error {
	filter, ok := parseAnimalFilter(c)
	if !ok {
		return response.BadRequest(c, "Invalid filter")
	}

	animals, err := h.animalService.ListAvailable(c.Context(), filter, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}

	params := pagination.GetParams(c)
	page, total := pagination.Slice(animals, params)
	return response.Success(c, "Animals retrieved", pagination.NewResponse(page, params, total))
}

// Get returns one animal
func (h *AnimalHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid animal ID")
	}

	animal, err := h.animalService.GetByID(c.Context(), id, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Animal retrieved", fiber.Map{
		"animal": animal,
	})
}

// Register records a new animal for a shelter
func (h *AnimalHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterAnimalInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	animal, err := h.animalService.Register(c.Context(), req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Animal registered", fiber.Map{
		"animal": animal,
	})
}

// Update applies a partial update
func (h *AnimalHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid animal ID")
	}

	var req services.UpdateAnimalInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	animal, err := h.animalService.Update(c.Context(), id, req, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Animal updated", fiber.Map{
		"animal": animal,
	})
}

// Publish makes an animal available for adoption
func (h *AnimalHandler) Publish(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid animal ID")
	}

	animal, err := h.animalService.Publish(c.Context(), id, middleware.UserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Animal published", fiber.Map{
		"animal": animal,
	})
}
