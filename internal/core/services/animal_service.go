package services

import (
	"context"
	"strings"
	"time"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"
	"petfind/internal/pkg/metrics"

	"go.uber.org/zap"
)

// AnimalService drives animals from registration to adoption
type AnimalService struct {
	animalRepo     repositories.AnimalRepository
	shelterRepo    repositories.ShelterRepository
	speciesRepo    repositories.SpeciesRepository
	breedRepo      repositories.BreedRepository
	membershipRepo repositories.MembershipRepository
	userRepo       repositories.UserRepository
	caps           Capabilities
	notify         Dispatcher
	msgs           *Messages
	log            *zap.Logger
	now            func() time.Time
}

// NewAnimalService creates a new animal service
func NewAnimalService(
	animalRepo repositories.AnimalRepository,
	shelterRepo repositories.ShelterRepository,
	speciesRepo repositories.SpeciesRepository,
	breedRepo repositories.BreedRepository,
	membershipRepo repositories.MembershipRepository,
	userRepo repositories.UserRepository,
	caps Capabilities,
	notify Dispatcher,
	msgs *Messages,
	log *zap.Logger,
) *AnimalService {
	return &AnimalService{
		animalRepo:     animalRepo,
		shelterRepo:    shelterRepo,
		speciesRepo:    speciesRepo,
		breedRepo:      breedRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		caps:           caps,
		notify:         notify,
		msgs:           msgs,
		log:            log.Named("animals"),
		now:            time.Now,
	}
}

// RegisterAnimalInput for registering an animal
type RegisterAnimalInput struct {
	ShelterID    uint                `json:"shelter_id"`
	SpeciesID    uint                `json:"species_id"`
	BreedID      uint                `json:"breed_id"`
	Name         string              `json:"name"`
	Gender       models.AnimalGender `json:"gender"`
	BirthDate    *time.Time          `json:"birth_date"`
	Size         models.AnimalSize   `json:"size"`
	Color        string              `json:"color"`
	IsSterilized bool                `json:"is_sterilized"`
	IsVaccinated bool                `json:"is_vaccinated"`
	HasMicrochip bool                `json:"has_microchip"`
	Description  string              `json:"description"`
	HealthNotes  string              `json:"health_notes"`
}

// UpdateAnimalInput for partial updates; nil fields are left untouched
type UpdateAnimalInput struct {
	Name         *string              `json:"name"`
	SpeciesID    *uint                `json:"species_id"`
	BreedID      *uint                `json:"breed_id"`
	Gender       *models.AnimalGender `json:"gender"`
	BirthDate    *time.Time           `json:"birth_date"`
	Size         *models.AnimalSize   `json:"size"`
	Color        *string              `json:"color"`
	IsSterilized *bool                `json:"is_sterilized"`
	IsVaccinated *bool                `json:"is_vaccinated"`
	HasMicrochip *bool                `json:"has_microchip"`
	Description  *string              `json:"description"`
	HealthNotes  *string              `json:"health_notes"`
}

// checkTaxonomy verifies species and breed exist and belong together
func (s *AnimalService) checkTaxonomy(ctx context.Context, speciesID, breedID uint) error {
	species, err := s.speciesRepo.GetByID(ctx, speciesID)
	if err != nil {
		return err
	}
	breed, err := s.breedRepo.GetByID(ctx, breedID)
	if err != nil {
		return err
	}
	if breed.SpeciesID != species.ID {
		return domain.ErrBreedNotFound
	}
	return nil
}

// Register creates an animal in not_available and notifies directives
func (s *AnimalService) Register(ctx context.Context, input RegisterAnimalInput, userID uint) (*models.Animal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if input.Gender == "" {
		input.Gender = models.AnimalGenderUnknown
	}
	if !input.Gender.Valid() {
		return nil, domain.ErrInvalidAnimalGender
	}
	if input.Size == "" {
		input.Size = models.AnimalSizeMedium
	}
	if !input.Size.Valid() {
		return nil, domain.ErrInvalidAnimalSize
	}

	// 1. Shelter, species and breed must exist and be consistent
	if _, err := s.shelterRepo.GetByID(ctx, input.ShelterID); err != nil {
		return nil, err
	}
	if err := s.checkTaxonomy(ctx, input.SpeciesID, input.BreedID); err != nil {
		return nil, err
	}

	// 2. Submitter must belong to the shelter and manage its animals
	if _, member := s.caps.ResolveShelterRole(ctx, userID, input.ShelterID); !member && !s.caps.IsAdmin(ctx, userID) {
		return nil, domain.ErrNotShelterMember
	}
	if !s.caps.CanManageAnimalsInfo(ctx, userID, input.ShelterID) {
		return nil, domain.ErrPermissionDenied
	}

	// 3. Create
	animal := &models.Animal{
		ShelterID:    input.ShelterID,
		Status:       models.AnimalStatusNotAvailable,
		Name:         name,
		SpeciesID:    input.SpeciesID,
		BreedID:      input.BreedID,
		Gender:       input.Gender,
		BirthDate:    input.BirthDate,
		Size:         input.Size,
		Color:        input.Color,
		IsSterilized: input.IsSterilized,
		IsVaccinated: input.IsVaccinated,
		HasMicrochip: input.HasMicrochip,
		Description:  input.Description,
		HealthNotes:  input.HealthNotes,
	}
	if err := s.animalRepo.Create(ctx, animal); err != nil {
		return nil, err
	}
	metrics.Transition("animal", "register")

	created, err := s.animalRepo.GetByID(ctx, animal.ID)
	if err != nil {
		return nil, err
	}
	s.notifyDirectives(ctx, TemplateAnimalCreated, "New animal registered in the shelter", created, userID)
	return created, nil
}

// Update applies the patch. A patch that changes nothing returns the animal
// untouched and sends no notification.
func (s *AnimalService) Update(ctx context.Context, animalID uint, input UpdateAnimalInput, userID uint) (*models.Animal, error) {
	animal, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if !s.caps.CanManageAnimalsInfo(ctx, userID, animal.ShelterID) {
		return nil, domain.ErrPermissionDenied
	}

	changed, taxonomyChanged, err := applyAnimalPatch(animal, input)
	if err != nil {
		return nil, err
	}
	if !changed {
		return animal, nil
	}
	if taxonomyChanged {
		if err := s.checkTaxonomy(ctx, animal.SpeciesID, animal.BreedID); err != nil {
			return nil, err
		}
	}

	if err := s.animalRepo.Update(ctx, animal); err != nil {
		return nil, err
	}
	metrics.Transition("animal", "update")

	updated, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return nil, err
	}
	s.notifyDirectives(ctx, TemplateAnimalUpdated, "Animal information updated", updated, userID)
	return updated, nil
}

// applyAnimalPatch merges input into a and reports whether any field differs
func applyAnimalPatch(a *models.Animal, in UpdateAnimalInput) (changed, taxonomy bool, err error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return false, false, domain.ErrNameRequired
		}
		if name != a.Name {
			a.Name, changed = name, true
		}
	}
	if in.SpeciesID != nil && *in.SpeciesID != a.SpeciesID {
		a.SpeciesID, changed, taxonomy = *in.SpeciesID, true, true
	}
	if in.BreedID != nil && *in.BreedID != a.BreedID {
		a.BreedID, changed, taxonomy = *in.BreedID, true, true
	}
	if in.Gender != nil && *in.Gender != a.Gender {
		if !in.Gender.Valid() {
			return false, false, domain.ErrInvalidAnimalGender
		}
		a.Gender, changed = *in.Gender, true
	}
	if in.Size != nil && *in.Size != a.Size {
		if !in.Size.Valid() {
			return false, false, domain.ErrInvalidAnimalSize
		}
		a.Size, changed = *in.Size, true
	}
	if in.BirthDate != nil && (a.BirthDate == nil || !a.BirthDate.Equal(*in.BirthDate)) {
		bd := *in.BirthDate
		a.BirthDate, changed = &bd, true
	}
	if in.Color != nil && *in.Color != a.Color {
		a.Color, changed = *in.Color, true
	}
	if in.IsSterilized != nil && *in.IsSterilized != a.IsSterilized {
		a.IsSterilized, changed = *in.IsSterilized, true
	}
	if in.IsVaccinated != nil && *in.IsVaccinated != a.IsVaccinated {
		a.IsVaccinated, changed = *in.IsVaccinated, true
	}
	if in.HasMicrochip != nil && *in.HasMicrochip != a.HasMicrochip {
		a.HasMicrochip, changed = *in.HasMicrochip, true
	}
	if in.Description != nil && *in.Description != a.Description {
		a.Description, changed = *in.Description, true
	}
	if in.HealthNotes != nil && *in.HealthNotes != a.HealthNotes {
		a.HealthNotes, changed = *in.HealthNotes, true
	}
	return changed, taxonomy, nil
}

// Publish makes an animal available for adoption. Publishing an animal
// that already is available is a no-op.
func (s *AnimalService) Publish(ctx context.Context, animalID, userID uint) (*models.Animal, error) {
	animal, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if !s.caps.CanManageAdoptions(ctx, userID, animal.ShelterID) {
		return nil, domain.ErrPermissionDenied
	}

	changed, err := publishAnimal(animal)
	if err != nil {
		return nil, err
	}
	if !changed {
		return animal, nil
	}
	if err := s.animalRepo.Update(ctx, animal); err != nil {
		return nil, err
	}
	metrics.Transition("animal", "publish")

	s.notifyDirectives(ctx, TemplateAnimalPublished, "Animal published for adoption", animal, userID)
	return animal, nil
}

// CommitAdoption marks the animal adopted by adopterID. It takes the row
// lock of the surrounding transaction and is authorized by the caller.
func (s *AnimalService) CommitAdoption(ctx context.Context, animalID, adopterID uint) error {
	animal, err := s.animalRepo.GetByIDForUpdate(ctx, animalID)
	if err != nil {
		return err
	}
	if err := adoptAnimal(animal, adopterID, s.now()); err != nil {
		return err
	}
	if err := s.animalRepo.Update(ctx, animal); err != nil {
		return err
	}
	metrics.Transition("animal", "adopt")
	return nil
}

// ListAvailable lists animals matching filter: available ones plus every
// animal of the requester's shelters
func (s *AnimalService) ListAvailable(ctx context.Context, filter repositories.AnimalFilter, requesterID uint) ([]*models.Animal, error) {
	var memberOf []uint
	if requesterID != 0 {
		ids, err := s.membershipRepo.ShelterIDsByUser(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		memberOf = ids
	}
	return s.animalRepo.Search(ctx, filter, memberOf)
}

// GetByID returns an animal. Private ones are hidden from outsiders as not found.
func (s *AnimalService) GetByID(ctx context.Context, animalID, userID uint) (*models.Animal, error) {
	animal, err := s.animalRepo.GetByID(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if animal.Status.IsPublic() {
		return animal, nil
	}
	if _, member := s.caps.ResolveShelterRole(ctx, userID, animal.ShelterID); member || s.caps.IsAdmin(ctx, userID) {
		return animal, nil
	}
	return nil, domain.ErrAnimalNotFound
}

func (s *AnimalService) notifyDirectives(ctx context.Context, template, subject string, animal *models.Animal, actorID uint) {
	directives, err := s.membershipRepo.ListByShelter(ctx, animal.ShelterID, domain.ShelterRoleDirective)
	if err != nil {
		s.log.Warn("list shelter directives",
			zap.Uint("animal_id", animal.ID),
			zap.Uint("shelter_id", animal.ShelterID),
			zap.Error(err),
		)
		return
	}
	if len(directives) == 0 {
		return
	}

	shelter := animal.Shelter
	if shelter == nil {
		if shelter, err = s.shelterRepo.GetByID(ctx, animal.ShelterID); err != nil {
			s.log.Warn("load shelter for notification", zap.Uint("shelter_id", animal.ShelterID), zap.Error(err))
			return
		}
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		actor = nil
	}
	s.notify.Dispatch(ctx, s.msgs.AnimalEvent(template, subject, directives, shelter, animal, actor)...)
}
