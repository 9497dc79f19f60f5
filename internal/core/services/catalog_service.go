package services

import (
	"context"
	"strings"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"

	"go.uber.org/zap"
)

// CatalogService manages species and breeds
type CatalogService struct {
	speciesRepo repositories.SpeciesRepository
	breedRepo   repositories.BreedRepository
	userRepo    repositories.UserRepository
	caps        Capabilities
	notify      Dispatcher
	msgs        *Messages
	log         *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	speciesRepo repositories.SpeciesRepository,
	breedRepo repositories.BreedRepository,
	userRepo repositories.UserRepository,
	caps Capabilities,
	notify Dispatcher,
	msgs *Messages,
	log *zap.Logger,
) *CatalogService {
	return &CatalogService{
		speciesRepo: speciesRepo,
		breedRepo:   breedRepo,
		userRepo:    userRepo,
		caps:        caps,
		notify:      notify,
		msgs:        msgs,
		log:         log.Named("catalog"),
	}
}

// CreateSpecies adds a species (admin only)
func (s *CatalogService) CreateSpecies(ctx context.Context, name string, actorID uint) (*models.Species, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if !s.caps.IsAdmin(ctx, actorID) {
		return nil, domain.ErrPermissionDenied
	}

	exists, err := s.speciesRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSpeciesAlreadyExists
	}

	species := &models.Species{Name: name}
	if err := s.speciesRepo.Create(ctx, species); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, TemplateSpeciesCreated, "New species created", map[string]any{
		"speciesName": species.Name,
	})
	return species, nil
}

// CreateBreed adds a breed to a species (admin only)
func (s *CatalogService) CreateBreed(ctx context.Context, speciesID uint, name string, actorID uint) (*models.Breed, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if !s.caps.IsAdmin(ctx, actorID) {
		return nil, domain.ErrPermissionDenied
	}

	species, err := s.speciesRepo.GetByID(ctx, speciesID)
	if err != nil {
		return nil, err
	}

	exists, err := s.breedRepo.ExistsByName(ctx, speciesID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrBreedAlreadyExists
	}

	breed := &models.Breed{SpeciesID: speciesID, Name: name}
	if err := s.breedRepo.Create(ctx, breed); err != nil {
		return nil, err
	}
	breed.Species = species

	s.notifyAdmins(ctx, TemplateBreedCreated, "New breed created", map[string]any{
		"speciesName": species.Name,
		"breedName":   breed.Name,
	})
	return breed, nil
}

// UpdateSpecies renames a species (admin only)
func (s *CatalogService) UpdateSpecies(ctx context.Context, speciesID uint, name string, actorID uint) (*models.Species, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if !s.caps.IsAdmin(ctx, actorID) {
		return nil, domain.ErrPermissionDenied
	}

	species, err := s.speciesRepo.GetByID(ctx, speciesID)
	if err != nil {
		return nil, err
	}
	// a change of case only keeps the same entry
	if !strings.EqualFold(species.Name, name) {
		exists, err := s.speciesRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrSpeciesAlreadyExists
		}
	}

	species.Name = name
	if err := s.speciesRepo.Update(ctx, species); err != nil {
		return nil, err
	}
	s.log.Info("species renamed", zap.Uint("species_id", species.ID), zap.Uint("actor_id", actorID))
	return species, nil
}

// DeleteSpecies removes a species that no breed or animal references (admin only)
func (s *CatalogService) DeleteSpecies(ctx context.Context, speciesID uint, actorID uint) error {
	if !s.caps.IsAdmin(ctx, actorID) {
		return domain.ErrPermissionDenied
	}
	if _, err := s.speciesRepo.GetByID(ctx, speciesID); err != nil {
		return err
	}

	inUse, err := s.speciesRepo.InUse(ctx, speciesID)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrSpeciesInUse
	}
	if err := s.speciesRepo.Delete(ctx, speciesID); err != nil {
		return err
	}
	s.log.Info("species deleted", zap.Uint("species_id", speciesID), zap.Uint("actor_id", actorID))
	return nil
}

// UpdateBreed renames a breed of a species (admin only)
func (s *CatalogService) UpdateBreed(ctx context.Context, speciesID, breedID uint, name string, actorID uint) (*models.Breed, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if !s.caps.IsAdmin(ctx, actorID) {
		return nil, domain.ErrPermissionDenied
	}

	breed, err := s.breedOf(ctx, speciesID, breedID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(breed.Name, name) {
		exists, err := s.breedRepo.ExistsByName(ctx, speciesID, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrBreedAlreadyExists
		}
	}

	breed.Name = name
	if err := s.breedRepo.Update(ctx, breed); err != nil {
		return nil, err
	}
	s.log.Info("breed renamed", zap.Uint("breed_id", breed.ID), zap.Uint("actor_id", actorID))
	return breed, nil
}

// DeleteBreed removes a breed no animal references (admin only)
func (s *CatalogService) DeleteBreed(ctx context.Context, speciesID, breedID uint, actorID uint) error {
	if !s.caps.IsAdmin(ctx, actorID) {
		return domain.ErrPermissionDenied
	}
	if _, err := s.breedOf(ctx, speciesID, breedID); err != nil {
		return err
	}

	inUse, err := s.breedRepo.InUse(ctx, breedID)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrBreedInUse
	}
	if err := s.breedRepo.Delete(ctx, breedID); err != nil {
		return err
	}
	s.log.Info("breed deleted", zap.Uint("breed_id", breedID), zap.Uint("actor_id", actorID))
	return nil
}

// breedOf loads a breed and checks it belongs to speciesID
func (s *CatalogService) breedOf(ctx context.Context, speciesID, breedID uint) (*models.Breed, error) {
	breed, err := s.breedRepo.GetByID(ctx, breedID)
	if err != nil {
		return nil, err
	}
	if breed.SpeciesID != speciesID {
		return nil, domain.ErrBreedNotFound
	}
	return breed, nil
}

// ListSpecies lists all species
func (s *CatalogService) ListSpecies(ctx context.Context) ([]*models.Species, error) {
	return s.speciesRepo.List(ctx)
}

// ListBreeds lists the breeds of a species
func (s *CatalogService) ListBreeds(ctx context.Context, speciesID uint) ([]*models.Breed, error) {
	if _, err := s.speciesRepo.GetByID(ctx, speciesID); err != nil {
		return nil, err
	}
	return s.breedRepo.ListBySpecies(ctx, speciesID)
}

func (s *CatalogService) notifyAdmins(ctx context.Context, template, subject string, fields map[string]any) {
	admins, err := s.userRepo.ListByRole(ctx, domain.SystemRoleAdmin)
	if err != nil {
		s.log.Warn("list admins for catalog notification", zap.String("template", template), zap.Error(err))
		return
	}
	s.notify.Dispatch(ctx, s.msgs.CatalogEntryCreated(admins, template, subject, fields)...)
}
