package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

// Lookups return the matching domain NotFound error when no row exists.

// Transactor runs fn inside a single store transaction. Repositories called
// with the ctx handed to fn take part in that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrDocument(ctx context.Context, email, documentID string) (bool, error)
	ListByRole(ctx context.Context, role domain.SystemRole) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// SystemRoleRepository defines system role repository interface
type SystemRoleRepository interface {
	GetByName(ctx context.Context, name domain.SystemRole) (*models.SystemRole, error)
	Create(ctx context.Context, role *models.SystemRole) error
}

// OtpCodeRepository defines one-time code repository interface
type OtpCodeRepository interface {
	Create(ctx context.Context, code *models.OtpCode) error
	// GetLatestByUserID returns the most recently created code for the user
	GetLatestByUserID(ctx context.Context, userID uint) (*models.OtpCode, error)
	// GetLatestByUserIDForUpdate is GetLatestByUserID holding a row lock
	// until the surrounding transaction ends
	GetLatestByUserIDForUpdate(ctx context.Context, userID uint) (*models.OtpCode, error)
	Update(ctx context.Context, code *models.OtpCode) error
}

// ShelterRepository defines shelter repository interface
type ShelterRepository interface {
	Create(ctx context.Context, shelter *models.Shelter) error
	GetByID(ctx context.Context, id uint) (*models.Shelter, error)
	List(ctx context.Context, status *models.ShelterStatus) ([]*models.Shelter, error)
	Update(ctx context.Context, shelter *models.Shelter) error
}

// MembershipRepository defines shelter membership repository interface
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.ShelterUser) error
	GetByID(ctx context.Context, id uint) (*models.ShelterUser, error)
	GetByShelterAndUser(ctx context.Context, shelterID, userID uint) (*models.ShelterUser, error)
	// ListByShelter returns memberships with the user preloaded, optionally
	// restricted to the given roles
	ListByShelter(ctx context.Context, shelterID uint, roles ...domain.ShelterRole) ([]*models.ShelterUser, error)
	ShelterIDsByUser(ctx context.Context, userID uint) ([]uint, error)
	Update(ctx context.Context, membership *models.ShelterUser) error
	Delete(ctx context.Context, id uint) error
}

// SpeciesRepository defines species repository interface
type SpeciesRepository interface {
	Create(ctx context.Context, species *models.Species) error
	GetByID(ctx context.Context, id uint) (*models.Species, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*models.Species, error)
	Update(ctx context.Context, species *models.Species) error
	Delete(ctx context.Context, id uint) error
	// InUse reports whether any breed or animal references the species
	InUse(ctx context.Context, id uint) (bool, error)
}

// BreedRepository defines breed repository interface
type BreedRepository interface {
	Create(ctx context.Context, breed *models.Breed) error
	GetByID(ctx context.Context, id uint) (*models.Breed, error)
	ExistsByName(ctx context.Context, speciesID uint, name string) (bool, error)
	ListBySpecies(ctx context.Context, speciesID uint) ([]*models.Breed, error)
	Update(ctx context.Context, breed *models.Breed) error
	Delete(ctx context.Context, id uint) error
	// InUse reports whether any animal references the breed
	InUse(ctx context.Context, id uint) (bool, error)
}

// AnimalFilter holds optional search filters; nil means "any"
type AnimalFilter struct {
	ShelterID    *uint
	SpeciesID    *uint
	BreedID      *uint
	Gender       *models.AnimalGender
	Size         *models.AnimalSize
	Color        *string
	City         *string
	IsSterilized *bool
	IsVaccinated *bool
	HasMicrochip *bool
	Status       *models.AnimalStatus
}

// AnimalRepository defines animal repository interface
type AnimalRepository interface {
	Create(ctx context.Context, animal *models.Animal) error
	// GetByID loads the animal with shelter, species and breed
	GetByID(ctx context.Context, id uint) (*models.Animal, error)
	// GetByIDForUpdate loads the animal and holds an exclusive row lock
	// until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Animal, error)
	// Search returns animals matching filter that are either available or
	// belong to one of memberShelterIDs, newest first
	Search(ctx context.Context, filter AnimalFilter, memberShelterIDs []uint) ([]*models.Animal, error)
	Update(ctx context.Context, animal *models.Animal) error
}

// AdoptionRequestRepository defines adoption request repository interface
type AdoptionRequestRepository interface {
	Create(ctx context.Context, request *models.AdoptionRequest) error
	// GetByID loads the request with animal (species, breed), shelter and requester
	GetByID(ctx context.Context, id uint) (*models.AdoptionRequest, error)
	ExistsForAnimalAndRequester(ctx context.Context, animalID, requesterID uint) (bool, error)
	ListSiblings(ctx context.Context, animalID, excludeID uint) ([]*models.AdoptionRequest, error)
	ListByShelter(ctx context.Context, shelterID uint, status *models.AdoptionRequestStatus) ([]*models.AdoptionRequest, error)
	ListByRequester(ctx context.Context, requesterID uint) ([]*models.AdoptionRequest, error)
	Update(ctx context.Context, request *models.AdoptionRequest) error
}

// EmailRepository defines notification outbox repository interface
type EmailRepository interface {
	Create(ctx context.Context, email *models.Email) error
	Update(ctx context.Context, email *models.Email) error
	ListUnsent(ctx context.Context, maxAttempts, limit int) ([]*models.Email, error)
}
