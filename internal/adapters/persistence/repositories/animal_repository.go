package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// animalRepository implements AnimalRepository interface
type animalRepository struct {
	db *gorm.DB
}

// NewAnimalRepository creates a new animal repository
func NewAnimalRepository(db *gorm.DB) AnimalRepository {
	return &animalRepository{db: db}
}

// Create creates a new animal
func (r *animalRepository) Create(ctx context.Context, animal *models.Animal) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(animal).Error
}

// GetByID gets an animal by ID with relations
func (r *animalRepository) GetByID(ctx context.Context, id uint) (*models.Animal, error) {
	var animal models.Animal
	err := conn(ctx, r.db).
		Preload("Shelter").
		Preload("Species").
		Preload("Breed").
		First(&animal, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAnimalNotFound)
	}
	return &animal, nil
}

// GetByIDForUpdate gets an animal by ID and locks the row (SELECT ... FOR UPDATE)
func (r *animalRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Animal, error) {
	var animal models.Animal
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&animal, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAnimalNotFound)
	}
	return &animal, nil
}

// Search lists animals matching filter that are available or belong to a member shelter
func (r *animalRepository) Search(ctx context.Context, filter AnimalFilter, memberShelterIDs []uint) ([]*models.Animal, error) {
	var animals []*models.Animal

	query := conn(ctx, r.db).
		Model(&models.Animal{}).
		Select("animals.*").
		Preload("Shelter").
		Preload("Species").
		Preload("Breed")

	if filter.ShelterID != nil {
		query = query.Where("animals.shelter_id = ?", *filter.ShelterID)
	}
	if filter.SpeciesID != nil {
		query = query.Where("animals.species_id = ?", *filter.SpeciesID)
	}
	if filter.BreedID != nil {
		query = query.Where("animals.breed_id = ?", *filter.BreedID)
	}
	if filter.Gender != nil {
		query = query.Where("animals.gender = ?", *filter.Gender)
	}
	if filter.Size != nil {
		query = query.Where("animals.size = ?", *filter.Size)
	}
	if filter.Color != nil {
		query = query.Where("animals.color = ?", *filter.Color)
	}
	if filter.IsSterilized != nil {
		query = query.Where("animals.is_sterilized = ?", *filter.IsSterilized)
	}
	if filter.IsVaccinated != nil {
		query = query.Where("animals.is_vaccinated = ?", *filter.IsVaccinated)
	}
	if filter.HasMicrochip != nil {
		query = query.Where("animals.has_microchip = ?", *filter.HasMicrochip)
	}
	if filter.Status != nil {
		query = query.Where("animals.status = ?", *filter.Status)
	}
	if filter.City != nil {
		query = query.
			Joins("JOIN shelters ON shelters.id = animals.shelter_id").
			Where("LOWER(shelters.city) = LOWER(?)", *filter.City)
	}

	visible := r.db.Where("animals.status = ?", models.AnimalStatusAvailable)
	if len(memberShelterIDs) > 0 {
		visible = visible.Or("animals.shelter_id IN ?", memberShelterIDs)
	}

	err := query.Where(visible).Order("animals.created_at DESC").Find(&animals).Error
	return animals, err
}

// Update updates an animal
func (r *animalRepository) Update(ctx context.Context, animal *models.Animal) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(animal).Error
}
