package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"

	"gorm.io/gorm"
)

// speciesRepository implements SpeciesRepository interface
type speciesRepository struct {
	db *gorm.DB
}

// NewSpeciesRepository creates a new species repository
func NewSpeciesRepository(db *gorm.DB) SpeciesRepository {
	return &speciesRepository{db: db}
}

func (r *speciesRepository) Create(ctx context.Context, species *models.Species) error {
	return conn(ctx, r.db).Create(species).Error
}

func (r *speciesRepository) GetByID(ctx context.Context, id uint) (*models.Species, error) {
	var species models.Species
	if err := conn(ctx, r.db).First(&species, id).Error; err != nil {
		return nil, notFound(err, domain.ErrSpeciesNotFound)
	}
	return &species, nil
}

func (r *speciesRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Species{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error
	return count > 0, err
}

func (r *speciesRepository) List(ctx context.Context) ([]*models.Species, error) {
	var species []*models.Species
	err := conn(ctx, r.db).Order("name ASC").Find(&species).Error
	return species, err
}

func (r *speciesRepository) Update(ctx context.Context, species *models.Species) error {
	err := conn(ctx, r.db).Model(species).Update("name", species.Name).Error
	return duplicate(err, domain.ErrSpeciesAlreadyExists)
}

func (r *speciesRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Species{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSpeciesNotFound
	}
	return nil
}

func (r *speciesRepository) InUse(ctx context.Context, id uint) (bool, error) {
	for _, model := range []interface{}{&models.Breed{}, &models.Animal{}} {
		var count int64
		if err := conn(ctx, r.db).Model(model).Where("species_id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// breedRepository implements BreedRepository interface
type breedRepository struct {
	db *gorm.DB
}

// NewBreedRepository creates a new breed repository
func NewBreedRepository(db *gorm.DB) BreedRepository {
	return &breedRepository{db: db}
}

func (r *breedRepository) Create(ctx context.Context, breed *models.Breed) error {
	return conn(ctx, r.db).Omit("Species").Create(breed).Error
}

func (r *breedRepository) GetByID(ctx context.Context, id uint) (*models.Breed, error) {
	var breed models.Breed
	if err := conn(ctx, r.db).First(&breed, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBreedNotFound)
	}
	return &breed, nil
}

func (r *breedRepository) ExistsByName(ctx context.Context, speciesID uint, name string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Breed{}).
		Where("species_id = ? AND LOWER(name) = LOWER(?)", speciesID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *breedRepository) ListBySpecies(ctx context.Context, speciesID uint) ([]*models.Breed, error) {
	var breeds []*models.Breed
	err := conn(ctx, r.db).Where("species_id = ?", speciesID).Order("name ASC").Find(&breeds).Error
	return breeds, err
}

func (r *breedRepository) Update(ctx context.Context, breed *models.Breed) error {
	err := conn(ctx, r.db).Model(breed).Update("name", breed.Name).Error
	return duplicate(err, domain.ErrBreedAlreadyExists)
}

func (r *breedRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Breed{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBreedNotFound
	}
	return nil
}

func (r *breedRepository) InUse(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Animal{}).Where("breed_id = ?", id).Count(&count).Error
	return count > 0, err
}
