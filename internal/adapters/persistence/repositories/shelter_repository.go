package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"

	"gorm.io/gorm"
)

// shelterRepository implements ShelterRepository interface
type shelterRepository struct {
	db *gorm.DB
}

// NewShelterRepository creates a new shelter repository
func NewShelterRepository(db *gorm.DB) ShelterRepository {
	return &shelterRepository{db: db}
}

// Create creates a new shelter
func (r *shelterRepository) Create(ctx context.Context, shelter *models.Shelter) error {
	return conn(ctx, r.db).Omit("CreatedBy", "Members").Create(shelter).Error
}

// GetByID gets a shelter by ID with its creator
func (r *shelterRepository) GetByID(ctx context.Context, id uint) (*models.Shelter, error) {
	var shelter models.Shelter
	err := conn(ctx, r.db).Preload("CreatedBy").First(&shelter, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrShelterNotFound)
	}
	return &shelter, nil
}

// List lists shelters, optionally by status
func (r *shelterRepository) List(ctx context.Context, status *models.ShelterStatus) ([]*models.Shelter, error) {
	var shelters []*models.Shelter
	query := conn(ctx, r.db).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&shelters).Error
	return shelters, err
}

// Update updates a shelter
func (r *shelterRepository) Update(ctx context.Context, shelter *models.Shelter) error {
	return conn(ctx, r.db).Omit("CreatedBy", "Members").Save(shelter).Error
}
