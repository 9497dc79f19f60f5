package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// adoptionRequestRepository implements AdoptionRequestRepository interface
type adoptionRequestRepository struct {
	db *gorm.DB
}

// NewAdoptionRequestRepository creates a new adoption request repository
func NewAdoptionRequestRepository(db *gorm.DB) AdoptionRequestRepository {
	return &adoptionRequestRepository{db: db}
}

// withContext preloads animal, shelter and requester
func withContext(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Animal").
		Preload("Animal.Species").
		Preload("Animal.Breed").
		Preload("Shelter").
		Preload("Requester")
}

// Create creates a new adoption request
func (r *adoptionRequestRepository) Create(ctx context.Context, request *models.AdoptionRequest) error {
	err := conn(ctx, r.db).Omit(clause.Associations).Create(request).Error
	return duplicate(err, domain.ErrDuplicateAdoptionReq)
}

// GetByID gets an adoption request by ID with relations
func (r *adoptionRequestRepository) GetByID(ctx context.Context, id uint) (*models.AdoptionRequest, error) {
	var request models.AdoptionRequest
	err := withContext(conn(ctx, r.db)).First(&request, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrAdoptionRequestNotFound)
	}
	return &request, nil
}

// ExistsForAnimalAndRequester checks if the requester already applied for the animal
func (r *adoptionRequestRepository) ExistsForAnimalAndRequester(ctx context.Context, animalID, requesterID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.AdoptionRequest{}).
		Where("animal_id = ? AND requester_id = ?", animalID, requesterID).
		Count(&count).Error
	return count > 0, err
}

// ListSiblings lists every other request for the same animal
func (r *adoptionRequestRepository) ListSiblings(ctx context.Context, animalID, excludeID uint) ([]*models.AdoptionRequest, error) {
	var requests []*models.AdoptionRequest
	err := conn(ctx, r.db).
		Where("animal_id = ? AND id <> ?", animalID, excludeID).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

// ListByShelter lists requests of a shelter
func (r *adoptionRequestRepository) ListByShelter(ctx context.Context, shelterID uint, status *models.AdoptionRequestStatus) ([]*models.AdoptionRequest, error) {
	var requests []*models.AdoptionRequest
	query := withContext(conn(ctx, r.db)).Where("shelter_id = ?", shelterID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("sent_at DESC").Find(&requests).Error
	return requests, err
}

// ListByRequester lists requests sent by a user
func (r *adoptionRequestRepository) ListByRequester(ctx context.Context, requesterID uint) ([]*models.AdoptionRequest, error) {
	var requests []*models.AdoptionRequest
	err := withContext(conn(ctx, r.db)).
		Where("requester_id = ?", requesterID).
		Order("sent_at DESC").
		Find(&requests).Error
	return requests, err
}

// Update updates an adoption request
func (r *adoptionRequestRepository) Update(ctx context.Context, request *models.AdoptionRequest) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(request).Error
}
