package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"

	"gorm.io/gorm"
)

// membershipRepository implements MembershipRepository interface
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new shelter membership repository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Create creates a new membership
func (r *membershipRepository) Create(ctx context.Context, membership *models.ShelterUser) error {
	return conn(ctx, r.db).Omit("User", "Shelter").Create(membership).Error
}

// GetByID gets a membership by ID
func (r *membershipRepository) GetByID(ctx context.Context, id uint) (*models.ShelterUser, error) {
	var membership models.ShelterUser
	err := conn(ctx, r.db).First(&membership, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrMembershipNotFound)
	}
	return &membership, nil
}

// GetByShelterAndUser gets the membership row for a (shelter, user) pair
func (r *membershipRepository) GetByShelterAndUser(ctx context.Context, shelterID, userID uint) (*models.ShelterUser, error) {
	var membership models.ShelterUser
	err := conn(ctx, r.db).
		Where("shelter_id = ? AND user_id = ?", shelterID, userID).
		First(&membership).Error
	if err != nil {
		return nil, notFound(err, domain.ErrMembershipNotFound)
	}
	return &membership, nil
}

// ListByShelter lists memberships of a shelter with users preloaded
func (r *membershipRepository) ListByShelter(ctx context.Context, shelterID uint, roles ...domain.ShelterRole) ([]*models.ShelterUser, error) {
	var memberships []*models.ShelterUser
	query := conn(ctx, r.db).Preload("User").Where("shelter_id = ?", shelterID)
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}
	err := query.Order("id ASC").Find(&memberships).Error
	return memberships, err
}

// ShelterIDsByUser lists the shelters a user belongs to
func (r *membershipRepository) ShelterIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := conn(ctx, r.db).Model(&models.ShelterUser{}).
		Where("user_id = ?", userID).
		Pluck("shelter_id", &ids).Error
	return ids, err
}

// Update updates a membership
func (r *membershipRepository) Update(ctx context.Context, membership *models.ShelterUser) error {
	return conn(ctx, r.db).Omit("User", "Shelter").Save(membership).Error
}

// Delete deletes a membership
func (r *membershipRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&models.ShelterUser{}, id).Error
}
