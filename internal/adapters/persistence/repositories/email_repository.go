package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// emailRepository implements EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new email outbox repository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

// Create stores a new outbox row
func (r *emailRepository) Create(ctx context.Context, email *models.Email) error {
	return conn(ctx, r.db).Create(email).Error
}

// Update updates an outbox row
func (r *emailRepository) Update(ctx context.Context, email *models.Email) error {
	return conn(ctx, r.db).Save(email).Error
}

// ListUnsent lists unsent rows below the attempt limit, oldest first
func (r *emailRepository) ListUnsent(ctx context.Context, maxAttempts, limit int) ([]*models.Email, error) {
	var emails []*models.Email
	err := conn(ctx, r.db).
		Where("sent = ? AND attempts < ?", false, maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&emails).Error
	return emails, err
}
