package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// otpCodeRepository implements OtpCodeRepository interface
type otpCodeRepository struct {
	db *gorm.DB
}

// NewOtpCodeRepository creates a new one-time code repository
func NewOtpCodeRepository(db *gorm.DB) OtpCodeRepository {
	return &otpCodeRepository{db: db}
}

// Create creates a new code record
func (r *otpCodeRepository) Create(ctx context.Context, code *models.OtpCode) error {
	return conn(ctx, r.db).Create(code).Error
}

// GetLatestByUserID gets the newest code record of a user
func (r *otpCodeRepository) GetLatestByUserID(ctx context.Context, userID uint) (*models.OtpCode, error) {
	return r.latest(conn(ctx, r.db), userID)
}

// GetLatestByUserIDForUpdate gets the newest code record and locks it (SELECT ... FOR UPDATE)
func (r *otpCodeRepository) GetLatestByUserIDForUpdate(ctx context.Context, userID uint) (*models.OtpCode, error) {
	return r.latest(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *otpCodeRepository) latest(db *gorm.DB, userID uint) (*models.OtpCode, error) {
	var code models.OtpCode
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		First(&code).Error
	if err != nil {
		return nil, notFound(err, domain.ErrCodeNotFound)
	}
	return &code, nil
}

// Update updates a code record
func (r *otpCodeRepository) Update(ctx context.Context, code *models.OtpCode) error {
	return conn(ctx, r.db).Save(code).Error
}
