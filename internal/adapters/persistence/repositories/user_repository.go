package repositories

import (
	"context"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return conn(ctx, r.db).Create(user).Error
}

// GetByID gets a user by ID with its system role
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := conn(ctx, r.db).Preload("SystemRole").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// GetByEmail gets a user by email with its system role
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := conn(ctx, r.db).Preload("SystemRole").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// ExistsByEmailOrDocument checks if email or document id is taken
func (r *userRepository) ExistsByEmailOrDocument(ctx context.Context, email, documentID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.User{}).
		Where("email = ? OR document_id = ?", email, documentID).
		Count(&count).Error
	return count > 0, err
}

// ListByRole lists all users holding a system role
func (r *userRepository) ListByRole(ctx context.Context, role domain.SystemRole) ([]*models.User, error) {
	var users []*models.User
	err := conn(ctx, r.db).
		Preload("SystemRole").
		Joins("JOIN system_roles ON system_roles.id = users.system_role_id").
		Where("system_roles.name = ?", role).
		Find(&users).Error
	return users, err
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return conn(ctx, r.db).Omit("SystemRole").Save(user).Error
}

// systemRoleRepository implements SystemRoleRepository interface
type systemRoleRepository struct {
	db *gorm.DB
}

// NewSystemRoleRepository creates a new system role repository
func NewSystemRoleRepository(db *gorm.DB) SystemRoleRepository {
	return &systemRoleRepository{db: db}
}

// GetByName gets a system role by name
func (r *systemRoleRepository) GetByName(ctx context.Context, name domain.SystemRole) (*models.SystemRole, error) {
	var role models.SystemRole
	err := conn(ctx, r.db).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, notFound(err, domain.ErrDefaultRoleMissing)
	}
	return &role, nil
}

// Create creates a new system role
func (r *systemRoleRepository) Create(ctx context.Context, role *models.SystemRole) error {
	return conn(ctx, r.db).Create(role).Error
}
