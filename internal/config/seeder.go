package config

import (
	"context"
	"errors"
	"strings"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"
	"petfind/internal/pkg/password"

	"go.uber.org/zap"
)

// Seeder handles database seeding
type Seeder struct {
	roles repositories.SystemRoleRepository
	users repositories.UserRepository
	seed  SeedConfig
	log   *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(roles repositories.SystemRoleRepository, users repositories.UserRepository, seed SeedConfig, log *zap.Logger) *Seeder {
	return &Seeder{roles: roles, users: users, seed: seed, log: log.Named("seeder")}
}

// Run executes all seeders. It is safe to run on every start.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedSystemRoles(ctx); err != nil {
		return err
	}
	if err := s.seedAdminUser(ctx); err != nil {
		s.log.Warn("admin seeder skipped", zap.Error(err))
	}
	return nil
}

// seedSystemRoles creates the global roles signup and authorization rely on
func (s *Seeder) seedSystemRoles(ctx context.Context) error {
	for _, name := range []domain.SystemRole{domain.SystemRoleUser, domain.SystemRoleVolunteer, domain.SystemRoleAdmin} {
		_, err := s.roles.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := s.roles.Create(ctx, &models.SystemRole{Name: name}); err != nil {
			return err
		}
		s.log.Info("system role created", zap.String("role", string(name)))
	}
	return nil
}

// seedAdminUser creates the bootstrap admin from ADMIN_EMAIL/ADMIN_PASSWORD.
// Nothing is created when either is unset.
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.seed.AdminEmail))
	if email == "" || s.seed.AdminPassword == "" {
		return nil
	}

	exists, err := s.users.ExistsByEmailOrDocument(ctx, email, "ADMIN-"+email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	role, err := s.roles.GetByName(ctx, domain.SystemRoleAdmin)
	if err != nil {
		return err
	}
	hashed, err := password.Hash(s.seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName:    "PetFind",
		LastName:     "Admin",
		DocumentID:   "ADMIN-" + email,
		Email:        email,
		Password:     hashed,
		IsVerified:   true,
		SystemRoleID: role.ID,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Info("admin user created", zap.String("email", admin.Email))
	return nil
}
