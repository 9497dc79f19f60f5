package memstore

import (
	"context"
	"sort"
	"strings"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

type roleRepo struct{ s *Store }

func (r *roleRepo) GetByName(_ context.Context, name domain.SystemRole) (*models.SystemRole, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, role := range r.s.roles {
		if role.Name == name {
			return &role, nil
		}
	}
	return nil, domain.ErrDefaultRoleMissing
}

func (r *roleRepo) Create(_ context.Context, role *models.SystemRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role.ID = r.s.nextID("system_roles")
	r.s.roles[role.ID] = *role
	return nil
}

type userRepo struct{ s *Store }

// withRole must be called with mu held
func (r *userRepo) withRole(u models.User) *models.User {
	if role, ok := r.s.roles[u.SystemRoleID]; ok {
		u.SystemRole = &role
	}
	return &u
}

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextID("users")
	user.CreatedAt = r.s.now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	stored.SystemRole = nil
	r.s.users[user.ID] = stored
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.withRole(u), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return r.withRole(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepo) ExistsByEmailOrDocument(_ context.Context, email, documentID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) || u.DocumentID == documentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) ListByRole(_ context.Context, role domain.SystemRole) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var users []*models.User
	for _, u := range r.s.users {
		if sr, ok := r.s.roles[u.SystemRoleID]; ok && sr.Name == role {
			users = append(users, r.withRole(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *userRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = r.s.now()
	stored := *user
	stored.SystemRole = nil
	r.s.users[user.ID] = stored
	return nil
}

type otpRepo struct{ s *Store }

func (r *otpRepo) Create(_ context.Context, code *models.OtpCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	code.ID = r.s.nextID("otp_codes")
	code.CreatedAt = r.s.now()
	r.s.codes[code.ID] = *code
	return nil
}

func (r *otpRepo) GetLatestByUserID(_ context.Context, userID uint) (*models.OtpCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var latest *models.OtpCode
	for _, c := range r.s.codes {
		if c.UserID != userID {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) ||
			(c.CreatedAt.Equal(latest.CreatedAt) && c.ID > latest.ID) {
			latest = &c
		}
	}
	if latest == nil {
		return nil, domain.ErrCodeNotFound
	}
	return latest, nil
}

// GetLatestByUserIDForUpdate relies on WithinTx serialization for exclusivity
func (r *otpRepo) GetLatestByUserIDForUpdate(ctx context.Context, userID uint) (*models.OtpCode, error) {
	return r.GetLatestByUserID(ctx, userID)
}

func (r *otpRepo) Update(_ context.Context, code *models.OtpCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.codes[code.ID]; !ok {
		return domain.ErrCodeNotFound
	}
	r.s.codes[code.ID] = *code
	return nil
}
