package memstore

import (
	"context"
	"sort"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

type shelterRepo struct{ s *Store }

func stripShelter(sh models.Shelter) models.Shelter {
	sh.CreatedBy = nil
	sh.Members = nil
	return sh
}

func (r *shelterRepo) Create(_ context.Context, shelter *models.Shelter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shelter.ID = r.s.nextID("shelters")
	shelter.CreatedAt = r.s.now()
	shelter.UpdatedAt = shelter.CreatedAt
	if shelter.Status == "" {
		shelter.Status = models.ShelterStatusPending
	}
	r.s.shelters[shelter.ID] = stripShelter(*shelter)
	return nil
}

// withCreator must be called with mu held
func (r *shelterRepo) withCreator(sh models.Shelter) *models.Shelter {
	if u, ok := r.s.users[sh.CreatedByID]; ok {
		sh.CreatedBy = &u
	}
	return &sh
}

func (r *shelterRepo) GetByID(_ context.Context, id uint) (*models.Shelter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, ok := r.s.shelters[id]
	if !ok {
		return nil, domain.ErrShelterNotFound
	}
	return r.withCreator(sh), nil
}

func (r *shelterRepo) List(_ context.Context, status *models.ShelterStatus) ([]*models.Shelter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var shelters []*models.Shelter
	for _, sh := range r.s.shelters {
		if status != nil && sh.Status != *status {
			continue
		}
		shelters = append(shelters, r.withCreator(sh))
	}
	sort.Slice(shelters, func(i, j int) bool { return shelters[i].ID > shelters[j].ID })
	return shelters, nil
}

func (r *shelterRepo) Update(_ context.Context, shelter *models.Shelter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shelters[shelter.ID]; !ok {
		return domain.ErrShelterNotFound
	}
	shelter.UpdatedAt = r.s.now()
	r.s.shelters[shelter.ID] = stripShelter(*shelter)
	return nil
}

type membershipRepo struct{ s *Store }

func stripMembership(m models.ShelterUser) models.ShelterUser {
	m.User = nil
	m.Shelter = nil
	return m
}

func (r *membershipRepo) Create(_ context.Context, membership *models.ShelterUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.memberships {
		if m.ShelterID == membership.ShelterID && m.UserID == membership.UserID {
			return domain.ErrMembershipExists
		}
	}
	membership.ID = r.s.nextID("shelter_users")
	membership.CreatedAt = r.s.now()
	r.s.memberships[membership.ID] = stripMembership(*membership)
	return nil
}

func (r *membershipRepo) GetByID(_ context.Context, id uint) (*models.ShelterUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.memberships[id]
	if !ok {
		return nil, domain.ErrMembershipNotFound
	}
	return &m, nil
}

func (r *membershipRepo) GetByShelterAndUser(_ context.Context, shelterID, userID uint) (*models.ShelterUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.memberships {
		if m.ShelterID == shelterID && m.UserID == userID {
			return &m, nil
		}
	}
	return nil, domain.ErrMembershipNotFound
}

func (r *membershipRepo) ListByShelter(_ context.Context, shelterID uint, roles ...domain.ShelterRole) ([]*models.ShelterUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.ShelterUser
	for _, m := range r.s.memberships {
		if m.ShelterID != shelterID || !hasRole(roles, m.Role) {
			continue
		}
		if u, ok := r.s.users[m.UserID]; ok {
			m.User = &u
		}
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func hasRole(roles []domain.ShelterRole, role domain.ShelterRole) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r *membershipRepo) ShelterIDsByUser(_ context.Context, userID uint) ([]uint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []uint
	for _, m := range r.s.memberships {
		if m.UserID == userID {
			ids = append(ids, m.ShelterID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *membershipRepo) Update(_ context.Context, membership *models.ShelterUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.memberships[membership.ID]; !ok {
		return domain.ErrMembershipNotFound
	}
	r.s.memberships[membership.ID] = stripMembership(*membership)
	return nil
}

func (r *membershipRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.memberships, id)
	return nil
}
