package memstore

import (
	"context"
	"sort"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

type adoptionRepo struct{ s *Store }

func stripRequest(req models.AdoptionRequest) models.AdoptionRequest {
	req.Animal = nil
	req.Shelter = nil
	req.Requester = nil
	return req
}

// withContext must be called with mu held
func (r *adoptionRepo) withContext(req models.AdoptionRequest) *models.AdoptionRequest {
	if a, ok := r.s.animals[req.AnimalID]; ok {
		req.Animal = (&animalRepo{r.s}).withRelations(a)
		req.Animal.Shelter = nil
	}
	if sh, ok := r.s.shelters[req.ShelterID]; ok {
		req.Shelter = &sh
	}
	if u, ok := r.s.users[req.RequesterID]; ok {
		req.Requester = &u
	}
	return &req
}

func (r *adoptionRepo) Create(_ context.Context, req *models.AdoptionRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.requests {
		if existing.AnimalID == req.AnimalID && existing.RequesterID == req.RequesterID {
			return domain.ErrDuplicateAdoptionReq
		}
	}
	req.ID = r.s.nextID("adoption_requests")
	req.SentAt = r.s.now()
	req.UpdatedAt = req.SentAt
	if req.Status == "" {
		req.Status = models.AdoptionStatusPending
	}
	r.s.requests[req.ID] = stripRequest(*req)
	return nil
}

func (r *adoptionRepo) GetByID(_ context.Context, id uint) (*models.AdoptionRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, domain.ErrAdoptionRequestNotFound
	}
	return r.withContext(req), nil
}

func (r *adoptionRepo) ExistsForAnimalAndRequester(_ context.Context, animalID, requesterID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, req := range r.s.requests {
		if req.AnimalID == animalID && req.RequesterID == requesterID {
			return true, nil
		}
	}
	return false, nil
}

func (r *adoptionRepo) ListSiblings(_ context.Context, animalID, excludeID uint) ([]*models.AdoptionRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.AdoptionRequest
	for _, req := range r.s.requests {
		if req.AnimalID == animalID && req.ID != excludeID {
			out = append(out, &req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *adoptionRepo) ListByShelter(_ context.Context, shelterID uint, status *models.AdoptionRequestStatus) ([]*models.AdoptionRequest, error) {
	return r.list(func(req models.AdoptionRequest) bool {
		return req.ShelterID == shelterID && (status == nil || req.Status == *status)
	}), nil
}

func (r *adoptionRepo) ListByRequester(_ context.Context, requesterID uint) ([]*models.AdoptionRequest, error) {
	return r.list(func(req models.AdoptionRequest) bool {
		return req.RequesterID == requesterID
	}), nil
}

func (r *adoptionRepo) list(keep func(models.AdoptionRequest) bool) []*models.AdoptionRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.AdoptionRequest
	for _, req := range r.s.requests {
		if keep(req) {
			out = append(out, r.withContext(req))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *adoptionRepo) Update(_ context.Context, req *models.AdoptionRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requests[req.ID]; !ok {
		return domain.ErrAdoptionRequestNotFound
	}
	req.UpdatedAt = r.s.now()
	r.s.requests[req.ID] = stripRequest(*req)
	return nil
}
