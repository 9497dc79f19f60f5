package memstore

import (
	"context"
	"sort"
	"strings"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"
)

type animalRepo struct{ s *Store }

func stripAnimal(a models.Animal) models.Animal {
	a.Shelter = nil
	a.Species = nil
	a.Breed = nil
	return a
}

// withRelations must be called with mu held
func (r *animalRepo) withRelations(a models.Animal) *models.Animal {
	if sh, ok := r.s.shelters[a.ShelterID]; ok {
		a.Shelter = &sh
	}
	if sp, ok := r.s.species[a.SpeciesID]; ok {
		a.Species = &sp
	}
	if b, ok := r.s.breeds[a.BreedID]; ok {
		a.Breed = &b
	}
	return &a
}

func (r *animalRepo) Create(_ context.Context, animal *models.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	animal.ID = r.s.nextID("animals")
	animal.CreatedAt = r.s.now()
	animal.UpdatedAt = animal.CreatedAt
	if animal.Status == "" {
		animal.Status = models.AnimalStatusNotAvailable
	}
	r.s.animals[animal.ID] = stripAnimal(*animal)
	return nil
}

func (r *animalRepo) GetByID(_ context.Context, id uint) (*models.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.animals[id]
	if !ok {
		return nil, domain.ErrAnimalNotFound
	}
	return r.withRelations(a), nil
}

// GetByIDForUpdate relies on WithinTx serialization for exclusivity
func (r *animalRepo) GetByIDForUpdate(_ context.Context, id uint) (*models.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.animals[id]
	if !ok {
		return nil, domain.ErrAnimalNotFound
	}
	return &a, nil
}

func (r *animalRepo) Search(_ context.Context, f repositories.AnimalFilter, memberShelterIDs []uint) ([]*models.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	member := make(map[uint]bool, len(memberShelterIDs))
	for _, id := range memberShelterIDs {
		member[id] = true
	}

	var out []*models.Animal
	for _, a := range r.s.animals {
		if !r.matches(a, f) {
			continue
		}
		if a.Status != models.AnimalStatusAvailable && !member[a.ShelterID] {
			continue
		}
		out = append(out, r.withRelations(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// matches must be called with mu held
func (r *animalRepo) matches(a models.Animal, f repositories.AnimalFilter) bool {
	switch {
	case f.ShelterID != nil && a.ShelterID != *f.ShelterID,
		f.SpeciesID != nil && a.SpeciesID != *f.SpeciesID,
		f.BreedID != nil && a.BreedID != *f.BreedID,
		f.Gender != nil && a.Gender != *f.Gender,
		f.Size != nil && a.Size != *f.Size,
		f.Color != nil && a.Color != *f.Color,
		f.IsSterilized != nil && a.IsSterilized != *f.IsSterilized,
		f.IsVaccinated != nil && a.IsVaccinated != *f.IsVaccinated,
		f.HasMicrochip != nil && a.HasMicrochip != *f.HasMicrochip,
		f.Status != nil && a.Status != *f.Status:
		return false
	}
	if f.City != nil {
		sh, ok := r.s.shelters[a.ShelterID]
		if !ok || !strings.EqualFold(sh.City, *f.City) {
			return false
		}
	}
	return true
}

func (r *animalRepo) Update(_ context.Context, animal *models.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.animals[animal.ID]; !ok {
		return domain.ErrAnimalNotFound
	}
	animal.UpdatedAt = r.s.now()
	r.s.animals[animal.ID] = stripAnimal(*animal)
	return nil
}
