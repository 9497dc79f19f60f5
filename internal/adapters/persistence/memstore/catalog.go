package memstore

import (
	"context"
	"sort"
	"strings"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

type speciesRepo struct{ s *Store }

func (r *speciesRepo) Create(_ context.Context, species *models.Species) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	species.ID = r.s.nextID("species")
	species.CreatedAt = r.s.now()
	r.s.species[species.ID] = *species
	return nil
}

func (r *speciesRepo) GetByID(_ context.Context, id uint) (*models.Species, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sp, ok := r.s.species[id]
	if !ok {
		return nil, domain.ErrSpeciesNotFound
	}
	return &sp, nil
}

func (r *speciesRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sp := range r.s.species {
		if strings.EqualFold(sp.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *speciesRepo) List(_ context.Context) ([]*models.Species, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.Species
	for _, sp := range r.s.species {
		out = append(out, &sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *speciesRepo) Update(_ context.Context, species *models.Species) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.species[species.ID]
	if !ok {
		return domain.ErrSpeciesNotFound
	}
	for id, other := range r.s.species {
		if id != species.ID && strings.EqualFold(other.Name, species.Name) {
			return domain.ErrSpeciesAlreadyExists
		}
	}
	sp.Name = species.Name
	r.s.species[sp.ID] = sp
	return nil
}

func (r *speciesRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.species[id]; !ok {
		return domain.ErrSpeciesNotFound
	}
	delete(r.s.species, id)
	return nil
}

func (r *speciesRepo) InUse(_ context.Context, id uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.breeds {
		if b.SpeciesID == id {
			return true, nil
		}
	}
	for _, a := range r.s.animals {
		if a.SpeciesID == id {
			return true, nil
		}
	}
	return false, nil
}

type breedRepo struct{ s *Store }

func (r *breedRepo) Create(_ context.Context, breed *models.Breed) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	breed.ID = r.s.nextID("breeds")
	breed.CreatedAt = r.s.now()
	stored := *breed
	stored.Species = nil
	r.s.breeds[breed.ID] = stored
	return nil
}

func (r *breedRepo) GetByID(_ context.Context, id uint) (*models.Breed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.breeds[id]
	if !ok {
		return nil, domain.ErrBreedNotFound
	}
	return &b, nil
}

func (r *breedRepo) ExistsByName(_ context.Context, speciesID uint, name string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.breeds {
		if b.SpeciesID == speciesID && strings.EqualFold(b.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *breedRepo) ListBySpecies(_ context.Context, speciesID uint) ([]*models.Breed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.Breed
	for _, b := range r.s.breeds {
		if b.SpeciesID == speciesID {
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *breedRepo) Update(_ context.Context, breed *models.Breed) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.breeds[breed.ID]
	if !ok {
		return domain.ErrBreedNotFound
	}
	for id, other := range r.s.breeds {
		if id != b.ID && other.SpeciesID == b.SpeciesID && strings.EqualFold(other.Name, breed.Name) {
			return domain.ErrBreedAlreadyExists
		}
	}
	b.Name = breed.Name
	r.s.breeds[b.ID] = b
	return nil
}

func (r *breedRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.breeds[id]; !ok {
		return domain.ErrBreedNotFound
	}
	delete(r.s.breeds, id)
	return nil
}

func (r *breedRepo) InUse(_ context.Context, id uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.animals {
		if a.BreedID == id {
			return true, nil
		}
	}
	return false, nil
}
