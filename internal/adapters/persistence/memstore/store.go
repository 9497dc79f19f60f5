// Package memstore is an in-memory implementation of the repository
// interfaces. It backs service tests and local runs without MySQL.
package memstore

import (
	"context"
	"sync"
	"time"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
)

// Store holds every table in memory. Entities are copied on the way in and
// on the way out so callers only observe persisted state.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	now  func() time.Time

	seq map[string]uint

	roles       map[uint]models.SystemRole
	users       map[uint]models.User
	codes       map[uint]models.OtpCode
	shelters    map[uint]models.Shelter
	memberships map[uint]models.ShelterUser
	species     map[uint]models.Species
	breeds      map[uint]models.Breed
	animals     map[uint]models.Animal
	requests    map[uint]models.AdoptionRequest
	emails      map[uint]models.Email
}

// New creates an empty store
func New() *Store {
	return &Store{
		now:         time.Now,
		seq:         make(map[string]uint),
		roles:       make(map[uint]models.SystemRole),
		users:       make(map[uint]models.User),
		codes:       make(map[uint]models.OtpCode),
		shelters:    make(map[uint]models.Shelter),
		memberships: make(map[uint]models.ShelterUser),
		species:     make(map[uint]models.Species),
		breeds:      make(map[uint]models.Breed),
		animals:     make(map[uint]models.Animal),
		requests:    make(map[uint]models.AdoptionRequest),
		emails:      make(map[uint]models.Email),
	}
}

// SetClock overrides the clock used for CreatedAt/UpdatedAt stamps
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// nextID must be called with mu held
func (s *Store) nextID(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

type txKey struct{}

// WithinTx serializes fn against every other transaction on the store.
// Writes made before an error are not rolled back.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

// Repositories bundles the store behind the repository interfaces
type Repositories = repositories.Registry

// Repositories returns every repository view over s
func (s *Store) Repositories() Repositories {
	return Repositories{
		Transactor:  s,
		Users:       &userRepo{s},
		SystemRoles: &roleRepo{s},
		OtpCodes:    &otpRepo{s},
		Shelters:    &shelterRepo{s},
		Memberships: &membershipRepo{s},
		Species:     &speciesRepo{s},
		Breeds:      &breedRepo{s},
		Animals:     &animalRepo{s},
		Adoptions:   &adoptionRepo{s},
		Emails:      &emailRepo{s},
	}
}
