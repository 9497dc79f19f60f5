package services

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"petfind/internal/adapters/persistence/memstore"
	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
	"petfind/internal/pkg/jwt"
	"petfind/internal/pkg/password"
)

// recordingDispatcher collects dispatched messages instead of sending them
type recordingDispatcher struct {
	mu   sync.Mutex
	msgs []domain.Message
}

func (d *recordingDispatcher) Dispatch(_ context.Context, msgs ...domain.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.msgs = append(d.msgs, msgs...)
}

func (d *recordingDispatcher) all() []domain.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Message(nil), d.msgs...)
}

func (d *recordingDispatcher) byTemplate(template string) []domain.Message {
	var out []domain.Message
	for _, m := range d.all() {
		if m.Template == template {
			out = append(out, m)
		}
	}
	return out
}

func (d *recordingDispatcher) reset() {
	d.mu.Lock()
	d.msgs = nil
	d.mu.Unlock()
}

// plainCipher marks values instead of encrypting them
type plainCipher struct{}

func (plainCipher) Encrypt(_ context.Context, s string) (string, error) { return "enc:" + s, nil }

func (plainCipher) Decrypt(_ context.Context, s string) (string, error) {
	return strings.TrimPrefix(s, "enc:"), nil
}

// fixture wires every service over a fresh in-memory store
type fixture struct {
	t      *testing.T
	ctx    context.Context
	store  *memstore.Store
	repos  memstore.Repositories
	notify *recordingDispatcher
	tokens *jwt.Issuer

	roles map[domain.SystemRole]*models.SystemRole
	seq   int

	caps        *CapabilityService
	otp         *OTPService
	auth        *AuthService
	memberships *MembershipService
	shelters    *ShelterService
	catalog     *CatalogService
	animals     *AnimalService
	adoptions   *AdoptionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := memstore.New()
	repos := store.Repositories()

	f := &fixture{
		t:      t,
		ctx:    context.Background(),
		store:  store,
		repos:  repos,
		notify: &recordingDispatcher{},
		tokens: jwt.NewIssuer("test-secret", 60),
		roles:  make(map[domain.SystemRole]*models.SystemRole),
	}
	for _, name := range []domain.SystemRole{domain.SystemRoleUser, domain.SystemRoleVolunteer, domain.SystemRoleAdmin} {
		role := &models.SystemRole{Name: name}
		require.NoError(t, repos.SystemRoles.Create(f.ctx, role))
		f.roles[name] = role
	}

	msgs := NewMessages("support@petfind.test", "https://petfind.test")
	c := NewContainer(Deps{
		Repos:    repos,
		Cipher:   plainCipher{},
		Tokens:   f.tokens,
		Notify:   f.notify,
		Messages: msgs,
		OTPTTL:   DefaultOTPTTL,
		Log:      log,
	})
	c.Auth.SetPasswordCost(bcrypt.MinCost)
	f.caps, f.otp, f.auth = c.Capabilities, c.OTP, c.Auth
	f.memberships, f.shelters, f.catalog = c.Memberships, c.Shelters, c.Catalog
	f.animals, f.adoptions = c.Animals, c.Adoptions
	return f
}

func (f *fixture) user(role domain.SystemRole, verified bool) *models.User {
	f.t.Helper()
	f.seq++
	hashed, err := password.HashWithCost("password123", bcrypt.MinCost)
	require.NoError(f.t, err)

	u := &models.User{
		FirstName:    "Test",
		LastName:     string(role),
		DocumentID:   fmt.Sprintf("DOC-%d", f.seq),
		Email:        fmt.Sprintf("user%d@petfind.test", f.seq),
		Password:     hashed,
		IsVerified:   verified,
		SystemRoleID: f.roles[role].ID,
	}
	require.NoError(f.t, f.repos.Users.Create(f.ctx, u))
	u.SystemRole = f.roles[role]
	return u
}

func (f *fixture) admin() *models.User { return f.user(domain.SystemRoleAdmin, true) }

func (f *fixture) member() *models.User { return f.user(domain.SystemRoleUser, true) }

// approvedShelter creates a shelter owned by owner
func (f *fixture) approvedShelter(owner *models.User) *models.Shelter {
	f.t.Helper()
	sh := &models.Shelter{Name: "Happy Paws", City: "Lima", Status: models.ShelterStatusApproved, CreatedByID: owner.ID}
	require.NoError(f.t, f.repos.Shelters.Create(f.ctx, sh))
	f.join(sh, owner, domain.ShelterRoleOwner)
	return sh
}

func (f *fixture) join(sh *models.Shelter, u *models.User, role domain.ShelterRole) {
	f.t.Helper()
	require.NoError(f.t, f.repos.Memberships.Create(f.ctx, &models.ShelterUser{ShelterID: sh.ID, UserID: u.ID, Role: role}))
}

func (f *fixture) taxonomy() (*models.Species, *models.Breed) {
	f.t.Helper()
	sp := &models.Species{Name: "Dog"}
	require.NoError(f.t, f.repos.Species.Create(f.ctx, sp))
	br := &models.Breed{SpeciesID: sp.ID, Name: "Mixed"}
	require.NoError(f.t, f.repos.Breeds.Create(f.ctx, br))
	return sp, br
}

func (f *fixture) animal(sh *models.Shelter, status models.AnimalStatus) *models.Animal {
	f.t.Helper()
	sp, br := f.taxonomy()
	a := &models.Animal{
		ShelterID: sh.ID,
		Status:    status,
		Name:      "Luna",
		SpeciesID: sp.ID,
		BreedID:   br.ID,
		Gender:    models.AnimalGenderFemale,
		Size:      models.AnimalSizeMedium,
	}
	require.NoError(f.t, f.repos.Animals.Create(f.ctx, a))
	return a
}
