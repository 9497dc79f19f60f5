package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"
)

type AnimalServiceSuite struct {
	suite.Suite
	f          *fixture
	owner      *models.User
	director   *models.User
	publicator *models.User
	outsider   *models.User
	shelter    *models.Shelter
	species    *models.Species
	breed      *models.Breed
}

func TestAnimalServiceSuite(t *testing.T) {
	suite.Run(t, new(AnimalServiceSuite))
}

func (s *AnimalServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.owner = s.f.member()
	s.shelter = s.f.approvedShelter(s.owner)
	s.director = s.f.member()
	s.f.join(s.shelter, s.director, domain.ShelterRoleDirective)
	s.publicator = s.f.member()
	s.f.join(s.shelter, s.publicator, domain.ShelterRoleMember)
	s.outsider = s.f.member()
	s.species, s.breed = s.f.taxonomy()
}

func (s *AnimalServiceSuite) register(by *models.User) *models.Animal {
	animal, err := s.f.animals.Register(s.f.ctx, RegisterAnimalInput{
		ShelterID: s.shelter.ID,
		SpeciesID: s.species.ID,
		BreedID:   s.breed.ID,
		Name:      "Firulais",
		Color:     "brown",
	}, by.ID)
	s.Require().NoError(err)
	return animal
}

// =============================================================================
// Register
// =============================================================================

func (s *AnimalServiceSuite) TestRegisterStartsPrivate() {
	animal := s.register(s.publicator)
	s.Equal(models.AnimalStatusNotAvailable, animal.Status)
	s.Equal(models.AnimalGenderUnknown, animal.Gender)
	s.Equal(models.AnimalSizeMedium, animal.Size)
	s.Require().NotNil(animal.Species)
	s.Equal("Dog", animal.Species.Name)

	sent := s.f.notify.byTemplate(TemplateAnimalCreated)
	s.Require().Len(sent, 1, "only directors are told")
	s.Equal(s.director.Email, sent[0].Email)
	s.Equal("Firulais", sent[0].Context["animalName"])
	s.Equal(s.publicator.Email, sent[0].Context["actorEmail"])
}

func (s *AnimalServiceSuite) TestRegisterGuards() {
	base := RegisterAnimalInput{ShelterID: s.shelter.ID, SpeciesID: s.species.ID, BreedID: s.breed.ID, Name: "Rex"}

	s.Run("outsider", func() {
		_, err := s.f.animals.Register(s.f.ctx, base, s.outsider.ID)
		s.ErrorIs(err, domain.ErrNotShelterMember)
	})

	s.Run("admin without membership", func() {
		_, err := s.f.animals.Register(s.f.ctx, base, s.f.admin().ID)
		s.NoError(err)
	})

	s.Run("breed of another species", func() {
		_, otherBreed := s.f.taxonomy()
		in := base
		in.BreedID = otherBreed.ID
		_, err := s.f.animals.Register(s.f.ctx, in, s.owner.ID)
		s.ErrorIs(err, domain.ErrBreedNotFound)
	})

	s.Run("unknown shelter", func() {
		in := base
		in.ShelterID = 9999
		_, err := s.f.animals.Register(s.f.ctx, in, s.owner.ID)
		s.ErrorIs(err, domain.ErrShelterNotFound)
	})

	s.Run("invalid gender", func() {
		in := base
		in.Gender = "dragon"
		_, err := s.f.animals.Register(s.f.ctx, in, s.owner.ID)
		s.ErrorIs(err, domain.ErrInvalidAnimalGender)
	})

	s.Run("blank name", func() {
		in := base
		in.Name = " "
		_, err := s.f.animals.Register(s.f.ctx, in, s.owner.ID)
		s.ErrorIs(err, domain.ErrNameRequired)
	})
}

// =============================================================================
// Update
// =============================================================================

func (s *AnimalServiceSuite) TestUpdateWithoutChangesIsSilent() {
	animal := s.register(s.publicator)
	s.f.notify.reset()

	same := "brown"
	name := "Firulais"
	got, err := s.f.animals.Update(s.f.ctx, animal.ID, UpdateAnimalInput{Color: &same, Name: &name}, s.publicator.ID)
	s.Require().NoError(err)
	s.Equal(animal.ID, got.ID)
	s.Empty(s.f.notify.all())
}

func (s *AnimalServiceSuite) TestUpdateNotifiesDirectors() {
	animal := s.register(s.publicator)
	s.f.notify.reset()

	vaccinated := true
	got, err := s.f.animals.Update(s.f.ctx, animal.ID, UpdateAnimalInput{IsVaccinated: &vaccinated}, s.publicator.ID)
	s.Require().NoError(err)
	s.True(got.IsVaccinated)
	s.Len(s.f.notify.byTemplate(TemplateAnimalUpdated), 1)

	_, err = s.f.animals.Update(s.f.ctx, animal.ID, UpdateAnimalInput{IsVaccinated: &vaccinated}, s.outsider.ID)
	s.ErrorIs(err, domain.ErrPermissionDenied)
}

// =============================================================================
// Publish
// =============================================================================

func (s *AnimalServiceSuite) TestPublish() {
	animal := s.register(s.publicator)
	s.f.notify.reset()

	s.Run("publicators cannot publish", func() {
		_, err := s.f.animals.Publish(s.f.ctx, animal.ID, s.publicator.ID)
		s.ErrorIs(err, domain.ErrForbidden)
	})

	s.Run("directors publish", func() {
		published, err := s.f.animals.Publish(s.f.ctx, animal.ID, s.director.ID)
		s.Require().NoError(err)
		s.Equal(models.AnimalStatusAvailable, published.Status)
		s.Len(s.f.notify.byTemplate(TemplateAnimalPublished), 1)
	})

	s.Run("publishing twice changes nothing", func() {
		again, err := s.f.animals.Publish(s.f.ctx, animal.ID, s.owner.ID)
		s.Require().NoError(err)
		s.Equal(models.AnimalStatusAvailable, again.Status)
		s.Len(s.f.notify.byTemplate(TemplateAnimalPublished), 1)
	})

	s.Run("adopted animals cannot be republished", func() {
		s.Require().NoError(s.f.animals.CommitAdoption(s.f.ctx, animal.ID, s.outsider.ID))
		_, err := s.f.animals.Publish(s.f.ctx, animal.ID, s.director.ID)
		s.ErrorIs(err, domain.ErrAnimalAlreadyAdopted)
	})
}

// =============================================================================
// Visibility
// =============================================================================

func (s *AnimalServiceSuite) TestVisibility() {
	private := s.register(s.publicator)
	public := s.register(s.publicator)
	_, err := s.f.animals.Publish(s.f.ctx, public.ID, s.director.ID)
	s.Require().NoError(err)

	s.Run("outsiders list only available animals", func() {
		list, err := s.f.animals.ListAvailable(s.f.ctx, repositories.AnimalFilter{}, s.outsider.ID)
		s.Require().NoError(err)
		s.Require().Len(list, 1)
		s.Equal(public.ID, list[0].ID)
	})

	s.Run("anonymous callers are outsiders", func() {
		list, err := s.f.animals.ListAvailable(s.f.ctx, repositories.AnimalFilter{}, 0)
		s.Require().NoError(err)
		s.Len(list, 1)
	})

	s.Run("members see their shelter's private animals", func() {
		list, err := s.f.animals.ListAvailable(s.f.ctx, repositories.AnimalFilter{}, s.publicator.ID)
		s.Require().NoError(err)
		s.Len(list, 2)
	})

	s.Run("filters narrow the result", func() {
		shelterID := s.shelter.ID
		status := models.AnimalStatusNotAvailable
		list, err := s.f.animals.ListAvailable(s.f.ctx, repositories.AnimalFilter{ShelterID: &shelterID, Status: &status}, s.owner.ID)
		s.Require().NoError(err)
		s.Require().Len(list, 1)
		s.Equal(private.ID, list[0].ID)
	})

	s.Run("private animals are not found for outsiders", func() {
		_, err := s.f.animals.GetByID(s.f.ctx, private.ID, s.outsider.ID)
		s.ErrorIs(err, domain.ErrAnimalNotFound)

		got, err := s.f.animals.GetByID(s.f.ctx, private.ID, s.director.ID)
		s.Require().NoError(err)
		s.Equal(private.ID, got.ID)
	})
}
