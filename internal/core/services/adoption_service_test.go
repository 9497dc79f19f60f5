package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

type AdoptionServiceSuite struct {
	suite.Suite
	f        *fixture
	owner    *models.User
	director *models.User
	shelter  *models.Shelter
	animal   *models.Animal
}

func TestAdoptionServiceSuite(t *testing.T) {
	suite.Run(t, new(AdoptionServiceSuite))
}

func (s *AdoptionServiceSuite) SetupTest() {
	s.f = newFixture(s.T())
	s.owner = s.f.member()
	s.shelter = s.f.approvedShelter(s.owner)
	s.director = s.f.member()
	s.f.join(s.shelter, s.director, domain.ShelterRoleDirective)
	s.animal = s.f.animal(s.shelter, models.AnimalStatusAvailable)
}

func (s *AdoptionServiceSuite) apply(by *models.User) *models.AdoptionRequest {
	req, err := s.f.adoptions.Create(s.f.ctx, CreateAdoptionInput{AnimalID: s.animal.ID, Message: "I have a garden"}, by.ID)
	s.Require().NoError(err)
	return req
}

func (s *AdoptionServiceSuite) status(id uint) models.AdoptionRequestStatus {
	req, err := s.f.repos.Adoptions.GetByID(s.f.ctx, id)
	s.Require().NoError(err)
	return req.Status
}

// =============================================================================
// Create
// =============================================================================

func (s *AdoptionServiceSuite) TestCreateNotifiesManagers() {
	applicant := s.f.member()
	req := s.apply(applicant)
	s.Equal(models.AdoptionStatusPending, req.Status)
	s.Equal(s.shelter.ID, req.ShelterID)

	sent := s.f.notify.byTemplate(TemplateAdoptionCreated)
	s.Require().Len(sent, 2)
	s.ElementsMatch([]string{s.owner.Email, s.director.Email}, []string{sent[0].Email, sent[1].Email})
	s.Equal(applicant.Email, sent[0].Context["applicantEmail"])
}

func (s *AdoptionServiceSuite) TestCreateGuards() {
	applicant := s.f.member()
	s.apply(applicant)

	s.Run("one request per animal and requester", func() {
		_, err := s.f.adoptions.Create(s.f.ctx, CreateAdoptionInput{AnimalID: s.animal.ID}, applicant.ID)
		s.ErrorIs(err, domain.ErrDuplicateAdoptionReq)
		s.ErrorIs(err, domain.ErrConflict)
	})

	s.Run("shelter must match the animal", func() {
		other := s.f.approvedShelter(s.f.member())
		_, err := s.f.adoptions.Create(s.f.ctx, CreateAdoptionInput{AnimalID: s.animal.ID, ShelterID: other.ID}, s.f.member().ID)
		s.ErrorIs(err, domain.ErrShelterMismatch)
	})

	s.Run("unknown animal", func() {
		_, err := s.f.adoptions.Create(s.f.ctx, CreateAdoptionInput{AnimalID: 9999}, applicant.ID)
		s.ErrorIs(err, domain.ErrAnimalNotFound)
	})
}

// =============================================================================
// Approve
// =============================================================================

func (s *AdoptionServiceSuite) TestApproveRejectsSiblings() {
	winner := s.f.member()
	loser := s.f.member()
	quitter := s.f.member()
	won := s.apply(winner)
	lost := s.apply(loser)
	quit := s.apply(quitter)
	_, err := s.f.adoptions.Cancel(s.f.ctx, quit.ID, quitter.ID)
	s.Require().NoError(err)
	s.f.notify.reset()

	approved, err := s.f.adoptions.Approve(s.f.ctx, won.ID, s.director.ID)
	s.Require().NoError(err)
	s.Equal(models.AdoptionStatusApproved, approved.Status)
	s.Require().NotNil(approved.ReviewedByID)
	s.Equal(s.director.ID, *approved.ReviewedByID)

	animal, err := s.f.repos.Animals.GetByID(s.f.ctx, s.animal.ID)
	s.Require().NoError(err)
	s.Equal(models.AnimalStatusAdopted, animal.Status)
	s.Require().NotNil(animal.AdoptedByID)
	s.Equal(winner.ID, *animal.AdoptedByID)
	s.NotNil(animal.AdoptionDate)

	s.Equal(models.AdoptionStatusRejected, s.status(lost.ID))
	s.Equal(models.AdoptionStatusCancelled, s.status(quit.ID), "closed siblings are left alone")

	s.Len(s.f.notify.byTemplate(TemplateAdoptionApproved), 1)
	rejected := s.f.notify.byTemplate(TemplateAdoptionRejected)
	s.Require().Len(rejected, 1)
	s.Equal(loser.Email, rejected[0].Email)

	s.Run("a second approval conflicts", func() {
		_, err := s.f.adoptions.Approve(s.f.ctx, lost.ID, s.director.ID)
		s.ErrorIs(err, domain.ErrConflict)
	})

	s.Run("adopted animals take no new requests", func() {
		_, err := s.f.adoptions.Create(s.f.ctx, CreateAdoptionInput{AnimalID: s.animal.ID}, s.f.member().ID)
		s.ErrorIs(err, domain.ErrAnimalAlreadyAdopted)
	})
}

func (s *AdoptionServiceSuite) TestConcurrentApprovalsAdoptOnce() {
	const applicants = 8
	requests := make([]*models.AdoptionRequest, applicants)
	for i := range requests {
		requests[i] = s.apply(s.f.member())
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []uint
		conflicts int
	)
	for _, req := range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.f.adoptions.Approve(s.f.ctx, req.ID, s.owner.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded = append(succeeded, req.ID)
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Require().Len(succeeded, 1)
	s.Equal(applicants-1, conflicts)

	approved := 0
	for _, req := range requests {
		st := s.status(req.ID)
		s.Contains([]models.AdoptionRequestStatus{models.AdoptionStatusApproved, models.AdoptionStatusRejected}, st)
		if st == models.AdoptionStatusApproved {
			approved++
			s.Equal(succeeded[0], req.ID)
		}
	}
	s.Equal(1, approved)
}

func (s *AdoptionServiceSuite) TestApproveRequiresAdoptionManager() {
	req := s.apply(s.f.member())
	publicator := s.f.member()
	s.f.join(s.shelter, publicator, domain.ShelterRoleMember)

	_, err := s.f.adoptions.Approve(s.f.ctx, req.ID, publicator.ID)
	s.ErrorIs(err, domain.ErrPermissionDenied)
	s.Equal(models.AdoptionStatusPending, s.status(req.ID))

	animal, err := s.f.repos.Animals.GetByID(s.f.ctx, s.animal.ID)
	s.Require().NoError(err)
	s.Equal(models.AnimalStatusAvailable, animal.Status)
}

// =============================================================================
// Reject and cancel
// =============================================================================

func (s *AdoptionServiceSuite) TestRejectAndCancel() {
	applicant := s.f.member()
	req := s.apply(applicant)

	s.Run("only the requester cancels", func() {
		_, err := s.f.adoptions.Cancel(s.f.ctx, req.ID, s.owner.ID)
		s.ErrorIs(err, domain.ErrNotRequester)
	})

	s.Run("reject notifies the requester", func() {
		s.f.notify.reset()
		rejected, err := s.f.adoptions.Reject(s.f.ctx, req.ID, s.owner.ID)
		s.Require().NoError(err)
		s.Equal(models.AdoptionStatusRejected, rejected.Status)
		s.Require().NotNil(rejected.Animal)

		sent := s.f.notify.byTemplate(TemplateAdoptionRejected)
		s.Require().Len(sent, 1)
		s.Equal(applicant.Email, sent[0].Email)
		s.Equal("Luna", sent[0].Context["animalName"])
	})

	s.Run("closed requests stay closed", func() {
		_, err := s.f.adoptions.Reject(s.f.ctx, req.ID, s.owner.ID)
		s.ErrorIs(err, domain.ErrAdoptionRequestClosed)
		_, err = s.f.adoptions.Cancel(s.f.ctx, req.ID, applicant.ID)
		s.ErrorIs(err, domain.ErrAdoptionRequestClosed)
	})
}

// =============================================================================
// Reads
// =============================================================================

func (s *AdoptionServiceSuite) TestReads() {
	applicant := s.f.member()
	req := s.apply(applicant)

	got, err := s.f.adoptions.GetByID(s.f.ctx, req.ID, applicant.ID)
	s.Require().NoError(err)
	s.Equal(req.ID, got.ID)

	_, err = s.f.adoptions.GetByID(s.f.ctx, req.ID, s.director.ID)
	s.NoError(err)

	_, err = s.f.adoptions.GetByID(s.f.ctx, req.ID, s.f.member().ID)
	s.ErrorIs(err, domain.ErrAdoptionRequestNotFound)

	mine, err := s.f.adoptions.ListForRequester(s.f.ctx, applicant.ID)
	s.Require().NoError(err)
	s.Len(mine, 1)

	pending := models.AdoptionStatusPending
	inbox, err := s.f.adoptions.ListForShelter(s.f.ctx, s.shelter.ID, s.director.ID, &pending)
	s.Require().NoError(err)
	s.Len(inbox, 1)

	_, err = s.f.adoptions.ListForShelter(s.f.ctx, s.shelter.ID, applicant.ID, nil)
	s.ErrorIs(err, domain.ErrPermissionDenied)
}

func (s *AdoptionServiceSuite) TestCreateConcurrentSameRequester() {
	applicant := s.f.member()

	const callers = 6
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.f.adoptions.Create(s.f.ctx, CreateAdoptionInput{AnimalID: s.animal.ID}, applicant.ID)
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		s.ErrorIs(err, domain.ErrDuplicateAdoptionReq)
	}
	s.Equal(1, created)

	siblings, err := s.f.repos.Adoptions.ListSiblings(s.f.ctx, s.animal.ID, 0)
	s.Require().NoError(err)
	s.Len(siblings, 1)
}
