package services

import (
	"context"
	"strings"
	"time"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"
	"petfind/internal/pkg/metrics"

	"go.uber.org/zap"
)

// AdoptionService accepts and resolves adoption requests
type AdoptionService struct {
	tx             repositories.Transactor
	requestRepo    repositories.AdoptionRequestRepository
	animalRepo     repositories.AnimalRepository
	userRepo       repositories.UserRepository
	membershipRepo repositories.MembershipRepository
	animals        AdoptionCommitter
	caps           Capabilities
	notify         Dispatcher
	msgs           *Messages
	log            *zap.Logger
	now            func() time.Time
}

// NewAdoptionService creates a new adoption service
func NewAdoptionService(
	tx repositories.Transactor,
	requestRepo repositories.AdoptionRequestRepository,
	animalRepo repositories.AnimalRepository,
	userRepo repositories.UserRepository,
	membershipRepo repositories.MembershipRepository,
	animals AdoptionCommitter,
	caps Capabilities,
	notify Dispatcher,
	msgs *Messages,
	log *zap.Logger,
) *AdoptionService {
	return &AdoptionService{
		tx:             tx,
		requestRepo:    requestRepo,
		animalRepo:     animalRepo,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		animals:        animals,
		caps:           caps,
		notify:         notify,
		msgs:           msgs,
		log:            log.Named("adoptions"),
		now:            time.Now,
	}
}

// CreateAdoptionInput for applying to adopt an animal.
// ShelterID is optional; when set it must match the animal's shelter.
type CreateAdoptionInput struct {
	AnimalID  uint   `json:"animal_id"`
	ShelterID uint   `json:"shelter_id"`
	Message   string `json:"message"`
}

// Create files a pending request and notifies shelter owners and directives
func (s *AdoptionService) Create(ctx context.Context, input CreateAdoptionInput, requesterID uint) (*models.AdoptionRequest, error) {
	// 1. Requester and animal must exist
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	animal, err := s.animalRepo.GetByID(ctx, input.AnimalID)
	if err != nil {
		return nil, err
	}
	if input.ShelterID != 0 && input.ShelterID != animal.ShelterID {
		return nil, domain.ErrShelterMismatch
	}
	if animal.Status == models.AnimalStatusAdopted {
		return nil, domain.ErrAnimalAlreadyAdopted
	}

	// 2. One request per (animal, requester)
	exists, err := s.requestRepo.ExistsForAnimalAndRequester(ctx, animal.ID, requesterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAdoptionReq
	}

	// 3. Persist
	request := &models.AdoptionRequest{
		AnimalID:    animal.ID,
		ShelterID:   animal.ShelterID,
		RequesterID: requesterID,
		Message:     strings.TrimSpace(input.Message),
		Status:      models.AdoptionStatusPending,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	metrics.Transition("adoption_request", "create")

	// 4. Notify managers
	managers, err := s.membershipRepo.ListByShelter(ctx, animal.ShelterID, domain.ShelterRoleOwner, domain.ShelterRoleDirective)
	if err != nil {
		s.log.Warn("list shelter managers",
			zap.Uint("request_id", request.ID),
			zap.Uint("shelter_id", animal.ShelterID),
			zap.Error(err),
		)
	} else {
		s.notify.Dispatch(ctx, s.msgs.AdoptionCreated(managers, request, animal, requester)...)
	}

	request.Animal = animal
	request.Requester = requester
	return request, nil
}

// Approve approves a request, marks the animal adopted and rejects every
// other open request for the same animal.
//
// The approval and the adoption commit happen in one transaction holding
// the animal row lock, so concurrent approvals for one animal cannot both
// succeed. The rejection cascade runs afterwards and tolerates failures.
func (s *AdoptionService) Approve(ctx context.Context, requestID, approverID uint) (*models.AdoptionRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !s.caps.CanManageAdoptions(ctx, approverID, request.ShelterID) {
		return nil, domain.ErrPermissionDenied
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		animal, err := s.animalRepo.GetByIDForUpdate(ctx, request.AnimalID)
		if err != nil {
			return err
		}
		if animal.Status == models.AnimalStatusAdopted {
			return domain.ErrAnimalAlreadyAdopted
		}

		current, err := s.requestRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := resolveAdoption(current, models.AdoptionStatusApproved, approverID, s.now()); err != nil {
			return err
		}
		if err := s.requestRepo.Update(ctx, current); err != nil {
			return err
		}
		return s.animals.CommitAdoption(ctx, current.AnimalID, current.RequesterID)
	})
	if err != nil {
		return nil, err
	}
	metrics.Transition("adoption_request", "approve")

	approved, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	s.notifyRequester(ctx, approved)
	s.rejectSiblings(ctx, approved, approverID)
	return approved, nil
}

// rejectSiblings closes every other open request for the animal
func (s *AdoptionService) rejectSiblings(ctx context.Context, approved *models.AdoptionRequest, approverID uint) {
	siblings, err := s.requestRepo.ListSiblings(ctx, approved.AnimalID, approved.ID)
	if err != nil {
		s.log.Error("list sibling requests",
			zap.Uint("request_id", approved.ID),
			zap.Uint("animal_id", approved.AnimalID),
			zap.Error(err),
		)
		return
	}
	for _, sibling := range siblings {
		if !sibling.Status.IsOpen() {
			continue
		}
		if _, err := s.Reject(ctx, sibling.ID, approverID); err != nil {
			s.log.Warn("cascade rejection failed",
				zap.Uint("request_id", sibling.ID),
				zap.Uint("approved_request_id", approved.ID),
				zap.Uint("animal_id", approved.AnimalID),
				zap.Error(err),
			)
		}
	}
}

// Reject rejects an open request and notifies the requester
func (s *AdoptionService) Reject(ctx context.Context, requestID, rejectorID uint) (*models.AdoptionRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !s.caps.CanManageAdoptions(ctx, rejectorID, request.ShelterID) {
		return nil, domain.ErrPermissionDenied
	}

	err = s.locked(ctx, request, func(current *models.AdoptionRequest) error {
		return resolveAdoption(current, models.AdoptionStatusRejected, rejectorID, s.now())
	})
	if err != nil {
		return nil, err
	}
	metrics.Transition("adoption_request", "reject")

	s.notifyRequester(ctx, request)
	return request, nil
}

// Cancel lets the requester withdraw an open request
func (s *AdoptionService) Cancel(ctx context.Context, requestID, requesterID uint) (*models.AdoptionRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RequesterID != requesterID {
		return nil, domain.ErrNotRequester
	}

	err = s.locked(ctx, request, func(current *models.AdoptionRequest) error {
		return cancelAdoption(current, requesterID)
	})
	if err != nil {
		return nil, err
	}
	metrics.Transition("adoption_request", "cancel")
	return request, nil
}

// locked re-reads the request under the animal row lock, applies the
// transition and saves it. The loaded relations of request are kept.
func (s *AdoptionService) locked(ctx context.Context, request *models.AdoptionRequest, transition func(*models.AdoptionRequest) error) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.animalRepo.GetByIDForUpdate(ctx, request.AnimalID); err != nil {
			return err
		}
		current, err := s.requestRepo.GetByID(ctx, request.ID)
		if err != nil {
			return err
		}
		if err := transition(current); err != nil {
			return err
		}
		if err := s.requestRepo.Update(ctx, current); err != nil {
			return err
		}
		request.Status = current.Status
		request.ReviewedByID = current.ReviewedByID
		request.ReviewedAt = current.ReviewedAt
		request.UpdatedAt = current.UpdatedAt
		return nil
	})
}

func (s *AdoptionService) notifyRequester(ctx context.Context, request *models.AdoptionRequest) {
	if request.Requester == nil {
		s.log.Warn("requester not loaded, skipping notification", zap.Uint("request_id", request.ID))
		return
	}
	s.notify.Dispatch(ctx, s.msgs.AdoptionResolved(request))
}

// GetByID returns a request to its requester or to a shelter adoption manager
func (s *AdoptionService) GetByID(ctx context.Context, requestID, userID uint) (*models.AdoptionRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RequesterID == userID || s.caps.CanManageAdoptions(ctx, userID, request.ShelterID) {
		return request, nil
	}
	return nil, domain.ErrAdoptionRequestNotFound
}

// ListForShelter lists a shelter's requests for its adoption managers
func (s *AdoptionService) ListForShelter(ctx context.Context, shelterID, userID uint, status *models.AdoptionRequestStatus) ([]*models.AdoptionRequest, error) {
	if !s.caps.CanManageAdoptions(ctx, userID, shelterID) {
		return nil, domain.ErrPermissionDenied
	}
	return s.requestRepo.ListByShelter(ctx, shelterID, status)
}

// ListForRequester lists the requests a user has sent
func (s *AdoptionService) ListForRequester(ctx context.Context, requesterID uint) ([]*models.AdoptionRequest, error) {
	return s.requestRepo.ListByRequester(ctx, requesterID)
}
