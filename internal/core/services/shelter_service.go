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

// ShelterService drives shelters from submission to review
type ShelterService struct {
	shelterRepo repositories.ShelterRepository
	userRepo    repositories.UserRepository
	owners      OwnerGranter
	caps        Capabilities
	notify      Dispatcher
	msgs        *Messages
	log         *zap.Logger
	now         func() time.Time
}

// NewShelterService creates a new shelter service
func NewShelterService(
	shelterRepo repositories.ShelterRepository,
	userRepo repositories.UserRepository,
	owners OwnerGranter,
	caps Capabilities,
	notify Dispatcher,
	msgs *Messages,
	log *zap.Logger,
) *ShelterService {
	return &ShelterService{
		shelterRepo: shelterRepo,
		userRepo:    userRepo,
		owners:      owners,
		caps:        caps,
		notify:      notify,
		msgs:        msgs,
		log:         log.Named("shelters"),
		now:         time.Now,
	}
}

// ShelterInput is used for submission
type ShelterInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	City         string `json:"city"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Comments     string `json:"comments"`
}

// UpdateShelterInput for partial updates
type UpdateShelterInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Comments     *string `json:"comments"`
}

// Submit creates a pending shelter and notifies every admin
func (s *ShelterService) Submit(ctx context.Context, input ShelterInput, creatorID uint) (*models.Shelter, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	shelter := &models.Shelter{
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Address:      input.Address,
		City:         input.City,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Comments:     input.Comments,
		Status:       models.ShelterStatusPending,
		CreatedByID:  creatorID,
	}
	if err := s.shelterRepo.Create(ctx, shelter); err != nil {
		return nil, err
	}
	metrics.Transition("shelter", "submit")

	admins, err := s.userRepo.ListByRole(ctx, domain.SystemRoleAdmin)
	if err != nil {
		s.log.Warn("list admins for shelter notification", zap.Uint("shelter_id", shelter.ID), zap.Error(err))
	} else {
		s.notify.Dispatch(ctx, s.msgs.ShelterCreated(admins, shelter, creator)...)
	}

	shelter.CreatedBy = creator
	return shelter, nil
}

// reviewer loads the reviewing user and requires the admin role
func (s *ShelterService) reviewer(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return domain.ErrPermissionDenied
	}
	return nil
}

// Approve approves a pending shelter and makes the approver its owner
func (s *ShelterService) Approve(ctx context.Context, shelterID, approverID uint) (*models.Shelter, error) {
	if err := s.reviewer(ctx, approverID); err != nil {
		return nil, err
	}
	shelter, err := s.shelterRepo.GetByID(ctx, shelterID)
	if err != nil {
		return nil, err
	}
	if err := approveShelter(shelter, approverID, s.now()); err != nil {
		return nil, err
	}
	if err := s.shelterRepo.Update(ctx, shelter); err != nil {
		return nil, err
	}
	metrics.Transition("shelter", "approve")

	if err := s.owners.GrantOwner(ctx, shelterID, approverID); err != nil {
		s.log.Error("grant shelter ownership",
			zap.Uint("shelter_id", shelterID),
			zap.Uint("user_id", approverID),
			zap.Error(err),
		)
	}

	s.notifyCreator(ctx, shelter)
	return shelter, nil
}

// Reject rejects a pending shelter with a reason
func (s *ShelterService) Reject(ctx context.Context, shelterID uint, reason string, rejectorID uint) (*models.Shelter, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrRejectionReasonRequired
	}
	if err := s.reviewer(ctx, rejectorID); err != nil {
		return nil, err
	}
	shelter, err := s.shelterRepo.GetByID(ctx, shelterID)
	if err != nil {
		return nil, err
	}
	if err := rejectShelter(shelter, rejectorID, reason, s.now()); err != nil {
		return nil, err
	}
	if err := s.shelterRepo.Update(ctx, shelter); err != nil {
		return nil, err
	}
	metrics.Transition("shelter", "reject")

	s.notifyCreator(ctx, shelter)
	return shelter, nil
}

func (s *ShelterService) notifyCreator(ctx context.Context, shelter *models.Shelter) {
	creator := shelter.CreatedBy
	if creator == nil {
		var err error
		if creator, err = s.userRepo.GetByID(ctx, shelter.CreatedByID); err != nil {
			s.log.Warn("load shelter creator", zap.Uint("shelter_id", shelter.ID), zap.Error(err))
			return
		}
	}
	s.notify.Dispatch(ctx, s.msgs.ShelterReviewed(shelter, creator))
}

// Update merges the patch; only admins and the creator may update
func (s *ShelterService) Update(ctx context.Context, shelterID uint, input UpdateShelterInput, userID uint) (*models.Shelter, error) {
	shelter, err := s.shelterRepo.GetByID(ctx, shelterID)
	if err != nil {
		return nil, err
	}
	if shelter.CreatedByID != userID && !s.caps.IsAdmin(ctx, userID) {
		return nil, domain.ErrPermissionDenied
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		shelter.Name = name
	}
	if input.Description != nil {
		shelter.Description = *input.Description
	}
	if input.Address != nil {
		shelter.Address = *input.Address
	}
	if input.City != nil {
		shelter.City = *input.City
	}
	if input.ContactEmail != nil {
		shelter.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		shelter.ContactPhone = *input.ContactPhone
	}
	if input.Comments != nil {
		shelter.Comments = *input.Comments
	}

	if err := s.shelterRepo.Update(ctx, shelter); err != nil {
		return nil, err
	}
	return shelter, nil
}

// GetByID gets a shelter by ID
func (s *ShelterService) GetByID(ctx context.Context, shelterID uint) (*models.Shelter, error) {
	return s.shelterRepo.GetByID(ctx, shelterID)
}

// List lists shelters, optionally by status
func (s *ShelterService) List(ctx context.Context, status *models.ShelterStatus) ([]*models.Shelter, error) {
	return s.shelterRepo.List(ctx, status)
}
