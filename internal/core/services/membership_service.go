package services

import (
	"context"
	"errors"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"

	"go.uber.org/zap"
)

// MembershipService manages shelter memberships
type MembershipService struct {
	membershipRepo repositories.MembershipRepository
	shelterRepo    repositories.ShelterRepository
	userRepo       repositories.UserRepository
	caps           Capabilities
	log            *zap.Logger
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	membershipRepo repositories.MembershipRepository,
	shelterRepo repositories.ShelterRepository,
	userRepo repositories.UserRepository,
	caps Capabilities,
	log *zap.Logger,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		shelterRepo:    shelterRepo,
		userRepo:       userRepo,
		caps:           caps,
		log:            log.Named("memberships"),
	}
}

// Add assigns a user to a shelter with a role
func (s *MembershipService) Add(ctx context.Context, shelterID, userID uint, role domain.ShelterRole, actorID uint) (*models.ShelterUser, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidShelterRole
	}
	if _, err := s.shelterRepo.GetByID(ctx, shelterID); err != nil {
		return nil, err
	}
	if !s.caps.CanManageMembers(ctx, actorID, shelterID) {
		return nil, domain.ErrPermissionDenied
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	_, err := s.membershipRepo.GetByShelterAndUser(ctx, shelterID, userID)
	switch {
	case err == nil:
		return nil, domain.ErrMembershipExists
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	membership := &models.ShelterUser{ShelterID: shelterID, UserID: userID, Role: role}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}
	s.log.Info("member added",
		zap.Uint("shelter_id", shelterID),
		zap.Uint("user_id", userID),
		zap.String("role", string(role)),
	)
	return membership, nil
}

// GrantOwner makes the user an owner of the shelter, upgrading an existing
// membership when there is one
func (s *MembershipService) GrantOwner(ctx context.Context, shelterID, userID uint) error {
	existing, err := s.membershipRepo.GetByShelterAndUser(ctx, shelterID, userID)
	if err == nil {
		if existing.Role == domain.ShelterRoleOwner {
			return nil
		}
		existing.Role = domain.ShelterRoleOwner
		return s.membershipRepo.Update(ctx, existing)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return s.membershipRepo.Create(ctx, &models.ShelterUser{
		ShelterID: shelterID,
		UserID:    userID,
		Role:      domain.ShelterRoleOwner,
	})
}

// UpdateRole changes the role of a membership
func (s *MembershipService) UpdateRole(ctx context.Context, membershipID uint, role domain.ShelterRole, actorID uint) (*models.ShelterUser, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidShelterRole
	}
	membership, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if !s.caps.CanManageMembers(ctx, actorID, membership.ShelterID) {
		return nil, domain.ErrPermissionDenied
	}
	if membership.Role == role {
		return membership, nil
	}
	membership.Role = role
	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// Remove deletes a membership
func (s *MembershipService) Remove(ctx context.Context, membershipID, actorID uint) error {
	membership, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if !s.caps.CanManageMembers(ctx, actorID, membership.ShelterID) {
		return domain.ErrPermissionDenied
	}
	return s.membershipRepo.Delete(ctx, membershipID)
}

// ListForShelter lists the memberships of a shelter with users
func (s *MembershipService) ListForShelter(ctx context.Context, shelterID, actorID uint) ([]*models.ShelterUser, error) {
	if _, err := s.shelterRepo.GetByID(ctx, shelterID); err != nil {
		return nil, err
	}
	if !s.caps.CanManageMembers(ctx, actorID, shelterID) {
		return nil, domain.ErrPermissionDenied
	}
	return s.membershipRepo.ListByShelter(ctx, shelterID)
}
