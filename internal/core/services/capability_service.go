package services

import (
	"context"
	"errors"

	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"

	"go.uber.org/zap"
)

// CapabilityService resolves system and shelter scoped permissions.
// Every predicate answers false for a zero id and on lookup failure.
type CapabilityService struct {
	userRepo       repositories.UserRepository
	membershipRepo repositories.MembershipRepository
	log            *zap.Logger
}

// NewCapabilityService creates a new capability resolver
func NewCapabilityService(
	userRepo repositories.UserRepository,
	membershipRepo repositories.MembershipRepository,
	log *zap.Logger,
) *CapabilityService {
	return &CapabilityService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		log:            log.Named("capabilities"),
	}
}

// IsAdmin reports whether the user holds the admin system role
func (s *CapabilityService) IsAdmin(ctx context.Context, userID uint) bool {
	if userID == 0 {
		return false
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error("load user", zap.Uint("user_id", userID), zap.Error(err))
		}
		return false
	}
	return user.IsAdmin()
}

// ResolveShelterRole returns the user's role within the shelter, if any
func (s *CapabilityService) ResolveShelterRole(ctx context.Context, userID, shelterID uint) (domain.ShelterRole, bool) {
	if userID == 0 || shelterID == 0 {
		return "", false
	}
	membership, err := s.membershipRepo.GetByShelterAndUser(ctx, shelterID, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error("load membership",
				zap.Uint("user_id", userID),
				zap.Uint("shelter_id", shelterID),
				zap.Error(err),
			)
		}
		return "", false
	}
	return membership.Role, true
}

// CanManageAnimalsInfo: admin, owner, directive or member
func (s *CapabilityService) CanManageAnimalsInfo(ctx context.Context, userID, shelterID uint) bool {
	return s.allowed(ctx, userID, shelterID,
		domain.ShelterRoleOwner, domain.ShelterRoleDirective, domain.ShelterRoleMember)
}

// CanManageAdoptions: admin, owner or directive
func (s *CapabilityService) CanManageAdoptions(ctx context.Context, userID, shelterID uint) bool {
	return s.allowed(ctx, userID, shelterID, domain.ShelterRoleOwner, domain.ShelterRoleDirective)
}

// CanManageMembers: admin or owner
func (s *CapabilityService) CanManageMembers(ctx context.Context, userID, shelterID uint) bool {
	return s.allowed(ctx, userID, shelterID, domain.ShelterRoleOwner)
}

// allowed is the single place where the admin override is applied
func (s *CapabilityService) allowed(ctx context.Context, userID, shelterID uint, roles ...domain.ShelterRole) bool {
	if userID == 0 || shelterID == 0 {
		return false
	}
	if s.IsAdmin(ctx, userID) {
		return true
	}
	role, ok := s.ResolveShelterRole(ctx, userID, shelterID)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
