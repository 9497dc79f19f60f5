package services

import (
	"context"

	"petfind/internal/core/domain"
)

// Cipher encrypts one-time codes at rest
type Cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(userID uint, email, role string) (string, error)
}

// Sender delivers a single message (mail transport)
type Sender interface {
	Send(ctx context.Context, msg domain.Message) error
}

// Dispatcher delivers messages best-effort. It never reports failures to
// the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, msgs ...domain.Message)
}

// Capabilities decides what a user may do within a shelter
type Capabilities interface {
	IsAdmin(ctx context.Context, userID uint) bool
	ResolveShelterRole(ctx context.Context, userID, shelterID uint) (domain.ShelterRole, bool)
	CanManageAnimalsInfo(ctx context.Context, userID, shelterID uint) bool
	CanManageAdoptions(ctx context.Context, userID, shelterID uint) bool
	CanManageMembers(ctx context.Context, userID, shelterID uint) bool
}

// AdoptionCommitter marks an animal adopted. Callers authorize beforehand.
type AdoptionCommitter interface {
	CommitAdoption(ctx context.Context, animalID, adopterID uint) error
}

// OwnerGranter gives a user the owner role within a shelter
type OwnerGranter interface {
	GrantOwner(ctx context.Context, shelterID, userID uint) error
}
