package domain

import "errors"

// Error kinds. Every domain error wraps exactly one of these so callers can
// branch on the kind with errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
)

// Error is a domain error with a human readable message and a kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// User errors
var (
	ErrInvalidSignup       = newError(ErrInvalidInput, "email, document id, names and an 8+ character password are required")
	ErrUserNotFound        = newError(ErrNotFound, "user not found")
	ErrUserAlreadyExists   = newError(ErrConflict, "user already exists")
	ErrInvalidCredentials  = newError(ErrUnauthorized, "invalid credentials")
	ErrUserNotVerified     = newError(ErrForbidden, "user email is not verified")
	ErrUserAlreadyVerified = newError(ErrConflict, "user is already verified")
	ErrDefaultRoleMissing  = newError(ErrNotFound, "default system role not found")
)

// One-time code errors
var (
	ErrCodeNotFound        = newError(ErrNotFound, "verification code not found")
	ErrCodeAlreadyConsumed = newError(ErrConflict, "verification code already used")
	ErrCodeExpired         = newError(ErrExpired, "verification code expired")
	ErrInvalidCode         = newError(ErrInvalidInput, "verification code is invalid")
)

// Shelter errors
var (
	ErrShelterNotFound         = newError(ErrNotFound, "shelter not found")
	ErrRejectionReasonRequired = newError(ErrInvalidInput, "rejection reason is required")
	ErrShelterNotPending       = newError(ErrConflict, "shelter has already been reviewed")
	ErrMembershipNotFound      = newError(ErrNotFound, "shelter membership not found")
	ErrMembershipExists        = newError(ErrConflict, "user is already a member of this shelter")
	ErrInvalidShelterRole      = newError(ErrInvalidInput, "invalid shelter role")
	ErrNotShelterMember        = newError(ErrForbidden, "user is not associated with the shelter")
)

// Catalog errors
var (
	ErrNameRequired         = newError(ErrInvalidInput, "name is required")
	ErrSpeciesNotFound      = newError(ErrNotFound, "species not found")
	ErrSpeciesAlreadyExists = newError(ErrConflict, "species with this name already exists")
	ErrBreedNotFound        = newError(ErrNotFound, "breed not found for the given species")
	ErrBreedAlreadyExists   = newError(ErrConflict, "breed with this name already exists for the given species")
	ErrSpeciesInUse         = newError(ErrConflict, "species still has breeds or animals")
	ErrBreedInUse           = newError(ErrConflict, "breed is still assigned to animals")
)

// Animal errors
var (
	ErrAnimalNotFound       = newError(ErrNotFound, "animal not found")
	ErrAnimalAlreadyAdopted = newError(ErrConflict, "animal has already been adopted")
	ErrInvalidAnimalGender  = newError(ErrInvalidInput, "invalid animal gender")
	ErrInvalidAnimalSize    = newError(ErrInvalidInput, "invalid animal size")
)

// Adoption request errors
var (
	ErrAdoptionRequestNotFound = newError(ErrNotFound, "adoption request not found")
	ErrDuplicateAdoptionReq    = newError(ErrConflict, "an adoption request for this animal already exists")
	ErrAdoptionRequestClosed   = newError(ErrConflict, "adoption request is no longer open")
	ErrShelterMismatch         = newError(ErrInvalidInput, "shelter does not match the animal's shelter")
	ErrNotRequester            = newError(ErrForbidden, "only the requester can cancel an adoption request")
)

// Permission errors
var (
	ErrPermissionDenied = newError(ErrForbidden, "you do not have permission to perform this action")
)
