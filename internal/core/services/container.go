package services

import (
	"time"

	"petfind/internal/adapters/persistence/repositories"

	"go.uber.org/zap"
)

// Deps are the collaborators shared by every service
type Deps struct {
	Repos    repositories.Registry
	Cipher   Cipher
	Tokens   TokenIssuer
	Notify   Dispatcher
	Messages *Messages
	OTPTTL   time.Duration
	Log      *zap.Logger
}

// Container holds the wired workflow services
type Container struct {
	Capabilities *CapabilityService
	OTP          *OTPService
	Auth         *AuthService
	Memberships  *MembershipService
	Shelters     *ShelterService
	Catalog      *CatalogService
	Animals      *AnimalService
	Adoptions    *AdoptionService
}

// NewContainer wires the services in dependency order
func NewContainer(d Deps) *Container {
	r := d.Repos
	c := &Container{}
	c.Capabilities = NewCapabilityService(r.Users, r.Memberships, d.Log)
	c.OTP = NewOTPService(r.Transactor, r.OtpCodes, r.Users, d.Cipher, d.Tokens, d.OTPTTL, d.Log)
	c.Auth = NewAuthService(r.Transactor, r.Users, r.SystemRoles, c.OTP, d.Tokens, d.Notify, d.Messages, d.Log)
	c.Memberships = NewMembershipService(r.Memberships, r.Shelters, r.Users, c.Capabilities, d.Log)
	c.Shelters = NewShelterService(r.Shelters, r.Users, c.Memberships, c.Capabilities, d.Notify, d.Messages, d.Log)
	c.Catalog = NewCatalogService(r.Species, r.Breeds, r.Users, c.Capabilities, d.Notify, d.Messages, d.Log)
	c.Animals = NewAnimalService(r.Animals, r.Shelters, r.Species, r.Breeds,
		r.Memberships, r.Users, c.Capabilities, d.Notify, d.Messages, d.Log)
	c.Adoptions = NewAdoptionService(r.Transactor, r.Adoptions, r.Animals, r.Users,
		r.Memberships, c.Animals, c.Capabilities, d.Notify, d.Messages, d.Log)
	return c
}
