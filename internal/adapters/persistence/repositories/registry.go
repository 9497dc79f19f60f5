package repositories

import "gorm.io/gorm"

// Registry bundles every repository the services need
type Registry struct {
	Transactor  Transactor
	Users       UserRepository
	SystemRoles SystemRoleRepository
	OtpCodes    OtpCodeRepository
	Shelters    ShelterRepository
	Memberships MembershipRepository
	Species     SpeciesRepository
	Breeds      BreedRepository
	Animals     AnimalRepository
	Adoptions   AdoptionRequestRepository
	Emails      EmailRepository
}

// NewRegistry builds the gorm-backed repositories over db
func NewRegistry(db *gorm.DB) Registry {
	return Registry{
		Transactor:  NewTransactor(db),
		Users:       NewUserRepository(db),
		SystemRoles: NewSystemRoleRepository(db),
		OtpCodes:    NewOtpCodeRepository(db),
		Shelters:    NewShelterRepository(db),
		Memberships: NewMembershipRepository(db),
		Species:     NewSpeciesRepository(db),
		Breeds:      NewBreedRepository(db),
		Animals:     NewAnimalRepository(db),
		Adoptions:   NewAdoptionRequestRepository(db),
		Emails:      NewEmailRepository(db),
	}
}
