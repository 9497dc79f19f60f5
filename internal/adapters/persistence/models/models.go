package models

import (
	"time"

	"petfind/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity
// ============================================================

// SystemRole represents system_roles table
type SystemRole struct {
	ID   uint              `gorm:"primaryKey" json:"id"`
	Name domain.SystemRole `gorm:"size:30;uniqueIndex;not null" json:"name"`
}

func (SystemRole) TableName() string {
	return "system_roles"
}

// User represents users table
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	FirstName    string      `gorm:"size:100;not null" json:"first_name"`
	LastName     string      `gorm:"size:100;not null" json:"last_name"`
	DocumentID   string      `gorm:"size:30;uniqueIndex;not null" json:"document_id"`
	Email        string      `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password     string      `gorm:"size:255;not null" json:"-"`
	Phone        string      `gorm:"size:30" json:"phone,omitempty"`
	IsVerified   bool        `gorm:"default:false" json:"is_verified"`
	SystemRoleID uint        `gorm:"not null" json:"system_role_id"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	SystemRole   *SystemRole `gorm:"foreignKey:SystemRoleID" json:"system_role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns "first last"
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the admin system role.
// SystemRole must be preloaded.
func (u *User) IsAdmin() bool {
	return u.SystemRole != nil && u.SystemRole.Name == domain.SystemRoleAdmin
}

// RoleName returns the system role name or "" when not loaded
func (u *User) RoleName() string {
	if u.SystemRole == nil {
		return ""
	}
	return string(u.SystemRole.Name)
}

// OtpCode represents otp_codes table
type OtpCode struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	OtpCode    string     `gorm:"size:255;not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at"`
	Attempts   int        `gorm:"default:0" json:"attempts"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (OtpCode) TableName() string {
	return "otp_codes"
}

func (c *OtpCode) IsConsumed() bool {
	return c.ConsumedAt != nil
}

func (c *OtpCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// ============================================================
// Shelters
// ============================================================

// ShelterStatus is the approval state of a shelter
type ShelterStatus string

const (
	ShelterStatusPending  ShelterStatus = "pending"
	ShelterStatusApproved ShelterStatus = "approved"
	ShelterStatusRejected ShelterStatus = "rejected"
)

// Shelter represents shelters table
type Shelter struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"size:150;not null" json:"name"`
	Description     string        `gorm:"type:text" json:"description"`
	Address         string        `gorm:"size:255" json:"address"`
	City            string        `gorm:"size:100;index" json:"city"`
	ContactEmail    string        `gorm:"size:150" json:"contact_email"`
	ContactPhone    string        `gorm:"size:30" json:"contact_phone"`
	Status          ShelterStatus `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedByID     uint          `gorm:"not null;index" json:"created_by_id"`
	ReviewedByID    *uint         `json:"reviewed_by_id"`
	ReviewedAt      *time.Time    `json:"reviewed_at"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason,omitempty"`
	Comments        string        `gorm:"type:text" json:"comments,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	CreatedBy *User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Members   []ShelterUser `gorm:"foreignKey:ShelterID" json:"members,omitempty"`
}

func (Shelter) TableName() string {
	return "shelters"
}

// ShelterUser represents shelter_users table (membership)
type ShelterUser struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	ShelterID uint               `gorm:"not null;uniqueIndex:idx_shelter_user" json:"shelter_id"`
	UserID    uint               `gorm:"not null;uniqueIndex:idx_shelter_user" json:"user_id"`
	Role      domain.ShelterRole `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Shelter *Shelter `gorm:"foreignKey:ShelterID" json:"shelter,omitempty"`
}

func (ShelterUser) TableName() string {
	return "shelter_users"
}

// ============================================================
// Catalog
// ============================================================

// Species represents species table
type Species struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Species) TableName() string {
	return "species"
}

// Breed represents breeds table
type Breed struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SpeciesID uint      `gorm:"not null;uniqueIndex:idx_breed_species_name" json:"species_id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_breed_species_name" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Species *Species `gorm:"foreignKey:SpeciesID" json:"species,omitempty"`
}

func (Breed) TableName() string {
	return "breeds"
}

// ============================================================
// Animals
// ============================================================

// AnimalStatus is the publication state of an animal
type AnimalStatus string

const (
	AnimalStatusNotAvailable AnimalStatus = "not_available"
	AnimalStatusPending      AnimalStatus = "pending"
	AnimalStatusAvailable    AnimalStatus = "available"
	AnimalStatusAdopted      AnimalStatus = "adopted"
)

// IsPublic reports whether animals in this status are listed to everyone
func (s AnimalStatus) IsPublic() bool {
	return s == AnimalStatusAvailable || s == AnimalStatusAdopted
}

func (s AnimalStatus) Valid() bool {
	switch s {
	case AnimalStatusNotAvailable, AnimalStatusPending, AnimalStatusAvailable, AnimalStatusAdopted:
		return true
	}
	return false
}

// AnimalGender
type AnimalGender string

const (
	AnimalGenderMale    AnimalGender = "male"
	AnimalGenderFemale  AnimalGender = "female"
	AnimalGenderUnknown AnimalGender = "unknown"
)

func (g AnimalGender) Valid() bool {
	return g == AnimalGenderMale || g == AnimalGenderFemale || g == AnimalGenderUnknown
}

// AnimalSize
type AnimalSize string

const (
	AnimalSizeSmall      AnimalSize = "small"
	AnimalSizeMedium     AnimalSize = "medium"
	AnimalSizeLarge      AnimalSize = "large"
	AnimalSizeExtraLarge AnimalSize = "extra_large"
)

func (s AnimalSize) Valid() bool {
	switch s {
	case AnimalSizeSmall, AnimalSizeMedium, AnimalSizeLarge, AnimalSizeExtraLarge:
		return true
	}
	return false
}

// Animal represents animals table.
// AdoptedByID is non-nil iff Status is adopted.
type Animal struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ShelterID    uint         `gorm:"not null;index" json:"shelter_id"`
	Status       AnimalStatus `gorm:"size:20;default:'not_available';index" json:"status"`
	Name         string       `gorm:"size:100;not null" json:"name"`
	SpeciesID    uint         `gorm:"not null;index" json:"species_id"`
	BreedID      uint         `gorm:"not null;index" json:"breed_id"`
	Gender       AnimalGender `gorm:"size:15;default:'unknown'" json:"gender"`
	BirthDate    *time.Time   `gorm:"type:date" json:"birth_date"`
	Size         AnimalSize   `gorm:"size:15;default:'medium'" json:"size"`
	Color        string       `gorm:"size:50" json:"color"`
	IsSterilized bool         `gorm:"default:false" json:"is_sterilized"`
	IsVaccinated bool         `gorm:"default:false" json:"is_vaccinated"`
	HasMicrochip bool         `gorm:"default:false" json:"has_microchip"`
	Description  string       `gorm:"type:text" json:"description"`
	HealthNotes  string       `gorm:"type:text" json:"health_notes"`
	AdoptedByID  *uint        `json:"adopted_by_id"`
	AdoptionDate *time.Time   `json:"adoption_date"`
	CreatedAt    time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Shelter *Shelter `gorm:"foreignKey:ShelterID" json:"shelter,omitempty"`
	Species *Species `gorm:"foreignKey:SpeciesID" json:"species,omitempty"`
	Breed   *Breed   `gorm:"foreignKey:BreedID" json:"breed,omitempty"`
}

func (Animal) TableName() string {
	return "animals"
}

// ============================================================
// Adoption requests
// ============================================================

// AdoptionRequestStatus is the resolution state of an adoption request
type AdoptionRequestStatus string

const (
	AdoptionStatusPending     AdoptionRequestStatus = "pending"
	AdoptionStatusUnderReview AdoptionRequestStatus = "under_review"
	AdoptionStatusApproved    AdoptionRequestStatus = "approved"
	AdoptionStatusRejected    AdoptionRequestStatus = "rejected"
	AdoptionStatusCancelled   AdoptionRequestStatus = "cancelled"
)

// IsOpen reports whether a request can still be resolved
func (s AdoptionRequestStatus) IsOpen() bool {
	return s == AdoptionStatusPending || s == AdoptionStatusUnderReview
}

// AdoptionRequest represents adoption_requests table.
// ShelterID duplicates Animal.ShelterID for authorization lookups.
// A requester holds at most one request per animal.
type AdoptionRequest struct {
	ID           uint                  `gorm:"primaryKey" json:"id"`
	AnimalID     uint                  `gorm:"not null;uniqueIndex:idx_animal_requester" json:"animal_id"`
	ShelterID    uint                  `gorm:"not null;index" json:"shelter_id"`
	RequesterID  uint                  `gorm:"not null;index;uniqueIndex:idx_animal_requester" json:"requester_id"`
	Message      string                `gorm:"type:text" json:"message"`
	Status       AdoptionRequestStatus `gorm:"size:20;default:'pending';index" json:"status"`
	ReviewedByID *uint                 `json:"reviewed_by_id"`
	ReviewedAt   *time.Time            `json:"reviewed_at"`
	SentAt       time.Time             `gorm:"autoCreateTime" json:"sent_at"`
	UpdatedAt    time.Time             `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Animal    *Animal  `gorm:"foreignKey:AnimalID" json:"animal,omitempty"`
	Shelter   *Shelter `gorm:"foreignKey:ShelterID" json:"shelter,omitempty"`
	Requester *User    `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
}

func (AdoptionRequest) TableName() string {
	return "adoption_requests"
}

// ============================================================
// Notifications
// ============================================================

// Email represents emails table (notification outbox)
type Email struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	Email     string         `gorm:"size:150;not null" json:"email"`
	Subject   string         `gorm:"size:255;not null" json:"subject"`
	Template  string         `gorm:"size:100" json:"template"`
	Context   map[string]any `gorm:"serializer:json;type:json" json:"context"`
	Sent      bool           `gorm:"default:false;index" json:"sent"`
	Attempts  int            `gorm:"default:0" json:"attempts"`
	LastError string         `gorm:"type:text" json:"last_error,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Email) TableName() string {
	return "emails"
}

// ToMessage converts an outbox row back into a dispatchable message
func (e *Email) ToMessage() domain.Message {
	return domain.Message{
		UserID:   e.UserID,
		Email:    e.Email,
		Subject:  e.Subject,
		Template: e.Template,
		Context:  e.Context,
	}
}

// AutoMigrate creates or updates every table used by the service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SystemRole{},
		&User{},
		&OtpCode{},
		&Shelter{},
		&ShelterUser{},
		&Species{},
		&Breed{},
		&Animal{},
		&AdoptionRequest{},
		&Email{},
	)
}
