package domain

// SystemRole is a global role independent of any shelter
type SystemRole string

const (
	SystemRoleUser      SystemRole = "user"
	SystemRoleVolunteer SystemRole = "volunteer"
	SystemRoleAdmin     SystemRole = "admin"
)

// DefaultSystemRole is assigned at signup
const DefaultSystemRole = SystemRoleUser

// ShelterRole scopes a user's authority within one shelter
type ShelterRole string

const (
	ShelterRoleOwner     ShelterRole = "owner"
	ShelterRoleDirective ShelterRole = "director"
	ShelterRoleMember    ShelterRole = "publicator"
)

// Valid reports whether r is one of the known shelter roles
func (r ShelterRole) Valid() bool {
	switch r {
	case ShelterRoleOwner, ShelterRoleDirective, ShelterRoleMember:
		return true
	}
	return false
}

// Message is a templated notification addressed to one recipient.
// Rendering the template belongs to the mail transport.
type Message struct {
	UserID   *uint
	Email    string
	Subject  string
	Template string
	Context  map[string]any
}

// Session is returned after a successful login or code validation
type Session struct {
	AccessToken string `json:"access_token"`
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}
