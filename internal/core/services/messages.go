package services

import (
	"time"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

// Notification templates
const (
	TemplateOtpCode          = "otp-code"
	TemplateShelterCreated   = "shelter-created"
	TemplateShelterApproved  = "shelter-approved"
	TemplateShelterRejected  = "shelter-rejected"
	TemplateAnimalCreated    = "animal-created"
	TemplateAnimalUpdated    = "animal-updated"
	TemplateAnimalPublished  = "animal-published"
	TemplateAdoptionCreated  = "adoption-request-created"
	TemplateAdoptionApproved = "adoption-request-approved"
	TemplateAdoptionRejected = "adoption-request-rejected"
	TemplateSpeciesCreated   = "species-created"
	TemplateBreedCreated     = "breed-created"
)

// Messages builds notification payloads. Building never performs I/O.
type Messages struct {
	SupportEmail string
	FrontendURL  string
	Now          func() time.Time
}

// NewMessages creates a message builder
func NewMessages(supportEmail, frontendURL string) *Messages {
	return &Messages{SupportEmail: supportEmail, FrontendURL: frontendURL, Now: time.Now}
}

func (m *Messages) context(fields map[string]any) map[string]any {
	fields["supportEmail"] = m.SupportEmail
	fields["frontendUrl"] = m.FrontendURL
	fields["year"] = m.Now().Year()
	return fields
}

func (m *Messages) to(user *models.User, subject, template string, fields map[string]any) domain.Message {
	id := user.ID
	return domain.Message{
		UserID:   &id,
		Email:    user.Email,
		Subject:  subject,
		Template: template,
		Context:  m.context(fields),
	}
}

// OtpCode carries a freshly issued verification code
func (m *Messages) OtpCode(user *models.User, code string, ttl time.Duration) domain.Message {
	return m.to(user, "Your PetFind verification code", TemplateOtpCode, map[string]any{
		"userName":   user.FullName(),
		"code":       code,
		"ttlMinutes": int(ttl.Minutes()),
	})
}

// ShelterCreated tells every admin that a shelter awaits review
func (m *Messages) ShelterCreated(admins []*models.User, sh *models.Shelter, creator *models.User) []domain.Message {
	msgs := make([]domain.Message, 0, len(admins))
	for _, admin := range admins {
		msgs = append(msgs, m.to(admin, "New shelter awaiting approval", TemplateShelterCreated, map[string]any{
			"adminName":    admin.FullName(),
			"shelterName":  sh.Name,
			"shelterCity":  sh.City,
			"creatorName":  creator.FullName(),
			"creatorEmail": creator.Email,
			"createdAt":    sh.CreatedAt,
		}))
	}
	return msgs
}

// ShelterReviewed tells the creator about the approval decision
func (m *Messages) ShelterReviewed(sh *models.Shelter, creator *models.User) domain.Message {
	fields := map[string]any{
		"userName":    creator.FullName(),
		"shelterName": sh.Name,
		"reviewedAt":  sh.ReviewedAt,
	}
	if sh.Status == models.ShelterStatusRejected {
		fields["reason"] = sh.RejectionReason
		return m.to(creator, "Your shelter has been rejected", TemplateShelterRejected, fields)
	}
	return m.to(creator, "Your shelter has been approved", TemplateShelterApproved, fields)
}

// AnimalEvent notifies shelter directives about an animal change
func (m *Messages) AnimalEvent(template, subject string, directives []*models.ShelterUser, sh *models.Shelter, a *models.Animal, actor *models.User) []domain.Message {
	msgs := make([]domain.Message, 0, len(directives))
	for _, d := range directives {
		if d.User == nil {
			continue
		}
		fields := map[string]any{
			"directorName": d.User.FullName(),
			"shelterName":  sh.Name,
			"animalName":   a.Name,
			"animalStatus": string(a.Status),
		}
		if a.Species != nil {
			fields["speciesName"] = a.Species.Name
		}
		if a.Breed != nil {
			fields["breedName"] = a.Breed.Name
		}
		if actor != nil {
			fields["actorName"] = actor.FullName()
			fields["actorEmail"] = actor.Email
		}
		msgs = append(msgs, m.to(d.User, subject, template, fields))
	}
	return msgs
}

// AdoptionCreated notifies shelter owners and directives about a new application
func (m *Messages) AdoptionCreated(managers []*models.ShelterUser, req *models.AdoptionRequest, a *models.Animal, applicant *models.User) []domain.Message {
	msgs := make([]domain.Message, 0, len(managers))
	for _, mgr := range managers {
		if mgr.User == nil {
			continue
		}
		fields := map[string]any{
			"directorName":   mgr.User.FullName(),
			"animalName":     a.Name,
			"applicantName":  applicant.FullName(),
			"applicantEmail": applicant.Email,
			"requestDate":    req.SentAt,
			"requestStatus":  string(req.Status),
			"message":        req.Message,
		}
		if a.Shelter != nil {
			fields["shelterName"] = a.Shelter.Name
		}
		if a.Species != nil {
			fields["speciesName"] = a.Species.Name
		}
		if a.Breed != nil {
			fields["breedName"] = a.Breed.Name
		}
		msgs = append(msgs, m.to(mgr.User, "New adoption request", TemplateAdoptionCreated, fields))
	}
	return msgs
}

// AdoptionResolved tells the requester about the decision. Requester must
// be loaded.
func (m *Messages) AdoptionResolved(req *models.AdoptionRequest) domain.Message {
	fields := map[string]any{
		"userName":   req.Requester.FullName(),
		"resolvedAt": req.ReviewedAt,
	}
	if req.Animal != nil {
		fields["animalName"] = req.Animal.Name
		if req.Animal.Species != nil {
			fields["speciesName"] = req.Animal.Species.Name
		}
		if req.Animal.Breed != nil {
			fields["breedName"] = req.Animal.Breed.Name
		}
	}
	if req.Shelter != nil {
		fields["shelterName"] = req.Shelter.Name
	}
	if req.Status == models.AdoptionStatusApproved {
		return m.to(req.Requester, "Your adoption request has been approved!", TemplateAdoptionApproved, fields)
	}
	return m.to(req.Requester, "Your adoption request has been rejected", TemplateAdoptionRejected, fields)
}

// CatalogEntryCreated tells admins about a new species or breed
func (m *Messages) CatalogEntryCreated(admins []*models.User, template, subject string, fields map[string]any) []domain.Message {
	msgs := make([]domain.Message, 0, len(admins))
	for _, admin := range admins {
		copied := make(map[string]any, len(fields)+1)
		for k, v := range fields {
			copied[k] = v
		}
		copied["adminName"] = admin.FullName()
		msgs = append(msgs, m.to(admin, subject, template, copied))
	}
	return msgs
}
