package services

import (
	"time"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

// State transition guards. They mutate the entity in memory only and leave
// persistence and notification to the calling service.

// approveShelter moves a pending shelter to approved
func approveShelter(sh *models.Shelter, approverID uint, at time.Time) error {
	if sh.Status != models.ShelterStatusPending {
		return domain.ErrShelterNotPending
	}
	sh.Status = models.ShelterStatusApproved
	sh.ReviewedByID = &approverID
	sh.ReviewedAt = &at
	return nil
}

// rejectShelter moves a pending shelter to rejected with a reason
func rejectShelter(sh *models.Shelter, rejectorID uint, reason string, at time.Time) error {
	if reason == "" {
		return domain.ErrRejectionReasonRequired
	}
	if sh.Status != models.ShelterStatusPending {
		return domain.ErrShelterNotPending
	}
	sh.Status = models.ShelterStatusRejected
	sh.ReviewedByID = &rejectorID
	sh.ReviewedAt = &at
	sh.RejectionReason = reason
	return nil
}

// publishAnimal makes an animal available. It reports false when the
// animal already was.
func publishAnimal(a *models.Animal) (bool, error) {
	switch a.Status {
	case models.AnimalStatusAdopted:
		return false, domain.ErrAnimalAlreadyAdopted
	case models.AnimalStatusAvailable:
		return false, nil
	}
	a.Status = models.AnimalStatusAvailable
	return true, nil
}

// adoptAnimal marks an animal adopted by adopterID
func adoptAnimal(a *models.Animal, adopterID uint, at time.Time) error {
	if a.Status == models.AnimalStatusAdopted {
		return domain.ErrAnimalAlreadyAdopted
	}
	a.Status = models.AnimalStatusAdopted
	a.AdoptedByID = &adopterID
	a.AdoptionDate = &at
	return nil
}

// resolveAdoption closes an open request as approved or rejected
func resolveAdoption(req *models.AdoptionRequest, to models.AdoptionRequestStatus, reviewerID uint, at time.Time) error {
	if !req.Status.IsOpen() {
		return domain.ErrAdoptionRequestClosed
	}
	req.Status = to
	req.ReviewedByID = &reviewerID
	req.ReviewedAt = &at
	return nil
}

// cancelAdoption closes an open request on behalf of its requester
func cancelAdoption(req *models.AdoptionRequest, requesterID uint) error {
	if req.RequesterID != requesterID {
		return domain.ErrNotRequester
	}
	if !req.Status.IsOpen() {
		return domain.ErrAdoptionRequestClosed
	}
	req.Status = models.AdoptionStatusCancelled
	return nil
}
