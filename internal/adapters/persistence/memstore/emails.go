package memstore

import (
	"context"
	"errors"
	"sort"

	"petfind/internal/adapters/persistence/models"
)

var errEmailNotFound = errors.New("email not found")

type emailRepo struct{ s *Store }

func (r *emailRepo) Create(_ context.Context, email *models.Email) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email.ID = r.s.nextID("emails")
	email.CreatedAt = r.s.now()
	email.UpdatedAt = email.CreatedAt
	r.s.emails[email.ID] = *email
	return nil
}

func (r *emailRepo) Update(_ context.Context, email *models.Email) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.emails[email.ID]; !ok {
		return errEmailNotFound
	}
	email.UpdatedAt = r.s.now()
	r.s.emails[email.ID] = *email
	return nil
}

func (r *emailRepo) ListUnsent(_ context.Context, maxAttempts, limit int) ([]*models.Email, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.Email
	for _, e := range r.s.emails {
		if !e.Sent && e.Attempts < maxAttempts {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
