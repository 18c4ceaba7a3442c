package memstore

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/identity"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type identityRepo struct{ s *Store }

func (s *Store) Identity() domain.Repository {
	return identityRepo{s}
}

func (r identityRepo) CreateUser(_ context.Context, u *models.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.d.users {
		if existing.Email == u.Email {
			return httperr.Conflict("unique_violation")
		}
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = s.stamp(u.ID)
	u.UpdatedAt = u.CreatedAt
	s.d.users[u.ID] = *u
	return nil
}

func (r identityRepo) GetUser(_ context.Context, userID uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getUser(userID)
}

func (r identityRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, httperr.NotFound("not_found")
}

func (r identityRepo) UpdateUser(_ context.Context, u *models.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.users[u.ID]; !ok {
		return httperr.NotFound("not_found")
	}
	u.UpdatedAt = s.Now().UTC()
	s.d.users[u.ID] = *u
	return nil
}

func (r identityRepo) AnonymousUsernameTaken(_ context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.d.users {
		if u.AnonymousUsername != nil && *u.AnonymousUsername == username {
			return true, nil
		}
	}
	return false, nil
}
