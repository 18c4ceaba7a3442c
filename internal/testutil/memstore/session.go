package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/session"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type sessionRepo struct{ s *Store }

func (s *Store) Sessions() domain.Repository {
	return sessionRepo{s}
}

func (r sessionRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	return r.s.transaction(func() error { return fn(r) })
}

func (r sessionRepo) LockUser(_ context.Context, userID uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getUser(userID)
}

func (r sessionRepo) GetUser(_ context.Context, userID uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getUser(userID)
}

func (r sessionRepo) SyncActiveFlag(_ context.Context, counsellorID uuid.UUID) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.d.users[counsellorID]
	if !ok {
		return false, httperr.NotFound("not_found")
	}
	u.IsActive = s.hasOpenSession(counsellorID)
	s.d.users[counsellorID] = u
	return u.IsActive, nil
}

func (r sessionRepo) SyncAllActiveFlags(_ context.Context) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed int64
	for id, u := range s.d.users {
		if u.Role != models.RoleCounsellor {
			continue
		}
		want := s.hasOpenSession(id)
		if u.IsActive != want {
			u.IsActive = want
			s.d.users[id] = u
			changed++
		}
	}
	return changed, nil
}

func (r sessionRepo) LockAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getAppointment(id)
}

func (r sessionRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateAppointment(ap)
}

func (r sessionRepo) HasOpenSession(_ context.Context, counsellorID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.hasOpenSession(counsellorID), nil
}

func (r sessionRepo) CreateSession(_ context.Context, sess *models.Session) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	// partial unique index: one open session per counsellor
	if sess.EndTime == nil && s.hasOpenSession(sess.CounsellorID) {
		return httperr.Conflict("unique_violation")
	}

	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	sess.CreatedAt = s.stamp(sess.ID)
	sess.UpdatedAt = sess.CreatedAt
	s.d.sessions[sess.ID] = *sess
	return nil
}

func (r sessionRepo) GetSessionForCounsellor(_ context.Context, sessionID, counsellorID uuid.UUID) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.d.sessions[sessionID]
	if !ok || sess.CounsellorID != counsellorID {
		return nil, httperr.NotFound("not_found")
	}
	return &sess, nil
}

func (r sessionRepo) GetSession(_ context.Context, sessionID uuid.UUID) (*models.Session, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.d.sessions[sessionID]
	if !ok {
		return nil, httperr.NotFound("not_found")
	}
	sess.Student = s.userRef(sess.StudentID)
	sess.Counsellor = s.userRef(sess.CounsellorID)
	return &sess, nil
}

func (r sessionRepo) UpdateSession(_ context.Context, sess *models.Session) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.sessions[sess.ID]; !ok {
		return httperr.NotFound("not_found")
	}
	row := *sess
	row.Student, row.Counsellor = nil, nil
	row.UpdatedAt = s.Now().UTC()
	s.d.sessions[sess.ID] = row
	return nil
}

func (r sessionRepo) ListSessions(_ context.Context, scope access.Scope) ([]models.Session, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Session
	for _, sess := range s.d.sessions {
		if !scope.Matches(sess.StudentID, sess.CounsellorID) {
			continue
		}
		sess.Student = s.userRef(sess.StudentID)
		sess.Counsellor = s.userRef(sess.CounsellorID)
		out = append(out, sess)
	}

	sort.Slice(out, func(i, j int) bool {
		return s.newer(out[i].ID, out[j].ID, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out, nil
}
