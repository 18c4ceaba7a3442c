package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/appointment"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type appointmentRepo struct{ s *Store }

func (s *Store) Appointments() domain.Repository {
	return appointmentRepo{s}
}

func (r appointmentRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	return r.s.transaction(func() error { return fn(r) })
}

func (r appointmentRepo) LockUser(_ context.Context, userID uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getUser(userID)
}

func (r appointmentRepo) GetSlot(_ context.Context, slotID uuid.UUID) (*models.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.d.slots[slotID]
	if !ok {
		return nil, httperr.NotFound("not_found")
	}
	return &slot, nil
}

func (r appointmentRepo) HasActiveAppointment(_ context.Context, studentID uuid.UUID, from time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ap := range r.s.d.appointments {
		if ap.StudentID == studentID &&
			ap.Status == string(domain.StatusScheduled) &&
			!ap.AppointmentDate.Before(from) {
			return true, nil
		}
	}
	return false, nil
}

func (r appointmentRepo) AssertSlotFree(_ context.Context, slotID uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ap := range r.s.d.appointments {
		if ap.TimeSlotID != nil && *ap.TimeSlotID == slotID &&
			ap.Status == string(domain.StatusScheduled) &&
			ap.AppointmentDate.Equal(at) {
			return httperr.Conflict("slot_taken")
		}
	}
	return nil
}

func (r appointmentRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.users[ap.StudentID]; !ok {
		return httperr.Validation("invalid_reference")
	}
	if _, ok := s.d.users[ap.CounsellorID]; !ok {
		return httperr.Validation("invalid_reference")
	}

	// partial unique index: one scheduled booking per slot and instant
	if ap.TimeSlotID != nil && ap.Status == string(domain.StatusScheduled) {
		for _, other := range s.d.appointments {
			if other.TimeSlotID != nil && *other.TimeSlotID == *ap.TimeSlotID &&
				other.Status == ap.Status &&
				other.AppointmentDate.Equal(ap.AppointmentDate) {
				return httperr.Conflict("unique_violation")
			}
		}
	}

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	ap.CreatedAt = s.stamp(ap.ID)
	ap.UpdatedAt = ap.CreatedAt
	s.d.appointments[ap.ID] = *ap
	return nil
}

func (r appointmentRepo) LockAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getAppointment(id)
}

func (r appointmentRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateAppointment(ap)
}

func (r appointmentRepo) ListAppointments(_ context.Context, scope access.Scope) ([]models.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range s.d.appointments {
		if !scope.Matches(ap.StudentID, ap.CounsellorID) {
			continue
		}
		ap.Student = s.userRef(ap.StudentID)
		ap.Counsellor = s.userRef(ap.CounsellorID)
		if ap.TimeSlotID != nil {
			if slot, ok := s.d.slots[*ap.TimeSlotID]; ok {
				ap.TimeSlot = &slot
			}
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		return s.newer(out[i].ID, out[j].ID, out[i].AppointmentDate, out[j].AppointmentDate)
	})
	return out, nil
}
