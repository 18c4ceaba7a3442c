package memstore

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/availability"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type availabilityRepo struct{ s *Store }

func (s *Store) Availability() domain.Repository {
	return availabilityRepo{s}
}

func (r availabilityRepo) CreateSlot(_ context.Context, slot *models.TimeSlot) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.d.slots {
		if existing.CounsellorID == slot.CounsellorID &&
			existing.DayOfWeek == slot.DayOfWeek &&
			existing.StartTime == slot.StartTime {
			return httperr.Conflict("unique_violation")
		}
	}

	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	slot.CreatedAt = s.stamp(slot.ID)
	s.d.slots[slot.ID] = *slot
	return nil
}

func (r availabilityRepo) ListAvailableSlots(_ context.Context, counsellorID uuid.UUID) ([]models.TimeSlot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TimeSlot
	for _, slot := range s.d.slots {
		if slot.CounsellorID == counsellorID && slot.IsAvailable {
			out = append(out, slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (r availabilityRepo) GetSlotForCounsellor(_ context.Context, slotID, counsellorID uuid.UUID) (*models.TimeSlot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.d.slots[slotID]
	if !ok || slot.CounsellorID != counsellorID {
		return nil, httperr.NotFound("not_found")
	}
	return &slot, nil
}

func (r availabilityRepo) DeleteSlot(_ context.Context, slotID uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.slots[slotID]; !ok {
		return httperr.NotFound("slot_not_found")
	}
	delete(s.d.slots, slotID)

	// ON DELETE SET NULL
	for id, ap := range s.d.appointments {
		if ap.TimeSlotID != nil && *ap.TimeSlotID == slotID {
			ap.TimeSlotID = nil
			s.d.appointments[id] = ap
		}
	}
	return nil
}
