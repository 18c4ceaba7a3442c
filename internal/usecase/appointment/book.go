package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/appointment"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	StudentID    uuid.UUID
	CounsellorID uuid.UUID
	TimeSlotID   uuid.UUID

	// Date is the calendar day, "YYYY-MM-DD" (RFC3339 also accepted).
	Date string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		// --------------------------------------------------
		// 1. Serialise bookings of the same student
		// --------------------------------------------------
		if _, err := tx.LockUser(ctx, in.StudentID); err != nil {
			return err
		}

		now := uc.now().In(uc.loc)

		// --------------------------------------------------
		// 2. One upcoming appointment per student
		// --------------------------------------------------
		active, err := tx.HasActiveAppointment(ctx, in.StudentID, now)
		if err != nil {
			return err
		}
		if active {
			return httperr.Conflict("active_appointment_exists")
		}

		// --------------------------------------------------
		// 3. Slot must be the counsellor's and open
		// --------------------------------------------------
		slot, err := tx.GetSlot(ctx, in.TimeSlotID)
		if err != nil {
			if httperr.IsKind(err, httperr.KindNotFound) {
				return httperr.Validation("invalid_slot")
			}
			return err
		}
		if slot.CounsellorID != in.CounsellorID || !slot.IsAvailable {
			return httperr.Validation("invalid_slot")
		}

		// --------------------------------------------------
		// 4. Date on the slot's weekday, not in the past
		// --------------------------------------------------
		at, err := domain.ResolveDate(in.Date, slot, uc.loc)
		if err != nil {
			return err
		}
		if at.Before(now) {
			return httperr.Validation("appointment_in_past")
		}

		// --------------------------------------------------
		// 5. Nobody else holds this slot at that instant
		// --------------------------------------------------
		if err := tx.AssertSlotFree(ctx, slot.ID, at); err != nil {
			return err
		}

		slotID := slot.ID
		ap = &models.Appointment{
			StudentID:       in.StudentID,
			CounsellorID:    in.CounsellorID,
			TimeSlotID:      &slotID,
			AppointmentDate: at,
			Status:          string(domain.InitialStatus()),
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			// two students passing step 5 at once meet on the slot index
			if httperr.IsKind(err, httperr.KindConflict) {
				return httperr.Conflict("slot_taken")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.StudentID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"counsellor_id":    ap.CounsellorID,
			"appointment_date": ap.AppointmentDate,
		},
	})

	return ap, nil
}
