package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/appointment"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute cancels a scheduled appointment. Students may cancel their own,
// counsellors the ones assigned to them, management any.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor access.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.LockAppointment(ctx, appointmentID)
		if err != nil {
			if httperr.IsKind(err, httperr.KindNotFound) {
				return httperr.NotFound("appointment_not_found")
			}
			return err
		}

		if !actor.Participates(ap.StudentID, ap.CounsellorID) {
			return httperr.Forbidden("not_authorized")
		}

		// the lock keeps EndSession from completing it under us
		if err := domain.Cancel(ap, uc.now().UTC()); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"role": actor.Role},
	})

	return ap, nil
}
