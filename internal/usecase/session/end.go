package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	appointmentdomain "github.com/campus-wellbeing/counsel-api/internal/domain/appointment"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/session"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type EndSessionInput struct {
	CounsellorID uuid.UUID
	SessionID    uuid.UUID
	Notes        string
	Severity     string
}

type EndSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewEndSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *EndSession {
	return &EndSession{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute closes the counsellor's open session and completes the
// appointment it was started from, if any.
func (uc *EndSession) Execute(
	ctx context.Context,
	in EndSessionInput,
) (*models.Session, error) {

	var (
		s         *models.Session
		completed *uuid.UUID
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		s, err = tx.GetSessionForCounsellor(ctx, in.SessionID, in.CounsellorID)
		if err != nil {
			if httperr.IsKind(err, httperr.KindNotFound) {
				return httperr.NotFound("session_not_found")
			}
			return err
		}

		if !domain.IsOpen(s) {
			return httperr.Conflict("session_already_closed")
		}

		severity, err := domain.ParseSeverity(in.Severity)
		if err != nil {
			return err
		}

		now := uc.now().UTC()
		if err := domain.Close(s, now, in.Notes, severity); err != nil {
			return err
		}
		if err := tx.UpdateSession(ctx, s); err != nil {
			return err
		}

		if s.AppointmentID != nil {
			ap, err := tx.LockAppointment(ctx, *s.AppointmentID)
			switch {
			case httperr.IsKind(err, httperr.KindNotFound):
				// linked appointment was removed; nothing to complete
			case err != nil:
				return err
			case ap.Status == string(appointmentdomain.StatusScheduled):
				if err := appointmentdomain.Complete(ap, now); err != nil {
					return err
				}
				if err := tx.UpdateAppointment(ctx, ap); err != nil {
					return err
				}
				completed = &ap.ID
			}
		}

		_, err = tx.SyncActiveFlag(ctx, in.CounsellorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CounsellorID,
		Action:   "session_ended",
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: map[string]any{"severity": s.Severity},
	})
	if completed != nil {
		uc.audit.Dispatch(audit.Event{
			ActorID:  &in.CounsellorID,
			Action:   "appointment_completed",
			Entity:   "appointment",
			EntityID: completed,
		})
	}

	return s, nil
}
