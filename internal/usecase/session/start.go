package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	appointmentdomain "github.com/campus-wellbeing/counsel-api/internal/domain/appointment"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/session"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type StartSessionInput struct {
	CounsellorID  uuid.UUID
	StudentID     uuid.UUID
	AppointmentID *uuid.UUID
}

type StartSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewStartSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartSession {
	return &StartSession{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *StartSession) Execute(
	ctx context.Context,
	in StartSessionInput,
) (*models.Session, error) {

	var s *models.Session

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.LockUser(ctx, in.CounsellorID); err != nil {
			return err
		}

		open, err := tx.HasOpenSession(ctx, in.CounsellorID)
		if err != nil {
			return err
		}
		if open {
			return httperr.Conflict("session_already_open")
		}

		student, err := tx.GetUser(ctx, in.StudentID)
		if err != nil {
			if httperr.IsKind(err, httperr.KindNotFound) {
				return httperr.Validation("invalid_student")
			}
			return err
		}
		if student.Role != string(access.RoleStudent) {
			return httperr.Validation("invalid_student")
		}

		if in.AppointmentID != nil {
			ap, err := tx.LockAppointment(ctx, *in.AppointmentID)
			if err != nil {
				if httperr.IsKind(err, httperr.KindNotFound) {
					return httperr.Validation("invalid_appointment")
				}
				return err
			}
			if ap.CounsellorID != in.CounsellorID ||
				ap.StudentID != in.StudentID ||
				ap.Status != string(appointmentdomain.StatusScheduled) {
				return httperr.Validation("invalid_appointment")
			}
		}

		s = &models.Session{
			StudentID:     in.StudentID,
			CounsellorID:  in.CounsellorID,
			AppointmentID: in.AppointmentID,
		}
		domain.Open(s, uc.now().UTC())

		if err := tx.CreateSession(ctx, s); err != nil {
			// The open-session index can still fire if the lock was bypassed.
			if httperr.IsKind(err, httperr.KindConflict) {
				return httperr.Conflict("session_already_open")
			}
			return err
		}

		_, err = tx.SyncActiveFlag(ctx, in.CounsellorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CounsellorID,
		Action:   "session_started",
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: map[string]any{
			"student_id":     s.StudentID,
			"appointment_id": s.AppointmentID,
		},
	})

	return s, nil
}
