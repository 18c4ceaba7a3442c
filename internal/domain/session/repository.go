package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Users --------
	LockUser(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.User, error)

	GetUser(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.User, error)

	// SyncActiveFlag sets the counsellor's is_active to whether an open
	// session exists and returns the new value.
	SyncActiveFlag(
		ctx context.Context,
		counsellorID uuid.UUID,
	) (bool, error)

	// SyncAllActiveFlags recomputes is_active for every counsellor and
	// returns how many rows changed.
	SyncAllActiveFlags(ctx context.Context) (int64, error)

	// -------- Appointments --------
	// LockAppointment loads and row-locks the appointment.
	LockAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Sessions --------
	HasOpenSession(
		ctx context.Context,
		counsellorID uuid.UUID,
	) (bool, error)

	CreateSession(
		ctx context.Context,
		s *models.Session,
	) error

	// GetSessionForCounsellor loads and row-locks the session only if it
	// belongs to counsellorID.
	GetSessionForCounsellor(
		ctx context.Context,
		sessionID uuid.UUID,
		counsellorID uuid.UUID,
	) (*models.Session, error)

	// GetSession loads a session with its student and counsellor.
	GetSession(
		ctx context.Context,
		sessionID uuid.UUID,
	) (*models.Session, error)

	UpdateSession(
		ctx context.Context,
		s *models.Session,
	) error

	ListSessions(
		ctx context.Context,
		scope access.Scope,
	) ([]models.Session, error)
}
