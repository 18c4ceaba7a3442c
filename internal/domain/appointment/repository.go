package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Row locks taken inside fn are held until it returns.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Users --------
	LockUser(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.User, error)

	// -------- Slots --------
	// GetSlot loads the slot and row-locks it, so bookings of one slot
	// run one after another.
	GetSlot(
		ctx context.Context,
		slotID uuid.UUID,
	) (*models.TimeSlot, error)

	// -------- Appointment (create / conflict) --------
	HasActiveAppointment(
		ctx context.Context,
		studentID uuid.UUID,
		from time.Time,
	) (bool, error)

	AssertSlotFree(
		ctx context.Context,
		slotID uuid.UUID,
		at time.Time,
	) error

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	// LockAppointment loads the appointment and row-locks it until the
	// surrounding transaction ends.
	LockAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		scope access.Scope,
	) ([]models.Appointment, error)
}
