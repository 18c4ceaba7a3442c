package appointment

import "github.com/campus-wellbeing/counsel-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Validations
// ===============================

// CanCancel only lets scheduled appointments be cancelled.
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
