package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type Repository interface {
	CreateSlot(
		ctx context.Context,
		slot *models.TimeSlot,
	) error

	// ListAvailableSlots returns the counsellor's available slots ordered
	// by day of week, then start time.
	ListAvailableSlots(
		ctx context.Context,
		counsellorID uuid.UUID,
	) ([]models.TimeSlot, error)

	GetSlotForCounsellor(
		ctx context.Context,
		slotID uuid.UUID,
		counsellorID uuid.UUID,
	) (*models.TimeSlot, error)

	DeleteSlot(
		ctx context.Context,
		slotID uuid.UUID,
	) error
}
