package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/availability"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type CreateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSlot {
	return &CreateSlot{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateSlot) Execute(
	ctx context.Context,
	in domain.SlotInput,
) (*models.TimeSlot, error) {

	slot, err := domain.NewSlot(in)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.CreateSlot(ctx, slot); err != nil {
		// Duplicate (counsellor, day, start) is a client error, never a 500.
		if httperr.IsKind(err, httperr.KindConflict) {
			return nil, httperr.Conflict("slot_already_exists")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CounsellorID,
		Action:   "slot_created",
		Entity:   "time_slot",
		EntityID: &slot.ID,
		Metadata: map[string]any{
			"day_of_week": slot.DayOfWeek,
			"start_time":  slot.StartTime,
			"end_time":    slot.EndTime,
		},
	})

	return slot, nil
}

type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

func (uc *ListSlots) Execute(
	ctx context.Context,
	counsellorID uuid.UUID,
) ([]models.TimeSlot, error) {
	return uc.repo.ListAvailableSlots(ctx, counsellorID)
}
