package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/availability"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
)

type DeleteSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteSlot {
	return &DeleteSlot{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes one of the counsellor's own slots. Slots owned by
// someone else are reported as missing.
func (uc *DeleteSlot) Execute(
	ctx context.Context,
	counsellorID uuid.UUID,
	slotID uuid.UUID,
) error {

	slot, err := uc.repo.GetSlotForCounsellor(ctx, slotID, counsellorID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return httperr.NotFound("slot_not_found")
		}
		return err
	}

	if err := uc.repo.DeleteSlot(ctx, slot.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &counsellorID,
		Action:   "slot_deleted",
		Entity:   "time_slot",
		EntityID: &slot.ID,
	})

	return nil
}
