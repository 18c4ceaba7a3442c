package appointment

import (
	"context"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/appointment"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(repo domain.Repository) *ListMyAppointments {
	return &ListMyAppointments{repo: repo}
}

// Execute lists the appointments visible to actor, newest date first,
// with student, counsellor and slot loaded.
func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	actor access.Actor,
) ([]models.Appointment, error) {
	return uc.repo.ListAppointments(ctx, access.ScopeFor(actor))
}
