package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/session"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type GetSession struct {
	repo domain.Repository
}

func NewGetSession(repo domain.Repository) *GetSession {
	return &GetSession{repo: repo}
}

func (uc *GetSession) Execute(
	ctx context.Context,
	actor access.Actor,
	sessionID uuid.UUID,
) (*models.Session, error) {

	s, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.NotFound("session_not_found")
		}
		return nil, err
	}

	if !actor.Participates(s.StudentID, s.CounsellorID) {
		return nil, httperr.Forbidden("not_authorized")
	}

	return s, nil
}

type ListSessions struct {
	repo domain.Repository
}

func NewListSessions(repo domain.Repository) *ListSessions {
	return &ListSessions{repo: repo}
}

// Execute lists the sessions visible to actor, newest first.
func (uc *ListSessions) Execute(
	ctx context.Context,
	actor access.Actor,
) ([]models.Session, error) {
	return uc.repo.ListSessions(ctx, access.ScopeFor(actor))
}
