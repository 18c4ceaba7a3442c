package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/auth"
	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/identity"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

const usernameAttempts = 5

type OnboardingInput struct {
	StudentID  uuid.UUID
	Year       string
	Department string
}

type CompleteOnboarding struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	username func() (string, error)
}

func NewCompleteOnboarding(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteOnboarding {
	return &CompleteOnboarding{
		repo:     repo,
		audit:    audit,
		username: auth.AnonymousUsername,
	}
}

// Execute assigns the student an anonymous username and QR secret. It
// can run once per student.
func (uc *CompleteOnboarding) Execute(
	ctx context.Context,
	in OnboardingInput,
) (*models.User, error) {

	u, err := uc.repo.GetUser(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if u.Role != string(access.RoleStudent) {
		return nil, httperr.Forbidden("not_authorized")
	}
	if u.IsOnboarded {
		return nil, httperr.Conflict("already_onboarded")
	}

	name, err := uc.freeUsername(ctx)
	if err != nil {
		return nil, err
	}

	u.Year = strings.TrimSpace(in.Year)
	u.Department = strings.TrimSpace(in.Department)
	u.AnonymousUsername = &name
	u.QRSecret = uuid.NewString()
	u.IsOnboarded = true

	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &u.ID,
		Action:   "user_onboarded",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return u, nil
}

func (uc *CompleteOnboarding) freeUsername(ctx context.Context) (string, error) {
	for i := 0; i < usernameAttempts; i++ {
		name, err := uc.username()
		if err != nil {
			return "", err
		}
		taken, err := uc.repo.AnonymousUsernameTaken(ctx, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
	}
	return "", httperr.Conflict("unique_violation")
}

type Profile struct {
	repo domain.Repository
}

func NewProfile(repo domain.Repository) *Profile {
	return &Profile{repo: repo}
}

func (uc *Profile) Execute(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return uc.repo.GetUser(ctx, userID)
}
