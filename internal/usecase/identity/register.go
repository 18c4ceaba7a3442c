package identity

import (
	"context"
	"strings"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/auth"
	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/identity"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
	"github.com/campus-wellbeing/counsel-api/internal/validators"
)

type RegisterInput struct {
	Email          string
	Password       string
	Name           string
	Role           string
	Specialization string
}

// Result is an authenticated user with a fresh access token.
type Result struct {
	Token string
	User  *models.User
}

type Register struct {
	repo        domain.Repository
	tokens      *auth.TokenIssuer
	audit       *audit.Dispatcher
	bcryptCost  int
	domainCheck func(email string) bool
}

// NewRegister builds the use case. domainCheck may be nil to skip the
// email domain lookup.
func NewRegister(
	repo domain.Repository,
	tokens *auth.TokenIssuer,
	audit *audit.Dispatcher,
	bcryptCost int,
	domainCheck func(email string) bool,
) *Register {
	return &Register{
		repo:        repo,
		tokens:      tokens,
		audit:       audit,
		bcryptCost:  bcryptCost,
		domainCheck: domainCheck,
	}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*Result, error) {

	email := validators.NormalizeEmail(in.Email)
	if email == "" {
		return nil, httperr.Validation("invalid_request")
	}
	if uc.domainCheck != nil && !uc.domainCheck(email) {
		return nil, httperr.Validation("invalid_email_domain")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return nil, httperr.Validation("invalid_request")
	}

	// Management accounts are provisioned out of band.
	role := access.Role(strings.ToLower(in.Role))
	if role != access.RoleStudent && role != access.RoleCounsellor {
		return nil, httperr.Validation("invalid_request")
	}

	hash, err := auth.HashPassword(in.Password, uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         string(role),
	}
	if role == access.RoleCounsellor {
		u.Specialization = strings.TrimSpace(in.Specialization)
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			return nil, httperr.Conflict("email_already_exists")
		}
		return nil, err
	}

	token, _, err := uc.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	return &Result{Token: token, User: u}, nil
}
