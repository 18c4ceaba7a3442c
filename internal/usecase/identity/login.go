package identity

import (
	"context"

	"github.com/campus-wellbeing/counsel-api/internal/auth"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/identity"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/validators"
)

type Login struct {
	repo   domain.Repository
	tokens *auth.TokenIssuer
}

func NewLogin(
	repo domain.Repository,
	tokens *auth.TokenIssuer,
) *Login {
	return &Login{
		repo:   repo,
		tokens: tokens,
	}
}

// Execute reports unknown emails and wrong passwords identically.
func (uc *Login) Execute(
	ctx context.Context,
	email string,
	password string,
) (*Result, error) {

	email = validators.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, httperr.Unauthorized("invalid_credentials")
	}

	u, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.Unauthorized("invalid_credentials")
		}
		return nil, err
	}

	if !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, httperr.Unauthorized("invalid_credentials")
	}

	token, _, err := uc.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &Result{Token: token, User: u}, nil
}
