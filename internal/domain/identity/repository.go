package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type Repository interface {
	CreateUser(
		ctx context.Context,
		u *models.User,
	) error

	GetUser(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.User, error)

	GetUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	UpdateUser(
		ctx context.Context,
		u *models.User,
	) error

	AnonymousUsernameTaken(
		ctx context.Context,
		username string,
	) (bool, error)
}
