package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/identity"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserGormRepository) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (*models.User, error) {
	return getUser(ctx, r.db, userID)
}

func (r *UserGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &u, nil
}

func (r *UserGormRepository) UpdateUser(
	ctx context.Context,
	u *models.User,
) error {
	return httperr.FromStore(r.db.WithContext(ctx).Save(u).Error)
}

func (r *UserGormRepository) AnonymousUsernameTaken(
	ctx context.Context,
	username string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("anonymous_username = ?", username).
		Count(&count).Error; err != nil {
		return false, httperr.FromStore(err)
	}
	return count > 0, nil
}

var _ domain.Repository = (*UserGormRepository)(nil)
