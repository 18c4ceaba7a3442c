package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/session"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

func (r *SessionGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SessionGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *SessionGormRepository) LockUser(
	ctx context.Context,
	userID uuid.UUID,
) (*models.User, error) {
	return lockUser(ctx, r.db, userID)
}

func (r *SessionGormRepository) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (*models.User, error) {
	return getUser(ctx, r.db, userID)
}

const openSessionExists = `EXISTS (
	SELECT 1 FROM sessions s
	WHERE s.counsellor_id = users.id AND s.end_time IS NULL
)`

func (r *SessionGormRepository) SyncActiveFlag(
	ctx context.Context,
	counsellorID uuid.UUID,
) (bool, error) {

	var active bool
	err := r.db.WithContext(ctx).
		Raw(
			"UPDATE users SET is_active = "+openSessionExists+", updated_at = NOW() WHERE id = ? RETURNING is_active",
			counsellorID,
		).
		Row().
		Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, httperr.NotFound("not_found")
	}
	if err != nil {
		return false, httperr.FromStore(err)
	}
	return active, nil
}

func (r *SessionGormRepository) SyncAllActiveFlags(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		"UPDATE users SET is_active = "+openSessionExists+", updated_at = NOW() "+
			"WHERE role = ? AND is_active IS DISTINCT FROM "+openSessionExists,
		models.RoleCounsellor,
	)
	if res.Error != nil {
		return 0, httperr.FromStore(res.Error)
	}
	return res.RowsAffected, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SessionGormRepository) LockAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return lockAppointment(ctx, r.db, appointmentID)
}

func (r *SessionGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return saveAppointment(ctx, r.db, ap)
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (r *SessionGormRepository) HasOpenSession(
	ctx context.Context,
	counsellorID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("counsellor_id = ? AND end_time IS NULL", counsellorID).
		Count(&count).Error; err != nil {
		return false, httperr.FromStore(err)
	}
	return count > 0, nil
}

func (r *SessionGormRepository) CreateSession(
	ctx context.Context,
	s *models.Session,
) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(s).Error)
}

func (r *SessionGormRepository) GetSessionForCounsellor(
	ctx context.Context,
	sessionID uuid.UUID,
	counsellorID uuid.UUID,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND counsellor_id = ?", sessionID, counsellorID).
		First(&s).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &s, nil
}

func (r *SessionGormRepository) GetSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Counsellor").
		First(&s, "id = ?", sessionID).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &s, nil
}

func (r *SessionGormRepository) UpdateSession(
	ctx context.Context,
	s *models.Session,
) error {
	return httperr.FromStore(r.db.WithContext(ctx).Save(s).Error)
}

func (r *SessionGormRepository) ListSessions(
	ctx context.Context,
	scope access.Scope,
) ([]models.Session, error) {

	var sessions []models.Session
	if err := scoped(r.db.WithContext(ctx), scope).
		Preload("Student").
		Preload("Counsellor").
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return sessions, nil
}

var _ domain.Repository = (*SessionGormRepository)(nil)
