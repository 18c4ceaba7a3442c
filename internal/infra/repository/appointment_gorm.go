package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/appointment"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Users / slots
// --------------------------------------------------

func (r *AppointmentGormRepository) LockUser(
	ctx context.Context,
	userID uuid.UUID,
) (*models.User, error) {
	return lockUser(ctx, r.db, userID)
}

func (r *AppointmentGormRepository) GetSlot(
	ctx context.Context,
	slotID uuid.UUID,
) (*models.TimeSlot, error) {

	// bookings of the same slot queue on this lock
	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", slotID).
		First(&slot).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &slot, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) HasActiveAppointment(
	ctx context.Context,
	studentID uuid.UUID,
	from time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"student_id = ? AND status = ? AND appointment_date >= ?",
			studentID, string(domain.StatusScheduled), from,
		).
		Count(&count).Error; err != nil {
		return false, httperr.FromStore(err)
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) AssertSlotFree(
	ctx context.Context,
	slotID uuid.UUID,
	at time.Time,
) error {

	var taken []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id").
		Where(
			"time_slot_id = ? AND status = ? AND appointment_date = ?",
			slotID, string(domain.StatusScheduled), at,
		).
		Limit(1).
		Find(&taken).Error; err != nil {
		return httperr.FromStore(err)
	}

	if len(taken) > 0 {
		return httperr.Conflict("slot_taken")
	}
	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(ap).Error)
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) LockAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {
	return lockAppointment(ctx, r.db, appointmentID)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return saveAppointment(ctx, r.db, ap)
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	scope access.Scope,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := scoped(r.db.WithContext(ctx), scope).
		Preload("Student").
		Preload("Counsellor").
		Preload("TimeSlot").
		Order("appointment_date DESC").
		Find(&apps).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return apps, nil
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)
