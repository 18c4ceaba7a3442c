package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/availability"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.TimeSlot,
) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(slot).Error)
}

func (r *AvailabilityGormRepository) ListAvailableSlots(
	ctx context.Context,
	counsellorID uuid.UUID,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("counsellor_id = ? AND is_available = ?", counsellorID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return slots, nil
}

func (r *AvailabilityGormRepository) GetSlotForCounsellor(
	ctx context.Context,
	slotID uuid.UUID,
	counsellorID uuid.UUID,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("id = ? AND counsellor_id = ?", slotID, counsellorID).
		First(&slot).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &slot, nil
}

func (r *AvailabilityGormRepository) DeleteSlot(
	ctx context.Context,
	slotID uuid.UUID,
) error {
	res := r.db.WithContext(ctx).Delete(&models.TimeSlot{}, "id = ?", slotID)
	if res.Error != nil {
		return httperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("slot_not_found")
	}
	return nil
}

var _ domain.Repository = (*AvailabilityGormRepository)(nil)
