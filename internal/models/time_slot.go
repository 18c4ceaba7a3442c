package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeSlot is a recurring weekly availability window declared by a counsellor.
type TimeSlot struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CounsellorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_slot_unique,priority:1" json:"counsellor_id"`

	DayOfWeek int    `gorm:"not null;uniqueIndex:idx_slot_unique,priority:2" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null;uniqueIndex:idx_slot_unique,priority:3" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	IsAvailable bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *TimeSlot) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
