package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   *User     `gorm:"foreignKey:StudentID" json:"-"`

	CounsellorID uuid.UUID `gorm:"type:uuid;not null;index" json:"counsellor_id"`
	Counsellor   *User     `gorm:"foreignKey:CounsellorID" json:"-"`

	TimeSlotID *uuid.UUID `gorm:"type:uuid" json:"time_slot_id"`
	TimeSlot   *TimeSlot  `gorm:"foreignKey:TimeSlotID" json:"-"`

	AppointmentDate time.Time `gorm:"not null" json:"appointment_date"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
