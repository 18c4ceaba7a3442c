package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a counselling encounter. EndTime is nil while it is open.
type Session struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   *User     `gorm:"foreignKey:StudentID" json:"-"`

	CounsellorID uuid.UUID `gorm:"type:uuid;not null;index" json:"counsellor_id"`
	Counsellor   *User     `gorm:"foreignKey:CounsellorID" json:"-"`

	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id"`

	StartTime     time.Time  `gorm:"not null" json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	QRScanInTime  *time.Time `json:"qr_scan_in_time"`
	QRScanOutTime *time.Time `json:"qr_scan_out_time"`

	Notes    string  `gorm:"type:text" json:"notes"`
	Severity *string `gorm:"size:20" json:"severity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
