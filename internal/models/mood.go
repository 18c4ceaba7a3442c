package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Mood holds at most one row per student per calendar date.
type Mood struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_mood_day,priority:1" json:"student_id"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_mood_day,priority:2" json:"date"`

	MoodLevel int    `gorm:"not null" json:"mood_level"`
	MoodEmoji string `gorm:"size:16" json:"mood_emoji"`
	Note      string `gorm:"type:text" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Mood) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
