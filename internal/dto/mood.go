package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/models"
)

// MoodView renders Date as a plain "YYYY-MM-DD" calendar date.
type MoodView struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Date      string    `json:"date"`
	MoodLevel int       `json:"mood_level"`
	MoodEmoji string    `json:"mood_emoji"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMoodView(m *models.Mood) MoodView {
	return MoodView{
		ID:        m.ID,
		StudentID: m.StudentID,
		Date:      time.Time(m.Date).Format("2006-01-02"),
		MoodLevel: m.MoodLevel,
		MoodEmoji: m.MoodEmoji,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewMoodViews(ms []models.Mood) []MoodView {
	out := make([]MoodView, 0, len(ms))
	for i := range ms {
		out = append(out, NewMoodView(&ms[i]))
	}
	return out
}
