package wellbeing

import (
	"time"

	"github.com/campus-wellbeing/counsel-api/internal/httperr"
)

const (
	DateLayout = "2006-01-02"

	MinMoodLevel = 1
	MaxMoodLevel = 5

	// MoodHistory is how many entries the history listing returns.
	MoodHistory = 90
)

func ValidateMoodLevel(level int) error {
	if level < MinMoodLevel || level > MaxMoodLevel {
		return httperr.Validation("invalid_mood")
	}
	return nil
}

// CalendarDate is t's day in loc, as midnight UTC. Mood rows are keyed
// by this value.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date")
	}
	return d, nil
}
