package availability

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

const clockLayout = "15:04"

type SlotInput struct {
	CounsellorID uuid.UUID
	DayOfWeek    int
	StartTime    string
	EndTime      string
}

// ParseClock accepts "HH:MM" or "HH:MM:SS" and returns the normalised
// "HH:MM" form together with minutes since midnight. Slots start on the
// minute, so non-zero seconds are rejected.
func ParseClock(raw string) (string, int, error) {
	raw = strings.TrimSpace(raw)
	layout := clockLayout
	if strings.Count(raw, ":") == 2 {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, raw)
	if err != nil || t.Second() != 0 {
		return "", 0, httperr.Validation("invalid_time")
	}
	return t.Format(clockLayout), t.Hour()*60 + t.Minute(), nil
}

// NewSlot validates in and builds an available slot from it.
func NewSlot(in SlotInput) (*models.TimeSlot, error) {
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return nil, httperr.Validation("invalid_day_of_week")
	}

	start, startMin, err := ParseClock(in.StartTime)
	if err != nil {
		return nil, err
	}
	end, endMin, err := ParseClock(in.EndTime)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, httperr.Validation("invalid_time_range")
	}

	return &models.TimeSlot{
		CounsellorID: in.CounsellorID,
		DayOfWeek:    in.DayOfWeek,
		StartTime:    start,
		EndTime:      end,
		IsAvailable:  true,
	}, nil
}
