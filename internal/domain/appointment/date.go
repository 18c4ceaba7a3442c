package appointment

import (
	"strings"
	"time"

	"github.com/campus-wellbeing/counsel-api/internal/domain/availability"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

const dateLayout = "2006-01-02"

// ResolveDate turns a client supplied date into the instant the
// appointment starts: the calendar day in loc combined with the slot's
// start time. RFC3339 input is reduced to its calendar day in loc.
func ResolveDate(raw string, slot *models.TimeSlot, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	day, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		ts, err2 := time.Parse(time.RFC3339, raw)
		if err2 != nil {
			return time.Time{}, httperr.Validation("invalid_date")
		}
		day = ts.In(loc)
	}

	if int(day.Weekday()) != slot.DayOfWeek {
		return time.Time{}, httperr.Validation("date_slot_mismatch")
	}

	_, mins, err := availability.ParseClock(slot.StartTime)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), mins/60, mins%60, 0, 0, loc), nil
}
