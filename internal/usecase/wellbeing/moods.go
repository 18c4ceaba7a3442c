package wellbeing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/wellbeing"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
	"github.com/campus-wellbeing/counsel-api/internal/timezone"
)

type MoodInput struct {
	// Date is "YYYY-MM-DD"; empty means today in the campus time zone.
	Date      string
	MoodLevel int
	MoodEmoji string
	Note      string
}

// Moods keeps one mood entry per student per calendar day.
type Moods struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewMoods(repo domain.Repository, loc *time.Location) *Moods {
	return &Moods{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// Record upserts the day's entry and reports whether it was new.
func (uc *Moods) Record(
	ctx context.Context,
	studentID uuid.UUID,
	in MoodInput,
) (*models.Mood, bool, error) {

	if err := domain.ValidateMoodLevel(in.MoodLevel); err != nil {
		return nil, false, err
	}

	day := domain.CalendarDate(uc.now(), uc.loc)
	if in.Date != "" {
		d, err := domain.ParseDate(in.Date)
		if err != nil {
			return nil, false, err
		}
		day = d
	}

	m := &models.Mood{
		StudentID: studentID,
		Date:      datatypes.Date(day),
		MoodLevel: in.MoodLevel,
		MoodEmoji: in.MoodEmoji,
		Note:      in.Note,
	}

	created, err := uc.repo.UpsertMood(ctx, m)
	if err != nil {
		return nil, false, err
	}
	return m, created, nil
}

func (uc *Moods) History(ctx context.Context, studentID uuid.UUID) ([]models.Mood, error) {
	return uc.repo.RecentMoods(ctx, studentID, domain.MoodHistory)
}

// Month lists entries since the first day of the current month.
func (uc *Moods) Month(ctx context.Context, studentID uuid.UUID) ([]models.Mood, error) {
	first := domain.CalendarDate(timezone.StartOfMonth(uc.now(), uc.loc), uc.loc)
	return uc.repo.MoodsSince(ctx, studentID, first)
}

// Today returns nil when the student has not logged a mood today.
func (uc *Moods) Today(ctx context.Context, studentID uuid.UUID) (*models.Mood, error) {
	m, err := uc.repo.MoodOn(ctx, studentID, domain.CalendarDate(uc.now(), uc.loc))
	if httperr.IsKind(err, httperr.KindNotFound) {
		return nil, nil
	}
	return m, err
}
