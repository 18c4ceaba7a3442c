package wellbeing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/models"
)

// Repository holds a student's journals and daily moods. Lookups take the
// student id so another student's rows read as missing.
type Repository interface {
	// -------- Journals --------
	ListJournals(
		ctx context.Context,
		studentID uuid.UUID,
	) ([]models.Journal, error)

	CreateJournal(
		ctx context.Context,
		j *models.Journal,
	) error

	GetJournal(
		ctx context.Context,
		studentID uuid.UUID,
		journalID uuid.UUID,
	) (*models.Journal, error)

	UpdateJournal(
		ctx context.Context,
		j *models.Journal,
	) error

	// DeleteJournal returns NotFound when no owned row was removed.
	DeleteJournal(
		ctx context.Context,
		studentID uuid.UUID,
		journalID uuid.UUID,
	) error

	// -------- Moods --------

	// UpsertMood stores m as the entry for (m.StudentID, m.Date),
	// replacing an earlier one. It reports whether a row was inserted;
	// on update m is refreshed with the stored row.
	UpsertMood(
		ctx context.Context,
		m *models.Mood,
	) (bool, error)

	// RecentMoods returns up to limit entries, newest date first.
	RecentMoods(
		ctx context.Context,
		studentID uuid.UUID,
		limit int,
	) ([]models.Mood, error)

	// MoodsSince returns entries dated on or after from, oldest first.
	MoodsSince(
		ctx context.Context,
		studentID uuid.UUID,
		from time.Time,
	) ([]models.Mood, error)

	// MoodOn returns NotFound when the day has no entry.
	MoodOn(
		ctx context.Context,
		studentID uuid.UUID,
		day time.Time,
	) (*models.Mood, error)
}
