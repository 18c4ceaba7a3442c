package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/wellbeing"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type WellbeingGormRepository struct {
	db *gorm.DB
}

func NewWellbeingGormRepository(db *gorm.DB) *WellbeingGormRepository {
	return &WellbeingGormRepository{db: db}
}

// --------------------------------------------------
// Journals
// --------------------------------------------------

func (r *WellbeingGormRepository) ListJournals(
	ctx context.Context,
	studentID uuid.UUID,
) ([]models.Journal, error) {

	var journals []models.Journal
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&journals).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return journals, nil
}

func (r *WellbeingGormRepository) CreateJournal(
	ctx context.Context,
	j *models.Journal,
) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(j).Error)
}

func (r *WellbeingGormRepository) GetJournal(
	ctx context.Context,
	studentID uuid.UUID,
	journalID uuid.UUID,
) (*models.Journal, error) {

	var j models.Journal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", journalID, studentID).
		First(&j).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &j, nil
}

func (r *WellbeingGormRepository) UpdateJournal(
	ctx context.Context,
	j *models.Journal,
) error {
	j.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.Journal{}).
		Where("id = ? AND student_id = ?", j.ID, j.StudentID).
		Updates(map[string]any{
			"title":      j.Title,
			"content":    j.Content,
			"mood":       j.Mood,
			"updated_at": j.UpdatedAt,
		})
	if res.Error != nil {
		return httperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("not_found")
	}
	return nil
}

func (r *WellbeingGormRepository) DeleteJournal(
	ctx context.Context,
	studentID uuid.UUID,
	journalID uuid.UUID,
) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", journalID, studentID).
		Delete(&models.Journal{})
	if res.Error != nil {
		return httperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("not_found")
	}
	return nil
}

// --------------------------------------------------
// Moods
// --------------------------------------------------

func (r *WellbeingGormRepository) UpsertMood(
	ctx context.Context,
	m *models.Mood,
) (bool, error) {

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	proposed := m.ID

	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"mood_level", "mood_emoji", "note", "updated_at",
			}),
		}).Create(m).Error; err != nil {
			return err
		}

		// the conflicting row keeps its own id
		var stored models.Mood
		if err := tx.
			Where("student_id = ? AND date = ?", m.StudentID, dateKey(time.Time(m.Date))).
			First(&stored).Error; err != nil {
			return err
		}
		created = stored.ID == proposed
		*m = stored
		return nil
	})
	if err != nil {
		return false, httperr.FromStore(err)
	}
	return created, nil
}

func (r *WellbeingGormRepository) RecentMoods(
	ctx context.Context,
	studentID uuid.UUID,
	limit int,
) ([]models.Mood, error) {

	var moods []models.Mood
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Limit(limit).
		Find(&moods).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return moods, nil
}

func (r *WellbeingGormRepository) MoodsSince(
	ctx context.Context,
	studentID uuid.UUID,
	from time.Time,
) ([]models.Mood, error) {

	var moods []models.Mood
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND date >= ?", studentID, dateKey(from)).
		Order("date ASC").
		Find(&moods).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return moods, nil
}

func (r *WellbeingGormRepository) MoodOn(
	ctx context.Context,
	studentID uuid.UUID,
	day time.Time,
) (*models.Mood, error) {

	var m models.Mood
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, dateKey(day)).
		First(&m).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &m, nil
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateLayout)
}

var _ domain.Repository = (*WellbeingGormRepository)(nil)
