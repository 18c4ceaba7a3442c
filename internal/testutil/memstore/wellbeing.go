package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/wellbeing"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type wellbeingRepo struct{ s *Store }

func (s *Store) Wellbeing() domain.Repository {
	return wellbeingRepo{s}
}

// -------- Journals --------

func (r wellbeingRepo) ListJournals(_ context.Context, studentID uuid.UUID) ([]models.Journal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Journal
	for _, j := range s.d.journals {
		if j.StudentID == studentID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		return s.newer(out[i].ID, out[k].ID, out[i].CreatedAt, out[k].CreatedAt)
	})
	return out, nil
}

func (r wellbeingRepo) CreateJournal(_ context.Context, j *models.Journal) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.users[j.StudentID]; !ok {
		return httperr.Validation("invalid_reference")
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	j.CreatedAt = s.stamp(j.ID)
	j.UpdatedAt = j.CreatedAt
	s.d.journals[j.ID] = *j
	return nil
}

func (r wellbeingRepo) GetJournal(_ context.Context, studentID, journalID uuid.UUID) (*models.Journal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.d.journals[journalID]
	if !ok || j.StudentID != studentID {
		return nil, httperr.NotFound("not_found")
	}
	return &j, nil
}

func (r wellbeingRepo) UpdateJournal(_ context.Context, j *models.Journal) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.d.journals[j.ID]
	if !ok || row.StudentID != j.StudentID {
		return httperr.NotFound("not_found")
	}
	row.Title, row.Content, row.Mood = j.Title, j.Content, j.Mood
	row.UpdatedAt = s.Now().UTC()
	s.d.journals[j.ID] = row
	*j = row
	return nil
}

func (r wellbeingRepo) DeleteJournal(_ context.Context, studentID, journalID uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.d.journals[journalID]
	if !ok || j.StudentID != studentID {
		return httperr.NotFound("not_found")
	}
	delete(s.d.journals, journalID)
	return nil
}

// -------- Moods --------

func (r wellbeingRepo) UpsertMood(_ context.Context, m *models.Mood) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	day := time.Time(m.Date)

	// unique (student_id, date)
	for id, row := range s.d.moods {
		if row.StudentID != m.StudentID || !time.Time(row.Date).Equal(day) {
			continue
		}
		row.MoodLevel, row.MoodEmoji, row.Note = m.MoodLevel, m.MoodEmoji, m.Note
		row.UpdatedAt = s.Now().UTC()
		s.d.moods[id] = row
		*m = row
		return false, nil
	}

	if _, ok := s.d.users[m.StudentID]; !ok {
		return false, httperr.Validation("invalid_reference")
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = s.stamp(m.ID)
	m.UpdatedAt = m.CreatedAt
	s.d.moods[m.ID] = *m
	return true, nil
}

func (r wellbeingRepo) RecentMoods(_ context.Context, studentID uuid.UUID, limit int) ([]models.Mood, error) {
	out := r.moods(studentID, func(models.Mood) bool { return true })
	sort.Slice(out, func(i, k int) bool {
		return time.Time(out[i].Date).After(time.Time(out[k].Date))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r wellbeingRepo) MoodsSince(_ context.Context, studentID uuid.UUID, from time.Time) ([]models.Mood, error) {
	out := r.moods(studentID, func(m models.Mood) bool {
		return !time.Time(m.Date).Before(from)
	})
	sort.Slice(out, func(i, k int) bool {
		return time.Time(out[i].Date).Before(time.Time(out[k].Date))
	})
	return out, nil
}

func (r wellbeingRepo) MoodOn(_ context.Context, studentID uuid.UUID, day time.Time) (*models.Mood, error) {
	out := r.moods(studentID, func(m models.Mood) bool {
		return time.Time(m.Date).Equal(day)
	})
	if len(out) == 0 {
		return nil, httperr.NotFound("not_found")
	}
	return &out[0], nil
}

func (r wellbeingRepo) moods(studentID uuid.UUID, keep func(models.Mood) bool) []models.Mood {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Mood
	for _, m := range r.s.d.moods {
		if m.StudentID == studentID && keep(m) {
			out = append(out, m)
		}
	}
	return out
}
