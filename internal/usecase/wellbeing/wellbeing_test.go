package wellbeing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
	"github.com/campus-wellbeing/counsel-api/internal/testutil/memstore"
)

// 23:30 UTC on 14 March 2026 is already the 15th in Kolkata.
var lateEvening = time.Date(2026, time.March, 14, 23, 30, 0, 0, time.UTC)

func newMoods(t *testing.T, store *memstore.Store) *Moods {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	uc := NewMoods(store.Wellbeing(), loc)
	uc.now = func() time.Time { return lateEvening }
	return uc
}

func addStudent(store *memstore.Store) models.User {
	return store.AddUser(models.User{Email: uuid.NewString() + "@uni.edu", Role: models.RoleStudent})
}

func day(m *models.Mood) string {
	return time.Time(m.Date).Format("2006-01-02")
}

func TestRecordMoodOneRowPerDay(t *testing.T) {
	store := memstore.New()
	moods := newMoods(t, store)
	student := addStudent(store)
	ctx := context.Background()

	first, created, err := moods.Record(ctx, student.ID, MoodInput{Date: "2026-03-10", MoodLevel: 2, Note: "low"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := moods.Record(ctx, student.ID, MoodInput{Date: "2026-03-10", MoodLevel: 5, MoodEmoji: ":)"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.MoodLevel)
	assert.Equal(t, ":)", second.MoodEmoji)
	assert.Equal(t, "", second.Note)

	history, err := moods.History(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 5, history[0].MoodLevel)

	// another student's entry for the same day is its own row
	_, created, err = moods.Record(ctx, addStudent(store).ID, MoodInput{Date: "2026-03-10", MoodLevel: 3})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestRecordMoodConcurrentFirstEntries(t *testing.T) {
	store := memstore.New()
	moods := newMoods(t, store)
	student := addStudent(store)

	const n = 8
	created := make([]bool, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, created[i], errs[i] = moods.Record(context.Background(), student.ID, MoodInput{
				Date: "2026-03-11", MoodLevel: 1 + i%5,
			})
		}(i)
	}
	wg.Wait()

	var inserts int
	for i := range errs {
		require.NoError(t, errs[i])
		if created[i] {
			inserts++
		}
	}
	assert.Equal(t, 1, inserts)

	history, err := moods.History(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRecordMoodDefaultsToCampusToday(t *testing.T) {
	store := memstore.New()
	moods := newMoods(t, store)
	student := addStudent(store)
	ctx := context.Background()

	today, err := moods.Today(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, today)

	m, _, err := moods.Record(ctx, student.ID, MoodInput{MoodLevel: 4})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", day(m))

	today, err = moods.Today(ctx, student.ID)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, m.ID, today.ID)
}

func TestRecordMoodRejections(t *testing.T) {
	store := memstore.New()
	moods := newMoods(t, store)
	student := addStudent(store)

	tests := []struct {
		name string
		in   MoodInput
		code string
	}{
		{"level too low", MoodInput{MoodLevel: 0}, "invalid_mood"},
		{"level too high", MoodInput{MoodLevel: 6}, "invalid_mood"},
		{"bad date", MoodInput{Date: "15/03/2026", MoodLevel: 3}, "invalid_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := moods.Record(context.Background(), student.ID, tt.in)
			require.Error(t, err)
			assert.True(t, httperr.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestMoodMonthAndHistoryOrdering(t *testing.T) {
	store := memstore.New()
	moods := newMoods(t, store)
	student := addStudent(store)
	ctx := context.Background()

	for _, d := range []string{"2026-03-03", "2026-02-27", "2026-03-01", "2026-03-09"} {
		_, _, err := moods.Record(ctx, student.ID, MoodInput{Date: d, MoodLevel: 3})
		require.NoError(t, err)
	}

	month, err := moods.Month(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, month, 3)
	assert.Equal(t, "2026-03-01", day(&month[0]))
	assert.Equal(t, "2026-03-09", day(&month[2]))

	history, err := moods.History(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "2026-03-09", day(&history[0]))
	assert.Equal(t, "2026-02-27", day(&history[3]))
}

func TestJournalsOwnership(t *testing.T) {
	store := memstore.New()
	journals := NewJournals(store.Wellbeing())
	owner := addStudent(store)
	other := addStudent(store)
	ctx := context.Background()

	j, err := journals.Create(ctx, owner.ID, JournalInput{Title: "  First  ", Content: "hello", Mood: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "First", j.Title)

	_, err = journals.Update(ctx, other.ID, j.ID, JournalInput{Content: "taken"})
	assert.True(t, httperr.Is(err, "journal_not_found"), "got %v", err)

	err = journals.Delete(ctx, other.ID, j.ID)
	assert.True(t, httperr.Is(err, "journal_not_found"), "got %v", err)

	list, err := journals.List(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	updated, err := journals.Update(ctx, owner.ID, j.ID, JournalInput{Title: "Edited", Content: "again"})
	require.NoError(t, err)
	assert.Equal(t, "again", updated.Content)

	require.NoError(t, journals.Delete(ctx, owner.ID, j.ID))
	err = journals.Delete(ctx, owner.ID, j.ID)
	assert.True(t, httperr.Is(err, "journal_not_found"))
}

func TestJournalsNewestFirstAndContentRequired(t *testing.T) {
	store := memstore.New()
	journals := NewJournals(store.Wellbeing())
	student := addStudent(store)
	ctx := context.Background()

	_, err := journals.Create(ctx, student.ID, JournalInput{Content: "   "})
	assert.True(t, httperr.Is(err, "content_required"))

	older, err := journals.Create(ctx, student.ID, JournalInput{Content: "one"})
	require.NoError(t, err)
	newer, err := journals.Create(ctx, student.ID, JournalInput{Content: "two"})
	require.NoError(t, err)

	list, err := journals.List(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}
