package wellbeing

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/wellbeing"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type JournalInput struct {
	Title   string
	Content string
	Mood    string
}

func (in JournalInput) validate() error {
	if strings.TrimSpace(in.Content) == "" {
		return httperr.Validation("content_required")
	}
	return nil
}

// Journals manages a student's private journal entries.
type Journals struct {
	repo domain.Repository
}

func NewJournals(repo domain.Repository) *Journals {
	return &Journals{repo: repo}
}

func (uc *Journals) List(ctx context.Context, studentID uuid.UUID) ([]models.Journal, error) {
	return uc.repo.ListJournals(ctx, studentID)
}

func (uc *Journals) Create(
	ctx context.Context,
	studentID uuid.UUID,
	in JournalInput,
) (*models.Journal, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	j := &models.Journal{
		StudentID: studentID,
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Mood:      in.Mood,
	}
	if err := uc.repo.CreateJournal(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (uc *Journals) Update(
	ctx context.Context,
	studentID uuid.UUID,
	journalID uuid.UUID,
	in JournalInput,
) (*models.Journal, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	j, err := uc.repo.GetJournal(ctx, studentID, journalID)
	if err != nil {
		return nil, journalErr(err)
	}

	j.Title = strings.TrimSpace(in.Title)
	j.Content = in.Content
	j.Mood = in.Mood

	if err := uc.repo.UpdateJournal(ctx, j); err != nil {
		return nil, journalErr(err)
	}
	return j, nil
}

func (uc *Journals) Delete(
	ctx context.Context,
	studentID uuid.UUID,
	journalID uuid.UUID,
) error {
	return journalErr(uc.repo.DeleteJournal(ctx, studentID, journalID))
}

func journalErr(err error) error {
	if httperr.IsKind(err, httperr.KindNotFound) {
		return httperr.NotFound("journal_not_found")
	}
	return err
}
