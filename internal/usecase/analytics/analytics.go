package analytics

import (
	"context"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/analytics"
	"github.com/campus-wellbeing/counsel-api/internal/domain/session"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
)

const unknownGroup = "Unknown"

// Breakdown is the per-severity session count of one group.
type Breakdown struct {
	Total    int64 `json:"total"`
	High     int64 `json:"high"`
	Moderate int64 `json:"moderate"`
	Low      int64 `json:"low"`
}

func (b *Breakdown) add(severity *string, n int64) {
	b.Total += n
	if severity == nil {
		return
	}
	switch session.Severity(*severity) {
	case session.SeverityHigh:
		b.High += n
	case session.SeverityModerate:
		b.Moderate += n
	case session.SeverityLow:
		b.Low += n
	}
}

type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// Grouped returns severity breakdowns keyed by the student attribute dim.
func (s *Service) Grouped(
	ctx context.Context,
	dim domain.Dimension,
) (map[string]*Breakdown, error) {

	if !dim.Valid() {
		return nil, httperr.Validation("invalid_request")
	}

	rows, err := s.repo.SeverityByStudent(ctx, dim)
	if err != nil {
		return nil, err
	}

	out := map[string]*Breakdown{}
	for _, r := range rows {
		key := r.Key
		if key == "" {
			key = unknownGroup
		}
		b, ok := out[key]
		if !ok {
			b = &Breakdown{}
			out[key] = b
		}
		b.add(r.Severity, r.Count)
	}
	return out, nil
}

func (s *Service) BySeverity(ctx context.Context) (*Breakdown, error) {
	rows, err := s.repo.SeverityTotals(ctx)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{}
	for _, r := range rows {
		b.add(r.Severity, r.Count)
	}
	return b, nil
}

func (s *Service) Volume(ctx context.Context) (map[string]int64, error) {
	rows, err := s.repo.SessionsPerMonth(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Month] += r.Count
	}
	return out, nil
}

func (s *Service) Overview(ctx context.Context) (*domain.Overview, error) {
	return s.repo.Overview(ctx)
}
