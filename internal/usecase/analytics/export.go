package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	domain "github.com/campus-wellbeing/counsel-api/internal/domain/analytics"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
)

// ObjectStore is the subset of blob storage the export needs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

type ExportOverview struct {
	svc   *Service
	store ObjectStore
	audit *audit.Dispatcher
	now   func() time.Time
}

// NewExportOverview accepts a nil store; exports then fail as unavailable.
func NewExportOverview(
	svc *Service,
	store ObjectStore,
	audit *audit.Dispatcher,
) *ExportOverview {
	return &ExportOverview{
		svc:   svc,
		store: store,
		audit: audit,
		now:   time.Now,
	}
}

type overviewSnapshot struct {
	GeneratedAt time.Time `json:"generatedAt"`
	*domain.Overview
}

// Execute writes the current overview as JSON and returns the object key.
func (uc *ExportOverview) Execute(
	ctx context.Context,
	actorID uuid.UUID,
) (string, error) {

	if uc.store == nil {
		return "", httperr.Unavailable("storage_unavailable")
	}

	ov, err := uc.svc.Overview(ctx)
	if err != nil {
		return "", err
	}

	now := uc.now().UTC()
	body, err := json.Marshal(overviewSnapshot{GeneratedAt: now, Overview: ov})
	if err != nil {
		return "", fmt.Errorf("marshal overview: %w", err)
	}

	key := "reports/overview/" + now.Format("20060102T150405Z") + ".json"
	if err := uc.store.Put(ctx, key, "application/json", body); err != nil {
		return "", fmt.Errorf("upload overview: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "overview_exported",
		Entity:   "report",
		Metadata: map[string]any{"key": key},
	})

	return key, nil
}
