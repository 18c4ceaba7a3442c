package session

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/session"
)

// ReconcileActiveFlags recomputes every counsellor's is_active from the
// sessions table. It repairs flags left stale by a crash between a
// session write and the flag update.
type ReconcileActiveFlags struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewReconcileActiveFlags(
	repo domain.Repository,
	log *zap.Logger,
) *ReconcileActiveFlags {
	return &ReconcileActiveFlags{
		repo: repo,
		log:  log,
	}
}

func (uc *ReconcileActiveFlags) Execute(ctx context.Context) error {
	n, err := uc.repo.SyncAllActiveFlags(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		uc.log.Info("reconciled counsellor active flags", zap.Int64("changed", n))
	}
	return nil
}
