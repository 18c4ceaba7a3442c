package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	ucsession "github.com/campus-wellbeing/counsel-api/internal/usecase/session"
)

// Scheduler runs the background maintenance jobs.
type Scheduler struct {
	reconcile *ucsession.ReconcileActiveFlags
	interval  time.Duration
	logger    *zap.Logger

	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewScheduler(
	reconcile *ucsession.ReconcileActiveFlags,
	interval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		reconcile: reconcile,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.runReconcileTask(ctx)
}

// Stop signals the task and waits for it to return.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runReconcileTask(ctx context.Context) {
	defer close(s.done)

	// first pass right away, a crash may have left flags behind
	s.reconcileFlags(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reconcileFlags(ctx)
		case <-s.stopChan:
			s.logger.Info("Active flag reconciler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Active flag reconciler cancelled")
			return
		}
	}
}

func (s *Scheduler) reconcileFlags(ctx context.Context) {
	if err := s.reconcile.Execute(ctx); err != nil {
		s.logger.Error("Failed to reconcile counsellor active flags", zap.Error(err))
	}
}
