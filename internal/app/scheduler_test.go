package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/models"
	"github.com/campus-wellbeing/counsel-api/internal/testutil/memstore"
	ucsession "github.com/campus-wellbeing/counsel-api/internal/usecase/session"
)

func TestSchedulerReconcilesOnStart(t *testing.T) {
	store := memstore.New()
	c := store.AddUser(models.User{Email: "c@uni.edu", Role: models.RoleCounsellor, IsActive: true})

	s := NewScheduler(
		ucsession.NewReconcileActiveFlags(store.Sessions(), zap.NewNop()),
		time.Hour,
		zap.NewNop(),
	)
	s.Start(context.Background())

	require.Eventually(t, func() bool {
		u, _ := store.User(c.ID)
		return !u.IsActive
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	store := memstore.New()
	s := NewScheduler(
		ucsession.NewReconcileActiveFlags(store.Sessions(), zap.NewNop()),
		time.Hour,
		zap.NewNop(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		assert.Fail(t, "scheduler did not stop after cancel")
	}
}
