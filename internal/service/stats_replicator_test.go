package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/content-gallery/internal/model"
)

func setupReplicator(t *testing.T) (*StatsReplicator, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rep := NewStatsReplicator(cache, 64)
	stop := rep.Start(1)
	return rep, func() { _ = stop(context.Background()) }
}

func TestStatsReplicatorCountersConverge(t *testing.T) {
	rep, stop := setupReplicator(t)
	defer stop()
	ctx := context.Background()

	rep.RecordIntake(model.CategoryGraphics)
	rep.RecordIntake(model.CategoryVideos)
	rep.RecordDecision(model.StatusPending, model.StatusApproved, model.CategoryGraphics)

	// counters are applied asynchronously; poll until they land
	require.Eventually(t, func() bool {
		snap, err := rep.Snapshot(ctx)
		if err != nil {
			return false
		}
		return snap[model.StatusPending] == 1 && snap[model.StatusApproved] == 1
	}, 2*time.Second, 10*time.Millisecond)

	snap, err := rep.Snapshot(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, snap[model.StatusPending])
	require.EqualValues(t, 1, snap[model.StatusApproved])
	require.EqualValues(t, 0, snap[model.StatusRejected])
}

func TestStatsReplicatorIdenticalDecisionMovesNothing(t *testing.T) {
	rep, stop := setupReplicator(t)
	defer stop()
	ctx := context.Background()

	rep.RecordIntake(model.CategoryThreads)
	rep.RecordDecision(model.StatusPending, model.StatusApproved, model.CategoryThreads)
	// a repeated identical decision is a no-op for the counters
	rep.RecordDecision(model.StatusApproved, model.StatusApproved, model.CategoryThreads)

	require.Eventually(t, func() bool {
		snap, err := rep.Snapshot(ctx)
		if err != nil {
			return false
		}
		return snap[model.StatusApproved] == 1 && snap[model.StatusPending] == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStatsReplicatorDelete(t *testing.T) {
	rep, stop := setupReplicator(t)
	defer stop()
	ctx := context.Background()

	rep.RecordIntake(model.CategoryGraphics)
	rep.RecordDelete(model.StatusPending, model.CategoryGraphics)

	require.Eventually(t, func() bool {
		snap, err := rep.Snapshot(ctx)
		if err != nil {
			return false
		}
		return snap[model.StatusPending] == 0
	}, 2*time.Second, 10*time.Millisecond)
}
