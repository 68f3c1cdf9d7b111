package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/content-gallery/internal/model"
	"github.com/d60-Lab/content-gallery/pkg/logger"
)

const statsKeyPrefix = "content:stats"

type statDelta struct {
	status   string
	category string
	delta    int64
}

// StatsReplicator keeps per-status/per-category counters in redis,
// updated asynchronously after intake and moderation decisions. The
// counters trail the store by however long the queue is backed up, so
// the stats view is eventually consistent with the content table.
type StatsReplicator struct {
	cache *redis.Client
	ch    chan statDelta
}

func NewStatsReplicator(cache *redis.Client, queueSize int) *StatsReplicator {
	if queueSize <= 0 {
		queueSize = 4096
	}
	return &StatsReplicator{cache: cache, ch: make(chan statDelta, queueSize)}
}

// Start launches the workers and returns a stop function that lets the
// queue drain for a short grace period.
func (r *StatsReplicator) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 2
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case d := <-r.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					r.apply(ctx, d)
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(r.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

func (r *StatsReplicator) apply(ctx context.Context, d statDelta) {
	if err := r.cache.IncrBy(ctx, statsKey(d.status, ""), d.delta).Err(); err != nil {
		logger.Warn("stats incr failed", zap.String("status", d.status), zap.Error(err))
		return
	}
	if d.category != "" {
		if err := r.cache.IncrBy(ctx, statsKey(d.status, d.category), d.delta).Err(); err != nil {
			logger.Warn("stats incr failed",
				zap.String("status", d.status), zap.String("category", d.category), zap.Error(err))
		}
	}
}

// RecordIntake bumps the pending counters for a fresh submission.
func (r *StatsReplicator) RecordIntake(category string) {
	r.enqueue(statDelta{status: model.StatusPending, category: category, delta: 1})
}

// RecordDecision moves one record's worth of count from its prior status
// bucket to the decided one. A repeated identical decision moves nothing.
func (r *StatsReplicator) RecordDecision(from, to, category string) {
	if from == to {
		return
	}
	r.enqueue(statDelta{status: from, category: category, delta: -1})
	r.enqueue(statDelta{status: to, category: category, delta: 1})
}

// RecordDelete drops the deleted record from its status bucket.
func (r *StatsReplicator) RecordDelete(status, category string) {
	r.enqueue(statDelta{status: status, category: category, delta: -1})
}

func (r *StatsReplicator) enqueue(d statDelta) {
	select {
	case r.ch <- d:
	default:
		logger.Warn("stats queue full, drop delta",
			zap.String("status", d.status), zap.String("category", d.category), zap.Int64("delta", d.delta))
	}
}

// QueueLen returns the current queue length (sampled).
func (r *StatsReplicator) QueueLen() int { return len(r.ch) }

// Snapshot reads the status counters. Missing keys read as zero.
func (r *StatsReplicator) Snapshot(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, 3)
	for _, status := range []string{model.StatusPending, model.StatusApproved, model.StatusRejected} {
		n, err := r.cache.Get(ctx, statsKey(status, "")).Int64()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("read stats counter: %w", err)
		}
		out[status] = n
	}
	return out, nil
}

func statsKey(status, category string) string {
	if category == "" {
		return statsKeyPrefix + ":" + status
	}
	return statsKeyPrefix + ":" + status + ":" + category
}
