package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/autoremind/autoremind/internal/models"
)

const (
	runLockKey    = "autoremind:run:lock"
	lastRunKey    = "autoremind:run:last"
	lastRunExpiry = 7 * 24 * time.Hour
)

// RunState guards against overlapping reminder runs and keeps the last run
// summary for the status endpoint. Concurrent runs are not a supported
// scenario; the lock simply refuses the second one.
type RunState struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRunState wraps a Redis client.
func NewRunState(client *redis.Client, lockTTL time.Duration) *RunState {
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}
	return &RunState{client: client, ttl: lockTTL}
}

// AcquireLock claims the run lock. Returns false when another run holds it.
func (s *RunState) AcquireLock(ctx context.Context, runID string) (bool, error) {
	return s.client.SetNX(ctx, runLockKey, runID, s.ttl).Result()
}

// ReleaseLock drops the run lock.
func (s *RunState) ReleaseLock(ctx context.Context) error {
	return s.client.Del(ctx, runLockKey).Err()
}

// SaveSummary stores the outcome of the latest run.
func (s *RunState) SaveSummary(ctx context.Context, summary models.RunSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, lastRunKey, payload, lastRunExpiry).Err()
}

// LastSummary loads the most recent run summary; nil when no run has been
// recorded yet.
func (s *RunState) LastSummary(ctx context.Context) (*models.RunSummary, error) {
	payload, err := s.client.Get(ctx, lastRunKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary models.RunSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
