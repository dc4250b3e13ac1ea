package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDrainWaitsForAllJobs(t *testing.T) {
	var handled int64
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		atomic.AddInt64(&handled, 1)
		return nil
	}, QueueConfig{Workers: 2})

	q.Start(context.Background())
	for i := 0; i < 20; i++ {
		require.NoError(t, q.Enqueue(Job{ID: fmt.Sprintf("job-%d", i), Type: "noop"}))
	}
	q.Drain()

	assert.Equal(t, int64(20), atomic.LoadInt64(&handled))
}

func TestQueueRetriesUntilExhausted(t *testing.T) {
	var attempts int64
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		atomic.AddInt64(&attempts, 1)
		return fmt.Errorf("always fails")
	}, QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: time.Millisecond})

	q.Start(context.Background())
	require.NoError(t, q.Enqueue(Job{ID: "job-1", Type: "noop"}))
	q.Drain()

	// Initial attempt plus two retries.
	assert.Equal(t, int64(3), atomic.LoadInt64(&attempts))
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job{ID: "early"}))
}
