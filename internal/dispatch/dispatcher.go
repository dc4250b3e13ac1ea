package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/models"
	"github.com/autoremind/autoremind/pkg/jobs"
	"github.com/autoremind/autoremind/pkg/metrics"
)

// Notifier delivers one composed message to one target on a single channel.
// Implementations are thin I/O adapters; failures are per-target and never
// abort the batch.
type Notifier interface {
	Channel() string
	Send(ctx context.Context, target, message string) error
}

// Delivery is the payload carried through the job queue.
type Delivery struct {
	StudentID string
	Target    string
	Message   string
}

// Dispatcher fans reminder bundles out to channel adapters through a retrying
// worker queue.
type Dispatcher struct {
	notifiers map[string]Notifier
	queue     *jobs.Queue
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// Config tunes the delivery queue.
type Config struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// NewDispatcher builds a dispatcher over the given adapters. Channels with no
// registered adapter are counted as skipped, not failed.
func NewDispatcher(notifiers []Notifier, cfg Config, logger *zap.Logger, m *metrics.Metrics) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		notifiers: map[string]Notifier{},
		logger:    logger,
		metrics:   m,
	}
	for _, n := range notifiers {
		if n != nil {
			d.notifiers[n.Channel()] = n
		}
	}
	d.queue = jobs.NewQueue("deliveries", d.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return d
}

// Start brings the delivery workers up.
func (d *Dispatcher) Start(ctx context.Context) {
	d.queue.Start(ctx)
}

// Dispatch enqueues every (channel, target) pair of every bundle. Sentinel
// "none" channels are logged and skipped.
func (d *Dispatcher) Dispatch(bundles []models.ReminderBundle) {
	for _, bundle := range bundles {
		for _, ch := range bundle.Channels {
			if ch.Type == models.ChannelNone {
				d.logger.Info("student has no opted-in channel",
					zap.String("student", bundle.Student.ID))
				continue
			}
			if _, ok := d.notifiers[ch.Type]; !ok {
				if d.metrics != nil {
					d.metrics.DeliveriesSkipped.WithLabelValues(ch.Type).Inc()
				}
				d.logger.Debug("channel disabled, skipping delivery",
					zap.String("channel", ch.Type),
					zap.String("student", bundle.Student.ID))
				continue
			}
			err := d.queue.Enqueue(jobs.Job{
				ID:   uuid.NewString(),
				Type: ch.Type,
				Payload: Delivery{
					StudentID: bundle.Student.ID,
					Target:    ch.Target,
					Message:   bundle.Message,
				},
			})
			if err != nil {
				d.logger.Error("failed to enqueue delivery",
					zap.String("channel", ch.Type),
					zap.String("student", bundle.Student.ID),
					zap.Error(err))
			}
		}
	}
}

// Drain waits for all enqueued deliveries to finish and stops the workers.
func (d *Dispatcher) Drain() {
	d.queue.Drain()
}

func (d *Dispatcher) handle(ctx context.Context, job jobs.Job) error {
	delivery, ok := job.Payload.(Delivery)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	notifier, ok := d.notifiers[job.Type]
	if !ok {
		return fmt.Errorf("no notifier for channel %s", job.Type)
	}

	if err := notifier.Send(ctx, delivery.Target, delivery.Message); err != nil {
		if d.metrics != nil {
			d.metrics.DeliveriesFailed.WithLabelValues(job.Type).Inc()
		}
		return err
	}

	if d.metrics != nil {
		d.metrics.DeliveriesSent.WithLabelValues(job.Type).Inc()
	}
	d.logger.Info("delivery sent",
		zap.String("channel", job.Type),
		zap.String("student", delivery.StudentID))
	return nil
}
