// Command autoremind executes one reminder run: load the record sources,
// evaluate every opted-in student, export the message-request files, and
// deliver on the enabled channels. Intended to run once per day from cron.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/dispatch"
	"github.com/autoremind/autoremind/internal/repository"
	"github.com/autoremind/autoremind/internal/service"
	"github.com/autoremind/autoremind/internal/source"
	"github.com/autoremind/autoremind/pkg/cache"
	"github.com/autoremind/autoremind/pkg/config"
	"github.com/autoremind/autoremind/pkg/database"
	"github.com/autoremind/autoremind/pkg/logger"
	"github.com/autoremind/autoremind/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("reminder run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	runState := cache.NewRunState(redisClient, cfg.Run.LockTTL)
	lockID := uuid.NewString()
	acquired, err := runState.AcquireLock(ctx, lockID)
	if err != nil {
		return err
	}
	if !acquired {
		logr.Warn("another reminder run holds the lock, exiting")
		return nil
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := runState.ReleaseLock(releaseCtx); err != nil {
			logr.Warn("failed to release run lock", zap.Error(err))
		}
	}()

	m := metrics.New()
	svc := service.NewReminderService(
		source.DeadlineCSV{Path: cfg.Sources.DeadlinesCSV},
		repository.NewResourceRepository(db, cfg.Sources.ResourcesTable),
		repository.NewStudentRepository(db, cfg.Sources.StudentsTable),
		logr,
		m,
	).WithReferenceDate(cfg.Run.ReferenceDate)

	bundles, summary, runErr := svc.Run(ctx)
	if err := runState.SaveSummary(ctx, summary); err != nil {
		logr.Warn("failed to persist run summary",
			zap.String("run_id", summary.RunID), zap.Error(err))
	}
	if runErr != nil {
		return runErr
	}

	if cfg.Export.Enabled {
		if _, err := dispatch.ExportMessageRequests(cfg.Export.Dir, bundles, logr); err != nil {
			logr.Error("message-request export failed", zap.Error(err))
		}
	}

	if cfg.Run.DryRun {
		logr.Info("dry run: skipping delivery",
			zap.String("run_id", summary.RunID),
			zap.Int("bundles", len(bundles)))
		return nil
	}

	notifiers, err := dispatch.BuildNotifiers(cfg, logr)
	if err != nil {
		return err
	}
	dispatcher := dispatch.NewDispatcher(notifiers, dispatch.Config{
		Workers:    4,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}, logr, m)

	dispatcher.Start(ctx)
	dispatcher.Dispatch(bundles)
	dispatcher.Drain()

	logr.Info("reminder run finished",
		zap.String("run_id", summary.RunID),
		zap.Int("bundles", summary.BundlesBuilt),
		zap.Int("eligible", summary.EligibleEntries))
	return nil
}
