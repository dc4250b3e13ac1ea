// Command autoremind-api serves the signup and run-control HTTP API: settings
// registration for the notification form, a manual run trigger, the last-run
// status, and Prometheus metrics.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/autoremind/autoremind/internal/dispatch"
	"github.com/autoremind/autoremind/internal/handler"
	"github.com/autoremind/autoremind/internal/repository"
	"github.com/autoremind/autoremind/internal/service"
	"github.com/autoremind/autoremind/internal/source"
	"github.com/autoremind/autoremind/pkg/cache"
	"github.com/autoremind/autoremind/pkg/config"
	"github.com/autoremind/autoremind/pkg/database"
	"github.com/autoremind/autoremind/pkg/logger"
	"github.com/autoremind/autoremind/pkg/metrics"
	corsmiddleware "github.com/autoremind/autoremind/pkg/middleware/cors"
	reqidmiddleware "github.com/autoremind/autoremind/pkg/middleware/requestid"
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	m := metrics.New()

	studentRepo := repository.NewStudentRepository(db, cfg.Sources.StudentsTable)
	resourceRepo := repository.NewResourceRepository(db, cfg.Sources.ResourcesTable)

	settingsSvc := service.NewSettingsService(studentRepo, logr)
	reminderSvc := service.NewReminderService(
		source.DeadlineCSV{Path: cfg.Sources.DeadlinesCSV},
		resourceRepo,
		studentRepo,
		logr,
		m,
	).WithReferenceDate(cfg.Run.ReferenceDate)

	var sink *dispatch.Dispatcher
	if !cfg.Run.DryRun {
		notifiers, err := dispatch.BuildNotifiers(cfg, logr)
		if err != nil {
			logr.Sugar().Fatalw("failed to build notifiers", "error", err)
		}
		sink = dispatch.NewDispatcher(notifiers, dispatch.Config{
			Workers:    4,
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
		}, logr, m)
		sink.Start(context.Background())
	}

	runState := cache.NewRunState(redisClient, cfg.Run.LockTTL)

	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	runHandler := handler.NewRunHandler(reminderSvc, nil, runState, logr)
	if sink != nil {
		runHandler = handler.NewRunHandler(reminderSvc, sink, runState, logr)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", m.Handler())

	api := r.Group(cfg.APIPrefix)
	{
		reminders := api.Group("/reminders")
		reminders.POST("/settings", settingsHandler.Register)
		reminders.POST("/run", runHandler.Trigger)
		reminders.GET("/status", runHandler.Status)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
