package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/models"
	appErrors "github.com/autoremind/autoremind/pkg/errors"
	"github.com/autoremind/autoremind/pkg/response"
)

type reminderRunner interface {
	Run(ctx context.Context) ([]models.ReminderBundle, models.RunSummary, error)
}

type bundleSink interface {
	Dispatch(bundles []models.ReminderBundle)
}

type runStateStore interface {
	AcquireLock(ctx context.Context, runID string) (bool, error)
	ReleaseLock(ctx context.Context) error
	SaveSummary(ctx context.Context, summary models.RunSummary) error
	LastSummary(ctx context.Context) (*models.RunSummary, error)
}

// RunHandler triggers reminder runs and reports the last run's outcome. The
// Redis lock serialises runs; a second trigger while one is in flight gets a
// 409 instead of a duplicate send.
type RunHandler struct {
	runner reminderRunner
	sink   bundleSink
	state  runStateStore
	logger *zap.Logger
}

// NewRunHandler builds a new handler. sink may be nil for dry deployments
// that only want the run summary.
func NewRunHandler(runner reminderRunner, sink bundleSink, state runStateStore, logger *zap.Logger) *RunHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunHandler{runner: runner, sink: sink, state: state, logger: logger}
}

// Trigger executes one reminder run synchronously and returns its summary.
func (h *RunHandler) Trigger(c *gin.Context) {
	ctx := c.Request.Context()

	lockID := uuid.NewString()
	acquired, err := h.state.AcquireLock(ctx, lockID)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code,
			appErrors.ErrInternal.Status, "could not acquire run lock"))
		return
	}
	if !acquired {
		response.Error(c, appErrors.ErrRunInProgress)
		return
	}
	defer func() {
		if err := h.state.ReleaseLock(context.Background()); err != nil {
			h.logger.Warn("failed to release run lock", zap.Error(err))
		}
	}()

	bundles, summary, runErr := h.runner.Run(ctx)
	if err := h.state.SaveSummary(ctx, summary); err != nil {
		h.logger.Warn("failed to persist run summary",
			zap.String("run_id", summary.RunID), zap.Error(err))
	}
	if runErr != nil {
		response.Error(c, runErr)
		return
	}

	if h.sink != nil {
		h.sink.Dispatch(bundles)
	}
	response.JSON(c, http.StatusOK, summary)
}

// Status reports the most recent run summary, or 404 before the first run.
func (h *RunHandler) Status(c *gin.Context) {
	summary, err := h.state.LastSummary(c.Request.Context())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code,
			appErrors.ErrInternal.Status, "could not load run status"))
		return
	}
	if summary == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no reminder run recorded yet"))
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
