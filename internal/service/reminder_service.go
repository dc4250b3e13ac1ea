package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/catalog"
	"github.com/autoremind/autoremind/internal/channel"
	"github.com/autoremind/autoremind/internal/compose"
	"github.com/autoremind/autoremind/internal/engine"
	"github.com/autoremind/autoremind/internal/models"
	appErrors "github.com/autoremind/autoremind/pkg/errors"
	"github.com/autoremind/autoremind/pkg/metrics"
)

type deadlineSource interface {
	Load() ([]models.DeadlineRow, error)
}

type resourceSource interface {
	ListRows(ctx context.Context) ([]models.ResourceRow, error)
}

type studentSource interface {
	ListStudents(ctx context.Context) ([]models.StudentRecord, error)
}

// ReminderService runs the batch pipeline: build catalogs, evaluate every
// opted-in student, and produce reminder bundles. One run is single-threaded
// and holds no mutable state beyond its own catalogs, which are read-only
// once built.
type ReminderService struct {
	deadlines deadlineSource
	resources resourceSource
	students  studentSource
	logger    *zap.Logger
	metrics   *metrics.Metrics

	// now supplies the per-run reference instant; overridable for tests and
	// for manual backfill runs.
	now func() time.Time
}

// NewReminderService wires the pipeline sources together.
func NewReminderService(
	deadlines deadlineSource,
	resources resourceSource,
	students studentSource,
	logger *zap.Logger,
	m *metrics.Metrics,
) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		deadlines: deadlines,
		resources: resources,
		students:  students,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// WithReferenceDate pins "today" to a fixed date (YYYY-MM-DD). Invalid or
// empty input leaves the wall clock in place.
func (s *ReminderService) WithReferenceDate(date string) *ReminderService {
	if date == "" {
		return s
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		s.logger.Warn("ignoring invalid reference date", zap.String("date", date))
		return s
	}
	s.now = func() time.Time { return t }
	return s
}

// Run executes one reminder run. A failed source load aborts the run with
// zero bundles; a completed run always yields a (possibly empty) bundle list.
func (s *ReminderService) Run(ctx context.Context) ([]models.ReminderBundle, models.RunSummary, error) {
	// Captured exactly once so every comparison in this run shares one "now".
	today := s.now()
	summary := models.RunSummary{
		RunID:         uuid.NewString(),
		StartedAt:     time.Now().UTC(),
		ReferenceDate: today.Format("2006-01-02"),
	}

	deadlineRows, err := s.deadlines.Load()
	if err != nil {
		return s.fail(summary, "deadline source", err)
	}
	resourceRows, err := s.resources.ListRows(ctx)
	if err != nil {
		return s.fail(summary, "resource source", err)
	}
	students, err := s.students.ListStudents(ctx)
	if err != nil {
		return s.fail(summary, "student source", err)
	}

	deadlineCatalog := catalog.LoadDeadlines(deadlineRows, s.logger)
	resourceCatalog := catalog.BuildResources(resourceRows, s.logger)
	eng := engine.New(deadlineCatalog, resourceCatalog, s.logger)
	resourceCatalog.AttachDeadlines(eng.FindDeadline)

	s.logger.Info("catalogs built",
		zap.String("run_id", summary.RunID),
		zap.Int("deadline_scopes", deadlineCatalog.Len()),
		zap.Int("resource_scopes", resourceCatalog.Len()),
		zap.Int("students", len(students)),
		zap.String("today", summary.ReferenceDate))

	var bundles []models.ReminderBundle
	for _, student := range students {
		summary.StudentsSeen++
		if !student.OptIn {
			continue
		}
		summary.StudentsOptedIn++
		if s.metrics != nil {
			s.metrics.StudentsEvaluated.Inc()
		}

		var eligible []models.EligibilityResult
		for _, code := range student.AssignmentCodes() {
			if result := eng.Evaluate(student, code, today); result != nil {
				eligible = append(eligible, *result)
			}
		}
		if len(eligible) == 0 {
			continue
		}
		summary.EligibleEntries += len(eligible)
		if s.metrics != nil {
			s.metrics.EligibleResults.Add(float64(len(eligible)))
			s.metrics.BundlesBuilt.Inc()
		}

		bundles = append(bundles, models.ReminderBundle{
			Student: models.StudentIdentity{
				ID:   student.ID,
				Name: student.FullName(),
			},
			Channels:    channel.Select(student),
			Assignments: eligible,
			Message:     compose.Message(student, eligible),
		})
	}

	summary.BundlesBuilt = len(bundles)
	if s.metrics != nil {
		s.metrics.RunsCompleted.Inc()
	}
	s.logger.Info("run complete",
		zap.String("run_id", summary.RunID),
		zap.Int("students_seen", summary.StudentsSeen),
		zap.Int("opted_in", summary.StudentsOptedIn),
		zap.Int("bundles", summary.BundlesBuilt))

	return bundles, summary, nil
}

func (s *ReminderService) fail(summary models.RunSummary, stage string, err error) ([]models.ReminderBundle, models.RunSummary, error) {
	if s.metrics != nil {
		s.metrics.RunsFailed.Inc()
	}
	appErr := appErrors.FromError(err)
	summary.FailureReason = stage + ": " + appErr.Message
	s.logger.Error("run aborted",
		zap.String("run_id", summary.RunID),
		zap.String("stage", stage),
		zap.Error(err))
	return nil, summary, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code,
		appErrors.ErrSourceUnavailable.Status, summary.FailureReason)
}
