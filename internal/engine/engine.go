package engine

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/catalog"
	"github.com/autoremind/autoremind/internal/models"
)

// Engine resolves canonical deadlines and decides, per student and
// assignment, whether a reminder should fire on the current run.
type Engine struct {
	deadlines *catalog.DeadlineCatalog
	resources *catalog.ResourceCatalog
	logger    *zap.Logger
}

// New builds an engine over immutable per-run catalogs.
func New(deadlines *catalog.DeadlineCatalog, resources *catalog.ResourceCatalog, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{deadlines: deadlines, resources: resources, logger: logger}
}

// FindDeadline resolves the canonical deadline for (scope, name, code).
// Search order: the given scope then the default "" scope; within each, exact
// code before base alias, then exact name, then a "Project {N}" substring
// scan of names using the first integer found in the code. The first hit
// wins; no hit means the assignment is simply excluded, not an error.
func (e *Engine) FindDeadline(courseScope, assignmentName, assignmentCode string) (time.Time, bool) {
	scopes := e.deadlines.ScopeOrder(strings.TrimSpace(courseScope))
	if len(scopes) == 0 {
		return time.Time{}, false
	}

	if assignmentCode != "" {
		searchCodes := []string{assignmentCode}
		if base := catalog.BaseCode(assignmentCode); base != "" && base != assignmentCode {
			searchCodes = append(searchCodes, base)
		}
		for _, course := range scopes {
			for _, code := range searchCodes {
				if due, ok := course.ByCode[code]; ok {
					return due, true
				}
			}
		}
	}

	if assignmentName != "" {
		for _, course := range scopes {
			if due, ok := course.ByName[assignmentName]; ok {
				return due, true
			}
		}
	}

	number, ok := catalog.AssignmentNumber(assignmentCode)
	if !ok {
		return time.Time{}, false
	}
	phrase := fmt.Sprintf("Project %d", number)
	for _, course := range scopes {
		for name, due := range course.ByName {
			if strings.Contains(name, phrase) {
				return due, true
			}
		}
	}

	return time.Time{}, false
}

// NotificationWindow returns the student's window in days for an assignment
// code. The single notif_freq_days column wins when present (floored at 0);
// otherwise the legacy ordered list is indexed by the code's first integer
// (ordinal 1 when none), clamped to the list bounds. An empty list means 0.
func NotificationWindow(student models.StudentRecord, assignmentCode string) int {
	if student.NotifFreqDays != nil {
		return max(*student.NotifFreqDays, 0)
	}
	if len(student.LegacyFreqs) == 0 {
		return 0
	}
	ordinal, ok := catalog.AssignmentNumber(assignmentCode)
	if !ok {
		ordinal = 1
	}
	position := ordinal - 1
	if position < 0 {
		position = 0
	}
	if position > len(student.LegacyFreqs)-1 {
		position = len(student.LegacyFreqs) - 1
	}
	return max(student.LegacyFreqs[position], 0)
}

// DaysBetween returns the calendar-day difference to - from. Only the date
// component participates; time of day is ignored.
func DaysBetween(from, to time.Time) int {
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDate.Sub(fromDate).Hours() / 24)
}

// Evaluate decides whether one assignment of one student is eligible for a
// reminder on this run. today is the single process-wide reference instant
// captured once per run. A nil result means skip (no entry, no deadline, past
// due, or outside the exact notification window) - never an error.
func (e *Engine) Evaluate(student models.StudentRecord, assignmentCode string, today time.Time) *models.EligibilityResult {
	entry := e.resources.Lookup(student.CourseScope, assignmentCode)
	if entry == nil {
		e.logger.Debug("no assignment data found",
			zap.String("student", student.ID),
			zap.String("code", assignmentCode),
			zap.String("scope", student.CourseScope))
		return nil
	}
	if entry.Deadline == nil {
		e.logger.Debug("skipping assignment: no deadline available",
			zap.String("student", student.ID),
			zap.String("code", assignmentCode))
		return nil
	}

	offset := student.Offsets[assignmentCode]
	personal := entry.Deadline.AddDate(0, 0, offset)
	window := NotificationWindow(student, assignmentCode)
	delta := DaysBetween(today, personal)

	e.logger.Debug("evaluating assignment",
		zap.String("student", student.ID),
		zap.String("code", assignmentCode),
		zap.Timep("base", entry.Deadline),
		zap.Int("offset", offset),
		zap.Int("window", window),
		zap.Int("delta", delta))

	if delta < 0 {
		return nil
	}
	// Send only on the exact day the delta equals the window; a student is
	// notified once per window, never before or after.
	if delta != window {
		return nil
	}

	return &models.EligibilityResult{
		AssignmentCode:         assignmentCode,
		AssignmentName:         entry.AssignmentName,
		BaseDeadline:           entry.Deadline,
		PersonalDeadline:       personal,
		OffsetDays:             offset,
		NotificationWindowDays: window,
		Resources:              entry.Resources,
	}
}
