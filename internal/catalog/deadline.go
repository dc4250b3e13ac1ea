package catalog

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/models"
)

// dueLayouts are the accepted due-timestamp shapes, tried in order. They
// mirror the ISO-8601-like forms the deadline sheet has carried over time.
var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// CourseDeadlines holds the canonical deadlines for one course scope, keyed
// both by assignment code and by assignment name.
type CourseDeadlines struct {
	ByCode map[string]time.Time
	ByName map[string]time.Time
}

// DeadlineCatalog maps course scope ("" = default/global) to that scope's
// deadlines. Rebuilt fully every run; read-only after construction.
type DeadlineCatalog struct {
	scopes map[string]*CourseDeadlines
}

// ParseDue parses a due timestamp string. The second return value is false
// when the value is blank or matches no accepted layout.
func ParseDue(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dueLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LoadDeadlines folds deadline rows into a catalog. A row with an unparsable
// or empty due value is dropped. Later rows overwrite earlier ones for the
// same (scope, key), so the source's natural order decides ties.
func LoadDeadlines(rows []models.DeadlineRow, logger *zap.Logger) *DeadlineCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := &DeadlineCatalog{scopes: map[string]*CourseDeadlines{}}

	for _, row := range rows {
		due, ok := ParseDue(row.Due)
		if !ok {
			logger.Debug("dropping deadline row with unparsable due",
				zap.String("code", row.AssignmentCode),
				zap.String("name", row.AssignmentName),
				zap.String("due", row.Due))
			continue
		}

		scope := strings.TrimSpace(row.CourseScope)
		course, ok := catalog.scopes[scope]
		if !ok {
			course = &CourseDeadlines{
				ByCode: map[string]time.Time{},
				ByName: map[string]time.Time{},
			}
			catalog.scopes[scope] = course
		}

		code := strings.TrimSpace(row.AssignmentCode)
		name := strings.TrimSpace(row.AssignmentName)
		if code != "" {
			course.ByCode[code] = due
		}
		if name != "" {
			course.ByName[name] = due
		}
		logger.Debug("loaded deadline",
			zap.String("scope", scope),
			zap.String("code", code),
			zap.String("name", name),
			zap.Time("due", due))
	}

	return catalog
}

// Scope returns the deadlines for one course scope, or nil when the scope has
// no records.
func (c *DeadlineCatalog) Scope(scope string) *CourseDeadlines {
	if c == nil {
		return nil
	}
	return c.scopes[scope]
}

// ScopeOrder returns the course-scope maps to consult for a lookup: the
// student's own scope first, then the default "" scope. The order is fixed
// and never reversed.
func (c *DeadlineCatalog) ScopeOrder(scope string) []*CourseDeadlines {
	if c == nil {
		return nil
	}
	var order []*CourseDeadlines
	if course, ok := c.scopes[scope]; ok {
		order = append(order, course)
	}
	if scope != "" {
		if course, ok := c.scopes[""]; ok {
			order = append(order, course)
		}
	}
	return order
}

// Len reports the number of course scopes loaded.
func (c *DeadlineCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.scopes)
}
