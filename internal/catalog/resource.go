package catalog

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/models"
)

// DeadlineMatch resolves a canonical deadline for (scope, name, code). The
// engine supplies its matching algorithm here so the catalog join step and
// per-student resolution share one implementation.
type DeadlineMatch func(courseScope, assignmentName, assignmentCode string) (time.Time, bool)

// ResourceCatalog maps course scope -> assignment code -> entry. Codes are
// registered under both their exact form and their base alias; the alias
// fan-out is one-directional (alias entries accumulate from every matching
// full code, full-code entries never pull from sibling codes).
type ResourceCatalog struct {
	scopes map[string]map[string]*models.ResourceEntry
}

// BuildResources folds resource rows into a catalog. Rows without an
// assignment code contribute nothing.
func BuildResources(rows []models.ResourceRow, logger *zap.Logger) *ResourceCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := &ResourceCatalog{scopes: map[string]map[string]*models.ResourceEntry{}}

	for _, row := range rows {
		code := strings.TrimSpace(row.AssignmentCode)
		if code == "" {
			continue
		}
		scope := strings.TrimSpace(row.CourseScope)

		course, ok := catalog.scopes[scope]
		if !ok {
			course = map[string]*models.ResourceEntry{}
			catalog.scopes[scope] = course
		}

		entry := course[code]
		if entry == nil {
			entry = &models.ResourceEntry{
				CourseScope:    scope,
				AssignmentCode: code,
				AssignmentName: code,
			}
			course[code] = entry
		}
		if row.AssignmentName != "" {
			entry.AssignmentName = row.AssignmentName
		}
		resource := models.Resource{
			Type: row.ResourceType,
			Name: row.ResourceName,
			Link: row.Link,
		}
		entry.Resources = append(entry.Resources, resource)

		alias := BaseCode(code)
		if alias == "" || alias == code {
			continue
		}
		aliasEntry := course[alias]
		if aliasEntry == nil {
			aliasEntry = &models.ResourceEntry{
				CourseScope:    scope,
				AssignmentCode: alias,
				AssignmentName: entry.AssignmentName,
			}
			if aliasEntry.AssignmentName == "" {
				aliasEntry.AssignmentName = alias
			}
			course[alias] = aliasEntry
		}
		// Only adopt the row's name while the alias entry still carries its
		// own code as a placeholder name.
		if row.AssignmentName != "" && aliasEntry.AssignmentName == aliasEntry.AssignmentCode {
			aliasEntry.AssignmentName = row.AssignmentName
		}
		aliasEntry.Resources = append(aliasEntry.Resources, resource)
	}

	total := 0
	for _, course := range catalog.scopes {
		total += len(course)
	}
	logger.Debug("built resource catalog",
		zap.Int("codes", total),
		zap.Int("scopes", len(catalog.scopes)))

	return catalog
}

// AttachDeadlines joins every entry against the deadline catalog using the
// supplied matcher. Entries with no match keep a nil deadline; the join never
// flows the other way.
func (c *ResourceCatalog) AttachDeadlines(match DeadlineMatch) {
	if c == nil || match == nil {
		return
	}
	for scope, course := range c.scopes {
		for _, entry := range course {
			if due, ok := match(scope, entry.AssignmentName, entry.AssignmentCode); ok {
				d := due
				entry.Deadline = &d
			}
		}
	}
}

// Lookup resolves the entry for (scope, code), falling back to the code's
// base alias within the scope, then repeating both forms against the default
// "" scope when the student's own scope holds no map at all.
func (c *ResourceCatalog) Lookup(courseScope, code string) *models.ResourceEntry {
	if c == nil {
		return nil
	}
	course := c.scopes[courseScope]
	if course == nil && courseScope != "" {
		course = c.scopes[""]
	}
	if course == nil {
		return nil
	}
	if entry, ok := course[code]; ok {
		return entry
	}
	if alias := BaseCode(code); alias != "" && alias != code {
		if entry, ok := course[alias]; ok {
			return entry
		}
	}
	return nil
}

// Len reports the number of course scopes held.
func (c *ResourceCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.scopes)
}
