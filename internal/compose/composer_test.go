package compose

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/autoremind/autoremind/internal/models"
)

func TestGreetingFallbackChain(t *testing.T) {
	assert.Equal(t, "Sam", Greeting(models.StudentRecord{PreferredFirstName: "Sam", FirstName: "Samuel"}))
	assert.Equal(t, "Samuel", Greeting(models.StudentRecord{FirstName: "Samuel"}))
	assert.Equal(t, "Samuel", Greeting(models.StudentRecord{PreferredFirstName: "  ", FirstName: "Samuel"}))
	assert.Equal(t, "there", Greeting(models.StudentRecord{}))
}

func TestMessageFormat(t *testing.T) {
	due := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)
	msg := Message(
		models.StudentRecord{FirstName: "Ada"},
		[]models.EligibilityResult{{
			AssignmentCode:   "PROJ1",
			AssignmentName:   "Project 1",
			PersonalDeadline: due,
			Resources: []models.Resource{
				{Type: "rubric", Name: "Grading Rubric", Link: "http://rubric"},
				{Name: "Starter Code"},
			},
		}},
	)

	lines := strings.Split(msg, "\n")
	assert.Equal(t, "Hey Ada,", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "Heads-up: you have upcoming assignments due soon:", lines[2])
	assert.Equal(t, "- Project 1 (PROJ1) → due 2026-09-15 23:59", lines[3])
	assert.Equal(t, "  Helpful resources:", lines[4])
	assert.Equal(t, "    • Grading Rubric [rubric]: http://rubric", lines[5])
	assert.Equal(t, "    • Starter Code", lines[6])
	assert.Equal(t, "", lines[7])
	assert.Equal(t, "Let us know if you need any support!", lines[8])
}

func TestMessageOffsetNote(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	msg := Message(models.StudentRecord{FirstName: "Ada"}, []models.EligibilityResult{
		{AssignmentCode: "PROJ1", AssignmentName: "Project 1", PersonalDeadline: due, OffsetDays: 3},
	})
	assert.Contains(t, msg, "  (Class deadline +3 day offset for you.)")

	msg = Message(models.StudentRecord{FirstName: "Ada"}, []models.EligibilityResult{
		{AssignmentCode: "PROJ1", AssignmentName: "Project 1", PersonalDeadline: due, OffsetDays: -2},
	})
	assert.Contains(t, msg, "  (Class deadline -2 day offset for you.)")

	msg = Message(models.StudentRecord{FirstName: "Ada"}, []models.EligibilityResult{
		{AssignmentCode: "PROJ1", AssignmentName: "Project 1", PersonalDeadline: due, OffsetDays: 0},
	})
	assert.NotContains(t, msg, "offset for you")
}

func TestMessageFiltersUnnamedResources(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	msg := Message(models.StudentRecord{FirstName: "Ada"}, []models.EligibilityResult{
		{
			AssignmentCode:   "PROJ1",
			AssignmentName:   "Project 1",
			PersonalDeadline: due,
			Resources: []models.Resource{
				{Name: "   ", Link: "http://orphan"},
				{Name: ""},
			},
		},
	})

	assert.NotContains(t, msg, "Helpful resources:")
	assert.NotContains(t, msg, "http://orphan")
}

func TestMessageRendersAssignmentsInGivenOrder(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	msg := Message(models.StudentRecord{FirstName: "Ada"}, []models.EligibilityResult{
		{AssignmentCode: "PROJ2", AssignmentName: "Project 2", PersonalDeadline: due},
		{AssignmentCode: "PROJ1", AssignmentName: "Project 1", PersonalDeadline: due},
	})

	assert.Less(t, strings.Index(msg, "Project 2"), strings.Index(msg, "Project 1"))
	// Each eligible assignment appears exactly once.
	assert.Equal(t, 1, strings.Count(msg, "(PROJ1)"))
	assert.Equal(t, 1, strings.Count(msg, "(PROJ2)"))
}
