package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/autoremind/autoremind/internal/models"
)

const dueLayout = "2006-01-02 15:04"

// Greeting picks the name used to address a student: preferred first name,
// then first name, then the literal "there".
func Greeting(student models.StudentRecord) string {
	if name := strings.TrimSpace(student.PreferredFirstName); name != "" {
		return name
	}
	if name := strings.TrimSpace(student.FirstName); name != "" {
		return name
	}
	return "there"
}

// Message renders one student's eligible assignments into the reminder body.
// Pure function of its inputs: assignments render in the order given, the
// offset note appears only for non-zero offsets, and resources without a name
// are filtered out here, at composition time.
func Message(student models.StudentRecord, assignments []models.EligibilityResult) string {
	lines := []string{
		fmt.Sprintf("Hey %s,", Greeting(student)),
		"",
		"Heads-up: you have upcoming assignments due soon:",
	}

	for _, assignment := range assignments {
		due := assignment.PersonalDeadline.Format(dueLayout)
		lines = append(lines, fmt.Sprintf("- %s (%s) → due %s",
			assignment.AssignmentName, assignment.AssignmentCode, due))
		if assignment.OffsetDays != 0 {
			lines = append(lines, fmt.Sprintf("  (Class deadline %+d day offset for you.)",
				assignment.OffsetDays))
		}

		var named []models.Resource
		for _, res := range assignment.Resources {
			if strings.TrimSpace(res.Name) != "" {
				named = append(named, res)
			}
		}
		if len(named) > 0 {
			lines = append(lines, "  Helpful resources:")
			for _, res := range named {
				line := fmt.Sprintf("    • %s", res.Name)
				if res.Type != "" {
					line += fmt.Sprintf(" [%s]", res.Type)
				}
				if res.Link != "" {
					line += fmt.Sprintf(": %s", res.Link)
				}
				lines = append(lines, line)
			}
		}
	}

	lines = append(lines, "", "Let us know if you need any support!")
	return strings.Join(lines, "\n")
}

// FormatDue renders a deadline the way messages and run output show it.
func FormatDue(t time.Time) string {
	return t.Format(dueLayout)
}
