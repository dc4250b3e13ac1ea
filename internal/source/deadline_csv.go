package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/autoremind/autoremind/internal/models"
	appErrors "github.com/autoremind/autoremind/pkg/errors"
)

// DeadlineCSV loads deadline rows from the shared deadlines CSV. The file is
// the one required source: a missing or unreadable file aborts the run.
type DeadlineCSV struct {
	Path string
}

// Load reads and maps every row. Header names are trimmed; both the
// "assignment_name" and legacy "assignment" headers are accepted for the
// name column.
func (s DeadlineCSV) Load() ([]models.DeadlineRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code,
			appErrors.ErrSourceUnavailable.Status,
			fmt.Sprintf("deadlines CSV not found: %s", s.Path))
	}
	defer f.Close()

	return ParseDeadlineRows(f)
}

// ParseDeadlineRows decodes deadline rows from CSV content.
func ParseDeadlineRows(r io.Reader) ([]models.DeadlineRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code,
			appErrors.ErrSourceUnavailable.Status, "unreadable deadlines CSV header")
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []models.DeadlineRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code,
				appErrors.ErrSourceUnavailable.Status, "unreadable deadlines CSV row")
		}

		name := field(record, "assignment_name")
		if name == "" {
			name = field(record, "assignment")
		}
		rows = append(rows, models.DeadlineRow{
			CourseScope:    field(record, "course_code"),
			AssignmentCode: field(record, "assignment_code"),
			AssignmentName: name,
			Due:            field(record, "due"),
		})
	}
	return rows, nil
}
