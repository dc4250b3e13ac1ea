package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/autoremind/autoremind/internal/models"
	appErrors "github.com/autoremind/autoremind/pkg/errors"
)

// StudentRepository reads student rows from Postgres. Rows come back as raw
// column maps because the offset columns are dynamic (one per assignment
// code); the typed projection happens in models.StudentFromRow.
type StudentRepository struct {
	db    *sqlx.DB
	table string
}

// NewStudentRepository constructs a StudentRepository over the given table.
func NewStudentRepository(db *sqlx.DB, table string) *StudentRepository {
	if table == "" {
		table = "students"
	}
	return &StudentRepository{db: db, table: table}
}

// ListRaw fetches every student row as a loose column map.
func (r *StudentRepository) ListRaw(ctx context.Context) ([]map[string]interface{}, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY id", pq.QuoteIdentifier(r.table))
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return result, nil
}

// ListStudents fetches and projects every student record.
func (r *StudentRepository) ListStudents(ctx context.Context) ([]models.StudentRecord, error) {
	raw, err := r.ListRaw(ctx)
	if err != nil {
		return nil, err
	}
	students := make([]models.StudentRecord, 0, len(raw))
	for _, row := range raw {
		students = append(students, models.StudentFromRow(row))
	}
	return students, nil
}

// NotificationSettings is the shape written by the settings registration
// endpoint. The login email is the canonical identity.
type NotificationSettings struct {
	Email         string
	PhoneNumber   *string
	DiscordID     *string
	NotifFreqDays int
	PhonePref     bool
	EmailPref     bool
	DiscordPref   bool
}

// RegisterSettings inserts a student's notification settings. A duplicate
// email surfaces as appErrors.ErrDuplicate.
func (r *StudentRepository) RegisterSettings(ctx context.Context, s NotificationSettings) error {
	query := fmt.Sprintf(`INSERT INTO %s (email, phone_number, discord_id, notif_freq_days, phone_pref, email_pref, discord_pref)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`, pq.QuoteIdentifier(r.table))

	_, err := r.db.ExecContext(ctx, query,
		strings.TrimSpace(s.Email),
		s.PhoneNumber,
		s.DiscordID,
		s.NotifFreqDays,
		s.PhonePref,
		s.EmailPref,
		s.DiscordPref,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return appErrors.ErrDuplicate
		}
		return fmt.Errorf("register settings: %w", err)
	}
	return nil
}
