package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/autoremind/autoremind/internal/models"
)

// ResourceRepository reads assignment-resource rows from Postgres.
type ResourceRepository struct {
	db    *sqlx.DB
	table string
}

// NewResourceRepository constructs a ResourceRepository over the given table.
func NewResourceRepository(db *sqlx.DB, table string) *ResourceRepository {
	if table == "" {
		table = "assignment_resources"
	}
	return &ResourceRepository{db: db, table: table}
}

// ListRows fetches every resource row in the source's natural order.
func (r *ResourceRepository) ListRows(ctx context.Context) ([]models.ResourceRow, error) {
	query := fmt.Sprintf(`SELECT
            COALESCE(course_code, '') AS course_code,
            COALESCE(assignment_code, '') AS assignment_code,
            COALESCE(assignment_name, '') AS assignment_name,
            COALESCE(resource_type, '') AS resource_type,
            COALESCE(resource_name, '') AS resource_name,
            COALESCE(link, '') AS link
        FROM %s
        ORDER BY course_code, assignment_code`, pq.QuoteIdentifier(r.table))

	var result []models.ResourceRow
	if err := r.db.SelectContext(ctx, &result, query); err != nil {
		return nil, fmt.Errorf("list assignment resources: %w", err)
	}
	return result, nil
}
