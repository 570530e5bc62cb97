package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onedayhr/crm-api/internal/entity"
)

type ExportRepository struct {
	DB *sql.DB
}

func NewExportRepository(db *sql.DB) *ExportRepository {
	return &ExportRepository{DB: db}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *ExportRepository) Rows(ctx context.Context, f entity.ExportFilter) ([]entity.ExportRow, error) {
	query := `
		SELECT l.id, l.name, l.phone, l.email, l.company, l.vacancy, l.source, l.priority,
		       l.stage_id, s.name, s.color, l.notes, l.created_at, l.updated_at,
		       (SELECT COUNT(*) FROM lead_tasks t WHERE t.lead_id = l.id AND t.completed = FALSE),
		       (SELECT COUNT(*) FROM lead_tasks t WHERE t.lead_id = l.id AND t.completed = TRUE),
		       (SELECT COUNT(*) FROM lead_comments c WHERE c.lead_id = l.id),
		       (SELECT COUNT(*) FROM lead_calls c WHERE c.lead_id = l.id)
		FROM lead_data l
		LEFT JOIN lead_stages s ON s.id = l.stage_id
		WHERE ($1::bigint IS NULL OR l.stage_id = $1)
		  AND ($2::text IS NULL OR l.priority = $2)
		  AND ($3::text IS NULL OR l.source = $3)
		  AND ($4::timestamptz IS NULL OR l.created_at >= $4)
		  AND ($5::timestamptz IS NULL OR l.created_at <= $5)
		ORDER BY l.created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query,
		f.StageID, nullIfEmpty(f.Priority), nullIfEmpty(f.Source), f.DateFrom, f.DateTo,
	)
	if err != nil {
		return nil, fmt.Errorf("query export rows: %w", err)
	}
	defer rows.Close()

	out := []entity.ExportRow{}
	for rows.Next() {
		var row entity.ExportRow
		l := &row.Lead
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Phone, &l.Email, &l.Company, &l.Vacancy, &l.Source, &l.Priority,
			&l.StageID, &l.StageName, &l.StageColor, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
			&row.OpenTasks, &row.CompletedTasks, &row.CommentsCount, &row.CallsCount,
		); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
