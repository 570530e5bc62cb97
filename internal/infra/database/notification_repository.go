package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/onedayhr/crm-api/internal/entity"
)

// NotificationRepository reads the raw signals notifications are computed from.
type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) DueTasks(ctx context.Context, until time.Time) ([]entity.DueTask, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.id, t.title, t.due_date, t.priority, l.id, l.name, t.completed
		FROM lead_tasks t
		JOIN lead_data l ON l.id = t.lead_id
		WHERE t.completed = FALSE
		  AND t.due_date IS NOT NULL
		  AND DATE(t.due_date) <= $1::date
		ORDER BY t.due_date ASC
	`, until.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("query due tasks: %w", err)
	}
	defer rows.Close()

	tasks := []entity.DueTask{}
	for rows.Next() {
		var t entity.DueTask
		if err := rows.Scan(&t.ID, &t.Title, &t.DueDate, &t.Priority, &t.LeadID, &t.LeadName, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan due task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *NotificationRepository) StaleLeadCandidates(ctx context.Context, maxStageID int64, limit int) ([]entity.LeadActivity, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT l.id, l.name, l.priority, l.stage_id, s.name, l.created_at,
		       (SELECT COUNT(*) FROM lead_calls c WHERE c.lead_id = l.id),
		       (SELECT MAX(c.started_at) FROM lead_calls c WHERE c.lead_id = l.id)
		FROM lead_data l
		LEFT JOIN lead_stages s ON s.id = l.stage_id
		WHERE l.priority = 'high'
		  AND l.stage_id <= $1
		ORDER BY l.created_at DESC
		LIMIT $2
	`, maxStageID, limit)
	if err != nil {
		return nil, fmt.Errorf("query stale leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.LeadActivity{}
	for rows.Next() {
		var l entity.LeadActivity
		if err := rows.Scan(&l.ID, &l.Name, &l.Priority, &l.StageID, &l.StageName, &l.CreatedAt,
			&l.CallsCount, &l.LastCallAt); err != nil {
			return nil, fmt.Errorf("scan stale lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
