package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/onedayhr/crm-api/internal/entity"
)

const recentCommentsLimit = 5

// AssistantRepository assembles the read models behind the AI prompts.
type AssistantRepository struct {
	DB *sql.DB
}

func NewAssistantRepository(db *sql.DB) *AssistantRepository {
	return &AssistantRepository{DB: db}
}

func (r *AssistantRepository) LeadContext(ctx context.Context, leadID int64) (*entity.LeadContext, error) {
	lc := &entity.LeadContext{}

	err := scanLead(r.DB.QueryRowContext(ctx, leadSelect+" WHERE l.id = $1", leadID), &lc.Lead)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead %d: %w", leadID, err)
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM lead_tasks WHERE lead_id = $1),
		       (SELECT COUNT(*) FROM lead_tasks WHERE lead_id = $1 AND completed = TRUE),
		       (SELECT COUNT(*) FROM lead_comments WHERE lead_id = $1),
		       (SELECT COUNT(*) FROM lead_calls WHERE lead_id = $1)
	`, leadID).Scan(&lc.TasksCount, &lc.CompletedTasks, &lc.CommentsCount, &lc.CallsCount)
	if err != nil {
		return nil, fmt.Errorf("count lead activity: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, lead_id, author_name, text, created_at
		FROM lead_comments
		WHERE lead_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, leadID, recentCommentsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent comments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.LeadID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		lc.RecentComments = append(lc.RecentComments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if lc.CallsCount > 0 {
		var call entity.Call
		err = r.DB.QueryRowContext(ctx, `
			SELECT id, lead_id, phone_number, direction, duration, recording_url, status, mango_call_id, started_at
			FROM lead_calls
			WHERE lead_id = $1
			ORDER BY started_at DESC
			LIMIT 1
		`, leadID).Scan(&call.ID, &call.LeadID, &call.PhoneNumber, &call.Direction, &call.Duration,
			&call.RecordingURL, &call.Status, &call.ExternalID, &call.StartedAt)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("last call: %w", err)
		}
		if err == nil {
			lc.LastCall = &call
		}
	}

	return lc, nil
}

// PlanStats loads workload counters for all ids in one round trip.
func (r *AssistantRepository) PlanStats(ctx context.Context, leadIDs []int64) (map[int64]entity.LeadPlanStats, error) {
	stats := make(map[int64]entity.LeadPlanStats, len(leadIDs))
	if len(leadIDs) == 0 {
		return stats, nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT l.id,
		       (SELECT COUNT(*) FROM lead_tasks t WHERE t.lead_id = l.id AND t.completed = FALSE),
		       (SELECT COUNT(*) FROM lead_tasks t WHERE t.lead_id = l.id),
		       (SELECT COUNT(*) FROM lead_calls c WHERE c.lead_id = l.id),
		       (SELECT MAX(c.started_at) FROM lead_calls c WHERE c.lead_id = l.id)
		FROM lead_data l
		WHERE l.id = ANY($1)
	`, pq.Array(leadIDs))
	if err != nil {
		return nil, fmt.Errorf("plan stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s entity.LeadPlanStats
		if err := rows.Scan(&s.LeadID, &s.OpenTasks, &s.TotalTasks, &s.CallsCount, &s.LastCallAt); err != nil {
			return nil, fmt.Errorf("scan plan stats: %w", err)
		}
		stats[s.LeadID] = s
	}
	return stats, rows.Err()
}
