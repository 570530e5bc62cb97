package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onedayhr/crm-api/internal/entity"
)

type CallRepository struct {
	DB *sql.DB
}

func NewCallRepository(db *sql.DB) *CallRepository {
	return &CallRepository{DB: db}
}

func (r *CallRepository) ListByLead(ctx context.Context, leadID int64) ([]entity.Call, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, lead_id, phone_number, direction, duration, recording_url, status, mango_call_id, started_at
		FROM lead_calls
		WHERE lead_id = $1
		ORDER BY started_at DESC
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	defer rows.Close()

	calls := []entity.Call{}
	for rows.Next() {
		var c entity.Call
		if err := rows.Scan(&c.ID, &c.LeadID, &c.PhoneNumber, &c.Direction, &c.Duration,
			&c.RecordingURL, &c.Status, &c.ExternalID, &c.StartedAt); err != nil {
			return nil, fmt.Errorf("scan call: %w", err)
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

func (r *CallRepository) Create(ctx context.Context, c *entity.Call) error {
	query := `
		INSERT INTO lead_calls (lead_id, phone_number, direction, duration, recording_url, status, mango_call_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, started_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		c.LeadID, c.PhoneNumber, c.Direction, c.Duration, c.RecordingURL, c.Status, c.ExternalID,
	).Scan(&c.ID, &c.StartedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("insert call: %w", err)
	}
	return nil
}
