package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/onedayhr/crm-api/internal/entity"
)

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

const taskColumns = `id, lead_id, title, description, due_date, priority, completed, created_at`

func scanTask(row scanner, t *entity.Task) error {
	return row.Scan(&t.ID, &t.LeadID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Completed, &t.CreatedAt)
}

// ListByLead orders by deadline; tasks without one come last.
func (r *TaskRepository) ListByLead(ctx context.Context, leadID int64) ([]entity.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM lead_tasks WHERE lead_id = $1 ORDER BY due_date ASC NULLS LAST, created_at DESC`,
		leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []entity.Task{}
	for rows.Next() {
		var t entity.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO lead_tasks (lead_id, title, description, due_date, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, completed, created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		task.LeadID, task.Title, task.Description, task.DueDate, task.Priority,
	).Scan(&task.ID, &task.Completed, &task.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Patch(ctx context.Context, id int64, patch entity.TaskPatch) error {
	query, args, ok := buildUpdate("lead_tasks", id, false, []column{
		{"title", patch.Title.Set, patch.Title.Arg()},
		{"description", patch.Description.Set, patch.Description.Arg()},
		{"due_date", patch.DueDate.Set, patch.DueDate.Arg()},
		{"priority", patch.Priority.Set, patch.Priority.Arg()},
		{"completed", patch.Completed.Set, patch.Completed.Arg()},
	})
	if !ok {
		return nil
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("patch task %d: %w", id, err)
	}
	return requireAffected(res, entity.ErrTaskNotFound)
}
