package entity

import (
	"context"
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

type Task struct {
	ID          int64      `json:"id"`
	LeadID      int64      `json:"lead_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	DueDate     Optional[time.Time]
	Priority    Optional[Priority]
	Completed   Optional[bool]
}

func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.DueDate.Set && !p.Priority.Set && !p.Completed.Set
}

// DueTask is a task with a deadline, joined with its lead.
type DueTask struct {
	ID        int64
	Title     string
	DueDate   time.Time
	Priority  Priority
	LeadID    int64
	LeadName  string
	Completed bool
}

type TaskRepositoryInterface interface {
	ListByLead(ctx context.Context, leadID int64) ([]Task, error)
	Create(ctx context.Context, task *Task) error
	Patch(ctx context.Context, id int64, patch TaskPatch) error
}
