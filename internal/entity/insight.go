package entity

import (
	"context"
	"time"
)

// LeadContext is everything the assistant prompts are built from.
type LeadContext struct {
	Lead           Lead
	TasksCount     int
	CompletedTasks int
	CommentsCount  int
	CallsCount     int
	LastCall       *Call
	RecentComments []Comment
}

// LeadPlanStats summarises a lead's workload for the daily plan.
type LeadPlanStats struct {
	LeadID     int64
	OpenTasks  int
	TotalTasks int
	CallsCount int
	LastCallAt *time.Time
}

type AssistantRepositoryInterface interface {
	LeadContext(ctx context.Context, leadID int64) (*LeadContext, error)
	PlanStats(ctx context.Context, leadIDs []int64) (map[int64]LeadPlanStats, error)
}
