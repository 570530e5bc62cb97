package entity

import (
	"context"
	"time"
)

type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyNormal  Urgency = "normal"
)

// Rank orders urgency tiers: overdue first, normal last.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyOverdue:
		return 0
	case UrgencyUrgent:
		return 1
	}
	return 2
}

// Unread is true for tiers counted in the unread badge.
func (u Urgency) Unread() bool {
	return u == UrgencyOverdue || u == UrgencyUrgent
}

const (
	NotificationTypeTask = "task"
	NotificationTypeLead = "lead"
)

// Notification is derived on every read and never stored.
type Notification struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Urgency   Urgency    `json:"urgency"`
	Title     string     `json:"title"`
	Message   string     `json:"message,omitempty"`
	LeadID    int64      `json:"lead_id"`
	LeadName  string     `json:"lead_name"`
	Priority  Priority   `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// LeadActivity is a lead joined with its call statistics.
type LeadActivity struct {
	ID         int64
	Name       string
	Priority   Priority
	StageID    *int64
	StageName  *string
	CreatedAt  time.Time
	CallsCount int
	LastCallAt *time.Time
}

// NotificationSourceInterface reads the two signal streams notifications are derived from.
type NotificationSourceInterface interface {
	// DueTasks returns incomplete tasks whose due date is on or before until's date.
	DueTasks(ctx context.Context, until time.Time) ([]DueTask, error)
	// StaleLeadCandidates returns high-priority leads on stages up to maxStageID, newest first.
	StaleLeadCandidates(ctx context.Context, maxStageID int64, limit int) ([]LeadActivity, error)
}
