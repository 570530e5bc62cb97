package entity

import (
	"context"
	"errors"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

const (
	SourceManual   = "manual"
	SourceMainForm = "main_form"
)

var (
	ErrLeadNotFound = errors.New("lead not found")
	ErrInvalidLead  = errors.New("invalid lead")
)

type Lead struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      *string   `json:"email"`
	Company    *string   `json:"company"`
	Vacancy    *string   `json:"vacancy"`
	Source     string    `json:"source"`
	Priority   Priority  `json:"priority"`
	StageID    *int64    `json:"stage_id"`
	StageName  *string   `json:"stage_name,omitempty"`
	StageColor *string   `json:"stage_color,omitempty"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LeadDetails is the single-lead view with its nested activity.
type LeadDetails struct {
	Lead
	Tasks    []Task    `json:"tasks"`
	Comments []Comment `json:"comments"`
	Calls    []Call    `json:"calls"`
}

// LeadPatch lists every column PATCH /leads may touch. Nothing outside this set is ever written.
type LeadPatch struct {
	Name     Optional[string]   `json:"name"`
	Phone    Optional[string]   `json:"phone"`
	Email    Optional[string]   `json:"email"`
	Company  Optional[string]   `json:"company"`
	Vacancy  Optional[string]   `json:"vacancy"`
	Priority Optional[Priority] `json:"priority"`
	Notes    Optional[string]   `json:"notes"`
	StageID  Optional[int64]    `json:"stage_id"`
}

func (p LeadPatch) Empty() bool {
	return !p.Name.Set && !p.Phone.Set && !p.Email.Set && !p.Company.Set &&
		!p.Vacancy.Set && !p.Priority.Set && !p.Notes.Set && !p.StageID.Set
}

type LeadFilter struct {
	StageID *int64
	Limit   int
	Offset  int
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	// CreateOnFirstStage inserts the lead on the lowest-position stage, if any stage exists.
	CreateOnFirstStage(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindIDByPhone(ctx context.Context, phone string) (int64, error)
	List(ctx context.Context, filter LeadFilter) ([]Lead, error)
	Replace(ctx context.Context, lead *Lead) error
	Patch(ctx context.Context, id int64, patch LeadPatch) error
	Delete(ctx context.Context, id int64) error
}
