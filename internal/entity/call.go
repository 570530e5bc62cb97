package entity

import (
	"context"
	"time"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	CallStatusInitiated = "initiated"
	CallStatusCompleted = "completed"
)

type Call struct {
	ID           int64     `json:"id"`
	LeadID       int64     `json:"lead_id"`
	PhoneNumber  string    `json:"phone_number"`
	Direction    string    `json:"direction"`
	Duration     int       `json:"duration"`
	RecordingURL *string   `json:"recording_url"`
	Status       string    `json:"status"`
	ExternalID   *string   `json:"mango_call_id"`
	StartedAt    time.Time `json:"started_at"`
}

type CallRepositoryInterface interface {
	ListByLead(ctx context.Context, leadID int64) ([]Call, error)
	Create(ctx context.Context, call *Call) error
}
