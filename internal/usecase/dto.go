package usecase

import (
	"time"

	"github.com/onedayhr/crm-api/internal/entity"
)

type CaptureLeadInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Vacancy string `json:"vacancy"`
	Source  string `json:"source"`
}

type CaptureLeadOutput struct {
	LeadID  int64  `json:"lead_id"`
	Message string `json:"message"`
}

type NotificationFeed struct {
	Notifications []entity.Notification `json:"notifications"`
	Total         int                   `json:"total"`
	Unread        int                   `json:"unread"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserSummary struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type LoginOutput struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	InviteToken string `json:"invite_token"`
}

type RegisterOutput struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type GenerateInviteInput struct {
	MaxUses        *int `json:"max_uses"`
	ExpiresInHours *int `json:"expires_in_hours"`
}

type InviteOutput struct {
	InviteID  int64     `json:"invite_id"`
	Token     string    `json:"token"`
	InviteURL string    `json:"invite_url"`
	ExpiresAt time.Time `json:"expires_at"`
	MaxUses   int       `json:"max_uses"`
}

type PasswordResetOutput struct {
	Message string `json:"message"`
	// Token is empty when the address is unknown.
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ResetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type LeadAnalysis struct {
	LeadTemperature       string   `json:"lead_temperature"`
	ConversionProbability int      `json:"conversion_probability"`
	RiskLevel             string   `json:"risk_level"`
	KeyInsights           string   `json:"key_insights"`
	Recommendations       []string `json:"recommendations"`
}

type NextAction struct {
	Action         string `json:"action"`
	Description    string `json:"description"`
	Priority       string `json:"priority"`
	EstimatedTime  string `json:"estimated_time"`
	ExpectedResult string `json:"expected_result"`
}

// PlanLead is a lead as the client sends it for daily planning.
type PlanLead struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	StageID  *int64          `json:"stage_id"`
	Priority entity.Priority `json:"priority"`
}

type DailyTask struct {
	LeadID        int64  `json:"lead_id"`
	LeadName      string `json:"lead_name"`
	Action        string `json:"action"`
	Priority      string `json:"priority"`
	Reason        string `json:"reason"`
	EstimatedTime string `json:"estimated_time"`
}

type Insight struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
	Type string `json:"type"`
}
