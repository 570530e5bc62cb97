package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/onedayhr/crm-api/internal/entity"
)

const (
	DefaultStageName = "New lead"

	MaxPlanLeads = 20
	MaxPlanTasks = 7
)

var ErrAssistantNotConfigured = NewDomainError(CodeNotConfigured, "OPENAI_API_KEY not configured")

type AssistantService struct {
	Leads entity.LeadRepositoryInterface
	Repo  entity.AssistantRepositoryInterface
	// Model is nil when no API key is configured.
	Model LanguageModel
	// OnFallback, when set, observes every degraded answer.
	OnFallback func(operation string, err error)
}

func (s *AssistantService) fallback(operation string, err error) {
	log.Printf("⚠️ [AI] %s fell back to local result: %v", operation, err)
	if s.OnFallback != nil {
		s.OnFallback(operation, err)
	}
}

func (s *AssistantService) leadContext(ctx context.Context, leadID int64) (*entity.LeadContext, error) {
	if s.Model == nil {
		return nil, ErrAssistantNotConfigured
	}
	if leadID <= 0 {
		return nil, NewDomainError(CodeValidation, "lead_id required")
	}
	lc, err := s.Repo.LeadContext(ctx, leadID)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, NewDomainError(CodeNotFound, "Lead not found")
	}
	if err != nil {
		return nil, dbError("failed to load lead context", err)
	}
	return lc, nil
}

func (s *AssistantService) Analyze(ctx context.Context, leadID int64) (*LeadAnalysis, error) {
	lc, err := s.leadContext(ctx, leadID)
	if err != nil {
		return nil, err
	}

	content, err := s.Model.Complete(ctx, ChatRequest{
		System:      analystSystemPrompt,
		Prompt:      analyzePrompt(lc),
		Temperature: 0.7,
		MaxTokens:   500,
		JSON:        true,
	})
	if err == nil {
		var analysis *LeadAnalysis
		if analysis, err = parseAnalysis(content); err == nil {
			return analysis, nil
		}
	}

	s.fallback("analyze", err)
	return FallbackAnalysis(lc), nil
}

func parseAnalysis(content string) (*LeadAnalysis, error) {
	var raw struct {
		LeadTemperature       string   `json:"lead_temperature"`
		ConversionProbability *float64 `json:"conversion_probability"`
		RiskLevel             string   `json:"risk_level"`
		KeyInsights           string   `json:"key_insights"`
		Recommendations       []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("malformed analysis: %w", err)
	}
	if raw.LeadTemperature == "" || raw.ConversionProbability == nil {
		return nil, errors.New("analysis is missing required keys")
	}
	if raw.Recommendations == nil {
		raw.Recommendations = []string{}
	}
	return &LeadAnalysis{
		LeadTemperature:       raw.LeadTemperature,
		ConversionProbability: ClampProbability(int(math.Round(*raw.ConversionProbability))),
		RiskLevel:             raw.RiskLevel,
		KeyInsights:           raw.KeyInsights,
		Recommendations:       raw.Recommendations,
	}, nil
}

// FallbackAnalysis scores a lead from its own counters: 50 base, +20 high priority,
// +10 with any call, +10 with any completed task.
func FallbackAnalysis(c *entity.LeadContext) *LeadAnalysis {
	probability := 50
	if c.Lead.Priority == entity.PriorityHigh {
		probability += 20
	}
	if c.CallsCount > 0 {
		probability += 10
	}
	if c.CompletedTasks > 0 {
		probability += 10
	}
	probability = ClampProbability(probability)

	return &LeadAnalysis{
		LeadTemperature:       TemperatureFor(probability),
		ConversionProbability: probability,
		RiskLevel:             "medium",
		KeyInsights:           fmt.Sprintf("Lead %s is at stage %s. Needs active work.", c.Lead.Name, stageLabel(c.Lead)),
		Recommendations: []string{
			"Contact the client",
			"Clarify the vacancy details",
			"Schedule the next meeting",
		},
	}
}

func TemperatureFor(probability int) string {
	switch {
	case probability > 70:
		return "hot"
	case probability > 50:
		return "warm"
	}
	return "cold"
}

func ClampProbability(p int) int {
	return max(0, min(100, p))
}

func (s *AssistantService) Suggest(ctx context.Context, leadID int64) (*NextAction, error) {
	lc, err := s.leadContext(ctx, leadID)
	if err != nil {
		return nil, err
	}

	content, err := s.Model.Complete(ctx, ChatRequest{
		System:      managerSystemPrompt,
		Prompt:      suggestPrompt(lc),
		Temperature: 0.8,
		MaxTokens:   300,
		JSON:        true,
	})
	if err == nil {
		var action NextAction
		if err = json.Unmarshal([]byte(content), &action); err == nil {
			if action.Action != "" {
				return &action, nil
			}
			err = errors.New("suggestion is missing action")
		}
	}

	s.fallback("suggest", err)
	return FallbackSuggestion(), nil
}

func FallbackSuggestion() *NextAction {
	return &NextAction{
		Action:         "Call the client",
		Description:    "Contact the client to clarify the details",
		Priority:       string(entity.PriorityMedium),
		EstimatedTime:  "15 minutes",
		ExpectedResult: "Clarify the vacancy details",
	}
}

func (s *AssistantService) Summarize(ctx context.Context, leadID int64) (string, error) {
	lc, err := s.leadContext(ctx, leadID)
	if err != nil {
		return "", err
	}

	content, err := s.Model.Complete(ctx, ChatRequest{
		System:      summarizerSystemPrompt,
		Prompt:      summarizePrompt(lc),
		Temperature: 0.5,
		MaxTokens:   200,
	})
	if err == nil {
		if summary := strings.TrimSpace(content); summary != "" {
			return summary, nil
		}
		err = errors.New("empty summary")
	}

	s.fallback("summarize", err)
	return FallbackSummary(lc.Lead), nil
}

func FallbackSummary(l entity.Lead) string {
	return fmt.Sprintf("Lead %s is at stage %s. Company: %s.", l.Name, stageLabel(l), orDefault(l.Company, "not specified"))
}

// DailyPlan ranks the day's work over at most MaxPlanLeads leads and returns at most MaxPlanTasks tasks.
func (s *AssistantService) DailyPlan(ctx context.Context, leads []PlanLead) ([]DailyTask, error) {
	if s.Model == nil {
		return nil, ErrAssistantNotConfigured
	}
	if len(leads) == 0 {
		return []DailyTask{}, nil
	}

	window := leads[:min(len(leads), MaxPlanLeads)]
	ids := make([]int64, 0, len(window))
	for _, l := range window {
		ids = append(ids, l.ID)
	}

	stats, err := s.Repo.PlanStats(ctx, ids)
	if err != nil {
		return nil, dbError("failed to load plan statistics", err)
	}

	prompt, err := dailyPlanPrompt(window, stats)
	if err != nil {
		return nil, &TechnicalError{Code: CodeUpstream, Message: "failed to build plan prompt", Err: err}
	}

	content, err := s.Model.Complete(ctx, ChatRequest{
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   1500,
		JSON:        true,
	})
	if err == nil {
		var tasks []DailyTask
		if tasks, err = parseDailyPlan(content); err == nil {
			return tasks, nil
		}
	}

	s.fallback("daily_plan", err)
	return FallbackDailyPlan(leads[0]), nil
}

func parseDailyPlan(content string) ([]DailyTask, error) {
	var raw struct {
		Tasks      *[]DailyTask `json:"tasks"`
		DailyTasks *[]DailyTask `json:"daily_tasks"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("malformed plan: %w", err)
	}

	var tasks []DailyTask
	switch {
	case raw.Tasks != nil:
		tasks = *raw.Tasks
	case raw.DailyTasks != nil:
		tasks = *raw.DailyTasks
	default:
		return nil, errors.New("plan is missing tasks")
	}

	if tasks == nil {
		tasks = []DailyTask{}
	}
	if len(tasks) > MaxPlanTasks {
		tasks = tasks[:MaxPlanTasks]
	}
	return tasks, nil
}

func FallbackDailyPlan(first PlanLead) []DailyTask {
	return []DailyTask{{
		LeadID:        first.ID,
		LeadName:      first.Name,
		Action:        "Contact the client",
		Priority:      string(entity.PriorityHigh),
		Reason:        "Automatic recommendation",
		EstimatedTime: "15 minutes",
	}}
}

// QuickInsights flags missing data on a lead without calling the model.
func (s *AssistantService) QuickInsights(ctx context.Context, leadID int64) ([]Insight, error) {
	if s.Model == nil {
		return nil, ErrAssistantNotConfigured
	}
	if leadID <= 0 {
		return nil, NewDomainError(CodeValidation, "lead_id required")
	}
	lead, err := s.Leads.FindByID(ctx, leadID)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, NewDomainError(CodeNotFound, "Lead not found")
	}
	if err != nil {
		return nil, dbError("failed to load lead", err)
	}
	return BuildInsights(*lead), nil
}

func BuildInsights(l entity.Lead) []Insight {
	var insights []Insight

	if l.StageName != nil && *l.StageName == DefaultStageName {
		insights = append(insights, Insight{Icon: "Sparkles", Text: "New lead! Contact within 2 hours", Type: "urgent"})
	}
	if l.Priority == entity.PriorityHigh {
		insights = append(insights, Insight{Icon: "AlertTriangle", Text: "High priority, needs special attention", Type: "warning"})
	}
	if orDefault(l.Company, "") == "" {
		insights = append(insights, Insight{Icon: "Building2", Text: "Company is missing, add it for better context", Type: "info"})
	}
	if orDefault(l.Vacancy, "") == "" {
		insights = append(insights, Insight{Icon: "Briefcase", Text: "Vacancy is missing, clarify it on first contact", Type: "info"})
	}
	if len(insights) == 0 {
		insights = append(insights, Insight{Icon: "CheckCircle2", Text: "All key fields are filled", Type: "success"})
	}
	return insights
}
