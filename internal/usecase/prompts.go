package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/onedayhr/crm-api/internal/entity"
)

const (
	analystSystemPrompt    = "You are a CRM analyst for an HR agency. You give clear business recommendations."
	managerSystemPrompt    = "You are an experienced HR manager. You suggest concrete actions."
	summarizerSystemPrompt = "You write short lead summaries for HR managers."
)

func orDefault(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

func stageLabel(l entity.Lead) string {
	return orDefault(l.StageName, "no stage")
}

func analyzePrompt(c *entity.LeadContext) string {
	l := c.Lead
	return fmt.Sprintf(`Analyze this lead of an HR agency CRM and give recommendations.

Lead:
- Name: %s
- Company: %s
- Vacancy: %s
- Current stage: %s
- Priority: %s
- Tasks completed: %d/%d
- Calls: %d
- Comments: %d
- Notes: %s

Give a short analysis (up to 150 words):
1. Lead quality (hot/warm/cold)
2. Probability of closing the deal (%%)
3. Main risks
4. How to work with the lead

Answer with a JSON object:
{
  "lead_temperature": "hot/warm/cold",
  "conversion_probability": 85,
  "risk_level": "low/medium/high",
  "key_insights": "short conclusion",
  "recommendations": ["action 1", "action 2", "action 3"]
}`,
		l.Name, orDefault(l.Company, "not specified"), orDefault(l.Vacancy, "not specified"),
		stageLabel(l), l.Priority, c.CompletedTasks, c.TasksCount, c.CallsCount, c.CommentsCount,
		orDefault(l.Notes, "none"))
}

func suggestPrompt(c *entity.LeadContext) string {
	l := c.Lead
	lastCall := "none"
	if c.LastCall != nil {
		lastCall = fmt.Sprintf("%s, %s, %ds, %s", c.LastCall.StartedAt.Format("2006-01-02 15:04"),
			c.LastCall.Direction, c.LastCall.Duration, c.LastCall.Status)
	}
	return fmt.Sprintf(`Lead "%s" is at stage "%s".
Company: %s
Vacancy: %s
Tasks completed: %d/%d
Last call: %s

Suggest ONE concrete action to take right now as a JSON object:
{
  "action": "short action name",
  "description": "what exactly to do",
  "priority": "high/medium/low",
  "estimated_time": "approximate duration",
  "expected_result": "expected outcome"
}`,
		l.Name, stageLabel(l), orDefault(l.Company, "not specified"), orDefault(l.Vacancy, "not specified"),
		c.CompletedTasks, c.TasksCount, lastCall)
}

func summarizePrompt(c *entity.LeadContext) string {
	l := c.Lead
	comments := "No comments"
	if len(c.RecentComments) > 0 {
		lines := make([]string, 0, 3)
		for i, cm := range c.RecentComments {
			if i == 3 {
				break
			}
			lines = append(lines, "- "+cm.Text)
		}
		comments = strings.Join(lines, "\n")
	}
	return fmt.Sprintf(`Write a short summary (up to 100 words) of this lead:

%s (%s)
Stage: %s
Vacancy: %s

Recent comments:
%s

Notes: %s

The summary must be clear to a manager who sees this lead for the first time.`,
		l.Name, orDefault(l.Company, "company not specified"), stageLabel(l),
		orDefault(l.Vacancy, "not specified"), comments, orDefault(l.Notes, "none"))
}

type planLeadSummary struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	StageID   *int64          `json:"stage_id"`
	Priority  entity.Priority `json:"priority"`
	OpenTasks int             `json:"open_tasks"`
	LastCall  string          `json:"last_call"`
}

func dailyPlanPrompt(leads []PlanLead, stats map[int64]entity.LeadPlanStats) (string, error) {
	summary := make([]planLeadSummary, 0, len(leads))
	for _, l := range leads {
		s := stats[l.ID]
		lastCall := "never"
		if s.LastCallAt != nil {
			lastCall = s.LastCallAt.Format("2006-01-02 15:04")
		}
		summary = append(summary, planLeadSummary{
			ID:        l.ID,
			Name:      l.Name,
			StageID:   l.StageID,
			Priority:  l.Priority,
			OpenTasks: s.OpenTasks,
			LastCall:  lastCall,
		})
	}

	raw, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You assist an HR manager. Review the leads below and build the best work plan for today.

Leads:
%s

List the 5-7 most important tasks for today. Take into account:
- lead priority (high > medium > low)
- unfinished tasks
- time since the last call
- funnel stage (earlier stages are more urgent)

For every task give lead_id, lead_name, action, priority, reason, estimated_time.

Answer with a JSON object {"tasks": [...]}.`, raw), nil
}
