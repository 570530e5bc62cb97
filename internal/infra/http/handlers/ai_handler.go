package handlers

import (
	"net/http"

	"github.com/onedayhr/crm-api/internal/usecase"
)

const (
	actionAnalyze   = "analyze"
	actionSuggest   = "suggest"
	actionSummarize = "summarize"
	actionDailyPlan = "daily_plan"
)

type AIHandler struct {
	Service *usecase.AssistantService
}

type aiRequest struct {
	Action string              `json:"action"`
	LeadID int64               `json:"lead_id"`
	Leads  []usecase.PlanLead `json:"leads"`
}

func (h *AIHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req aiRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Action == "" {
		req.Action = actionAnalyze
	}
	ctx := r.Context()

	if req.Action == actionDailyPlan {
		tasks, err := h.Service.DailyPlan(ctx, req.Leads)
		if err != nil {
			writeFailure(w, "AI", err)
			return
		}
		writeOK(w, envelope{"daily_tasks": tasks})
		return
	}

	switch req.Action {
	case actionAnalyze:
		analysis, err := h.Service.Analyze(ctx, req.LeadID)
		if err != nil {
			writeFailure(w, "AI", err)
			return
		}
		writeOK(w, envelope{"analysis": analysis})
	case actionSuggest:
		suggestion, err := h.Service.Suggest(ctx, req.LeadID)
		if err != nil {
			writeFailure(w, "AI", err)
			return
		}
		writeOK(w, envelope{"suggestion": suggestion})
	case actionSummarize:
		summary, err := h.Service.Summarize(ctx, req.LeadID)
		if err != nil {
			writeFailure(w, "AI", err)
			return
		}
		writeOK(w, envelope{"summary": summary})
	default:
		writeError(w, http.StatusBadRequest, "action must be one of analyze, suggest, summarize, daily_plan")
	}
}

func (h *AIHandler) Insights(w http.ResponseWriter, r *http.Request) {
	leadID, ok := requiredQueryID(w, r, "lead_id")
	if !ok {
		return
	}

	insights, err := h.Service.QuickInsights(r.Context(), leadID)
	if err != nil {
		writeFailure(w, "AI", err)
		return
	}
	writeOK(w, envelope{"insights": insights})
}
