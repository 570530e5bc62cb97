package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/usecase"
)

type LeadHandler struct {
	Leads    entity.LeadRepositoryInterface
	Stages   entity.StageRepositoryInterface
	Tasks    entity.TaskRepositoryInterface
	Comments entity.CommentRepositoryInterface
	Calls    entity.CallRepositoryInterface
}

type leadRequest struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	Email    string          `json:"email"`
	Company  string          `json:"company"`
	Vacancy  string          `json:"vacancy"`
	Source   string          `json:"source"`
	Priority entity.Priority `json:"priority"`
	StageID  *int64          `json:"stage_id"`
	Notes    string          `json:"notes"`
}

func (req leadRequest) lead() *entity.Lead {
	if req.Priority == "" {
		req.Priority = entity.PriorityMedium
	}
	return &entity.Lead{
		ID:       req.ID,
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Email:    usecase.OptionalText(req.Email),
		Company:  usecase.OptionalText(req.Company),
		Vacancy:  usecase.OptionalText(req.Vacancy),
		Source:   strings.TrimSpace(req.Source),
		Priority: req.Priority,
		StageID:  req.StageID,
		Notes:    usecase.OptionalText(req.Notes),
	}
}

type leadPatchRequest struct {
	ID int64 `json:"id"`
	entity.LeadPatch
}

// List serves both the board (no id) and a single lead with its activity (?id=N).
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, single, err := queryID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if single {
		h.details(w, r, id)
		return
	}

	var filter entity.LeadFilter
	if stageID, ok, err := queryID(r, "stage_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		filter.StageID = &stageID
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	leads, err := h.Leads.List(ctx, filter)
	if err != nil {
		writeFailure(w, "LEADS", err)
		return
	}
	stages, err := h.Stages.List(ctx)
	if err != nil {
		writeFailure(w, "LEADS", err)
		return
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	if stages == nil {
		stages = []entity.Stage{}
	}

	writeOK(w, envelope{"leads": leads, "stages": stages, "total": len(leads)})
}

func (h *LeadHandler) details(w http.ResponseWriter, r *http.Request, id int64) {
	ctx := r.Context()

	lead, err := h.Leads.FindByID(ctx, id)
	if err != nil {
		writeFailure(w, "LEADS", err)
		return
	}

	d := entity.LeadDetails{Lead: *lead, Tasks: []entity.Task{}, Comments: []entity.Comment{}, Calls: []entity.Call{}}
	if tasks, err := h.Tasks.ListByLead(ctx, id); err != nil {
		writeFailure(w, "LEADS", err)
		return
	} else if tasks != nil {
		d.Tasks = newestTasksFirst(tasks)
	}
	if comments, err := h.Comments.ListByLead(ctx, id); err != nil {
		writeFailure(w, "LEADS", err)
		return
	} else if comments != nil {
		d.Comments = comments
	}
	if calls, err := h.Calls.ListByLead(ctx, id); err != nil {
		writeFailure(w, "LEADS", err)
		return
	} else if calls != nil {
		d.Calls = calls
	}

	writeOK(w, envelope{"lead": d})
}

// newestTasksFirst reorders the due-date listing by creation time for the lead card.
func newestTasksFirst(tasks []entity.Task) []entity.Task {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	lead := req.lead()
	if lead.Source == "" {
		lead.Source = entity.SourceManual
	}
	if writeValidation(w, usecase.ValidateLeadFields(lead.Name, lead.Phone, lead.Priority)) {
		return
	}

	if err := h.Leads.Create(r.Context(), lead); err != nil {
		writeFailure(w, "LEADS", err)
		return
	}
	writeOK(w, envelope{"lead_id": lead.ID})
}

func (h *LeadHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "Lead ID required")
		return
	}

	lead := req.lead()
	if writeValidation(w, usecase.ValidateLeadFields(lead.Name, lead.Phone, lead.Priority)) {
		return
	}

	if err := h.Leads.Replace(r.Context(), lead); err != nil {
		writeFailure(w, "LEADS", err)
		return
	}
	writeOK(w, nil)
}

func (h *LeadHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req leadPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "Lead ID required")
		return
	}
	if writeValidation(w, usecase.ValidateLeadPatch(req.LeadPatch)) {
		return
	}

	if err := h.Leads.Patch(r.Context(), req.ID, req.LeadPatch); err != nil {
		writeFailure(w, "LEADS", err)
		return
	}
	writeOK(w, nil)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.Leads.Delete(r.Context(), id); err != nil {
		writeFailure(w, "LEADS", err)
		return
	}
	writeOK(w, nil)
}
