package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/usecase"
)

type TaskHandler struct {
	Tasks entity.TaskRepositoryInterface
}

type taskRequest struct {
	LeadID      int64           `json:"lead_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     string          `json:"due_date"`
	Priority    entity.Priority `json:"priority"`
}

type taskPatchRequest struct {
	ID          int64                            `json:"id"`
	Title       entity.Optional[string]          `json:"title"`
	Description entity.Optional[string]          `json:"description"`
	DueDate     entity.Optional[string]          `json:"due_date"`
	Priority    entity.Optional[entity.Priority] `json:"priority"`
	Completed   entity.Optional[bool]            `json:"completed"`
}

var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

var errDueDate = errors.New("due_date must be RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD")

// ParseDueDate reads the date formats the board's date pickers send. Zoneless values are local time.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, errDueDate
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	leadID, ok := requiredQueryID(w, r, "lead_id")
	if !ok {
		return
	}

	tasks, err := h.Tasks.ListByLead(r.Context(), leadID)
	if err != nil {
		writeFailure(w, "TASKS", err)
		return
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	writeOK(w, envelope{"tasks": tasks})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.LeadID <= 0 || strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "lead_id and title required")
		return
	}
	if req.Priority == "" {
		req.Priority = entity.PriorityMedium
	}
	if !req.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "priority must be one of low, medium, high")
		return
	}
	due, err := ParseDueDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task := &entity.Task{
		LeadID:      req.LeadID,
		Title:       strings.TrimSpace(req.Title),
		Description: usecase.OptionalText(req.Description),
		DueDate:     due,
		Priority:    req.Priority,
	}
	if err := h.Tasks.Create(r.Context(), task); err != nil {
		writeFailure(w, "TASKS", err)
		return
	}
	writeOK(w, envelope{"task_id": task.ID})
}

func (req taskPatchRequest) patch() (entity.TaskPatch, error) {
	p := entity.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
	}
	if req.DueDate.Set {
		if req.DueDate.Null || strings.TrimSpace(req.DueDate.Value) == "" {
			p.DueDate = entity.Null[time.Time]()
		} else {
			due, err := ParseDueDate(req.DueDate.Value)
			if err != nil {
				return p, err
			}
			p.DueDate = entity.Some(*due)
		}
	}
	if p.Title.Set && (p.Title.Null || strings.TrimSpace(p.Title.Value) == "") {
		return p, errors.New("title cannot be empty")
	}
	if p.Priority.Set && (p.Priority.Null || !p.Priority.Value.Valid()) {
		return p, errors.New("priority must be one of low, medium, high")
	}
	if p.Completed.Set && p.Completed.Null {
		return p, errors.New("completed cannot be null")
	}
	// A bare {"id": N} marks the task done.
	if p.Empty() {
		p.Completed = entity.Some(true)
	}
	return p, nil
}

func (h *TaskHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req taskPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "Task ID required")
		return
	}

	patch, err := req.patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Tasks.Patch(r.Context(), req.ID, patch); err != nil {
		writeFailure(w, "TASKS", err)
		return
	}
	writeOK(w, nil)
}
