package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/usecase"
)

type StageHandler struct {
	Stages entity.StageRepositoryInterface
}

type stageRequest struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position *int   `json:"position"`
}

type stagePatchRequest struct {
	ID int64 `json:"id"`
	entity.StagePatch
}

func (h *StageHandler) List(w http.ResponseWriter, r *http.Request) {
	stages, err := h.Stages.List(r.Context())
	if err != nil {
		writeFailure(w, "STAGES", err)
		return
	}
	if stages == nil {
		stages = []entity.Stage{}
	}
	writeOK(w, envelope{"stages": stages})
}

func (h *StageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req stageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stage := &entity.Stage{Name: strings.TrimSpace(req.Name), Color: strings.TrimSpace(req.Color)}
	if writeValidation(w, usecase.Required("name", stage.Name)) {
		return
	}
	if stage.Color == "" {
		stage.Color = entity.DefaultStageColor
	}

	if err := h.Stages.Create(r.Context(), stage, req.Position); err != nil {
		writeFailure(w, "STAGES", err)
		return
	}
	writeOK(w, envelope{"stage_id": stage.ID})
}

func (h *StageHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req stagePatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "Stage ID required")
		return
	}
	if writeValidation(w, usecase.ValidateStagePatch(req.StagePatch)) {
		return
	}

	if err := h.Stages.Patch(r.Context(), req.ID, req.StagePatch); err != nil {
		writeFailure(w, "STAGES", err)
		return
	}
	writeOK(w, nil)
}

func (h *StageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.Stages.Delete(r.Context(), id); err != nil {
		writeFailure(w, "STAGES", err)
		return
	}
	writeOK(w, nil)
}
