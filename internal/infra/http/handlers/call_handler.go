package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/usecase"
)

type CallHandler struct {
	Calls entity.CallRepositoryInterface
	Leads entity.LeadRepositoryInterface
}

type callRequest struct {
	LeadID int64  `json:"lead_id"`
	Phone  string `json:"phone"`
}

// callEvent is the telephony provider's webhook payload.
type callEvent struct {
	LeadID int64 `json:"lead_id"`
	Call   struct {
		To           string `json:"to"`
		Direction    string `json:"direction"`
		Duration     int    `json:"duration"`
		RecordingURL string `json:"recording_url"`
		Status       string `json:"status"`
		CallID       string `json:"call_id"`
	} `json:"call"`
}

func (h *CallHandler) List(w http.ResponseWriter, r *http.Request) {
	leadID, ok := requiredQueryID(w, r, "lead_id")
	if !ok {
		return
	}

	calls, err := h.Calls.ListByLead(r.Context(), leadID)
	if err != nil {
		writeFailure(w, "CALLS", err)
		return
	}
	if calls == nil {
		calls = []entity.Call{}
	}
	writeOK(w, envelope{"calls": calls})
}

// Create logs an outbound call started from the board.
func (h *CallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req callRequest
	if !decodeBody(w, r, &req) {
		return
	}
	phone := strings.TrimSpace(req.Phone)
	if req.LeadID <= 0 || phone == "" {
		writeError(w, http.StatusBadRequest, "lead_id and phone required")
		return
	}

	c := &entity.Call{
		LeadID:      req.LeadID,
		PhoneNumber: phone,
		Direction:   entity.DirectionOutbound,
		Status:      entity.CallStatusInitiated,
	}
	if err := h.Calls.Create(r.Context(), c); err != nil {
		writeFailure(w, "CALLS", err)
		return
	}
	writeOK(w, envelope{"call_id": c.ID, "message": "Call initiated"})
}

func (h *CallHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var ev callEvent
	if !decodeBody(w, r, &ev) {
		return
	}
	ctx := r.Context()
	phone := strings.TrimSpace(ev.Call.To)

	leadID := ev.LeadID
	if leadID <= 0 {
		if phone == "" {
			writeError(w, http.StatusBadRequest, "lead_id or call.to required")
			return
		}
		id, err := h.Leads.FindIDByPhone(ctx, phone)
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusBadRequest, "No lead matches this phone number")
			return
		}
		if err != nil {
			writeFailure(w, "CALLS", err)
			return
		}
		leadID = id
	}

	c := &entity.Call{
		LeadID:       leadID,
		PhoneNumber:  phone,
		Direction:    ev.Call.Direction,
		Duration:     ev.Call.Duration,
		RecordingURL: usecase.OptionalText(ev.Call.RecordingURL),
		Status:       ev.Call.Status,
		ExternalID:   usecase.OptionalText(ev.Call.CallID),
	}
	if c.Direction == "" {
		c.Direction = entity.DirectionOutbound
	}
	if c.Direction != entity.DirectionOutbound && c.Direction != entity.DirectionInbound {
		writeError(w, http.StatusBadRequest, "direction must be inbound or outbound")
		return
	}
	if c.Status == "" {
		c.Status = entity.CallStatusCompleted
	}
	if c.Duration < 0 {
		c.Duration = 0
	}

	if err := h.Calls.Create(ctx, c); err != nil {
		writeFailure(w, "CALLS", err)
		return
	}
	writeOK(w, envelope{"call_id": c.ID})
}
