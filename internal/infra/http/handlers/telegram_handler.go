package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/onedayhr/crm-api/internal/infra/http/middleware"
	"github.com/onedayhr/crm-api/internal/infra/integration/telegram"
)

type LeadMessenger interface {
	SendLead(ctx context.Context, m telegram.LeadMessage) error
}

type TelegramHandler struct {
	// Messenger is nil when bot credentials are missing.
	Messenger LeadMessenger
}

func (h *TelegramHandler) Notify(w http.ResponseWriter, r *http.Request) {
	if h.Messenger == nil {
		writeError(w, http.StatusInternalServerError, telegram.ErrNotConfigured.Error())
		return
	}

	var msg telegram.LeadMessage
	if !decodeBody(w, r, &msg) {
		return
	}

	if err := h.Messenger.SendLead(r.Context(), msg); err != nil {
		log.Printf("❌ [TELEGRAM] %v", err)
		middleware.RecordIntegrationError("telegram")
		writeError(w, http.StatusInternalServerError, "Telegram API error")
		return
	}
	writeOK(w, envelope{"message": "Notification sent"})
}
