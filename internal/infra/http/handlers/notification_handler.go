package handlers

import (
	"net/http"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/usecase"
)

type NotificationHandler struct {
	Service *usecase.NotificationService
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := usecase.ParseNotificationFilter(r.URL.Query().Get("type"))
	if err != nil {
		writeFailure(w, "NOTIFICATIONS", err)
		return
	}

	feed, err := h.Service.Feed(r.Context(), filter)
	if err != nil {
		writeFailure(w, "NOTIFICATIONS", err)
		return
	}
	if feed.Notifications == nil {
		feed.Notifications = []entity.Notification{}
	}

	writeOK(w, envelope{
		"notifications": feed.Notifications,
		"total":         feed.Total,
		"unread":        feed.Unread,
	})
}
