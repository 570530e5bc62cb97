package handlers

import (
	"net/http"
	"strings"

	"github.com/onedayhr/crm-api/internal/entity"
)

type CommentHandler struct {
	Comments entity.CommentRepositoryInterface
}

type commentRequest struct {
	LeadID     int64  `json:"lead_id"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	leadID, ok := requiredQueryID(w, r, "lead_id")
	if !ok {
		return
	}

	comments, err := h.Comments.ListByLead(r.Context(), leadID)
	if err != nil {
		writeFailure(w, "COMMENTS", err)
		return
	}
	if comments == nil {
		comments = []entity.Comment{}
	}
	writeOK(w, envelope{"comments": comments})
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if req.LeadID <= 0 || text == "" {
		writeError(w, http.StatusBadRequest, "lead_id and text required")
		return
	}

	author := strings.TrimSpace(req.AuthorName)
	if author == "" {
		author = entity.DefaultCommentAuthor
	}

	c := &entity.Comment{LeadID: req.LeadID, AuthorName: author, Text: text}
	if err := h.Comments.Create(r.Context(), c); err != nil {
		writeFailure(w, "COMMENTS", err)
		return
	}
	writeOK(w, envelope{"comment_id": c.ID})
}
