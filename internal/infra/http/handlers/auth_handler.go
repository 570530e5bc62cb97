package handlers

import (
	"net/http"

	"github.com/onedayhr/crm-api/internal/usecase"
)

const headerUserEmail = "X-User-Email"

type AuthHandler struct {
	Service *usecase.AuthService
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeBody(w, r, &input) {
		return
	}

	out, err := h.Service.Login(r.Context(), input)
	if err != nil {
		writeFailure(w, "AUTH", err)
		return
	}
	writeOK(w, envelope{"token": out.Token, "user": out.User, "message": "Login successful"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if !decodeBody(w, r, &input) {
		return
	}

	out, err := h.Service.Register(r.Context(), input)
	if err != nil {
		writeFailure(w, "AUTH", err)
		return
	}
	writeOK(w, envelope{"user_id": out.UserID, "message": out.Message})
}

func (h *AuthHandler) GenerateInvite(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateInviteInput
	if !decodeBody(w, r, &input) {
		return
	}

	out, err := h.Service.GenerateInvite(r.Context(), r.Header.Get(headerUserEmail), input)
	if err != nil {
		writeFailure(w, "AUTH", err)
		return
	}
	writeOK(w, envelope{
		"invite_id":  out.InviteID,
		"token":      out.Token,
		"invite_url": out.InviteURL,
		"expires_at": out.ExpiresAt,
		"max_uses":   out.MaxUses,
	})
}

type resetRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.Service.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		writeFailure(w, "AUTH", err)
		return
	}
	body := envelope{"message": out.Message}
	if out.Token != "" {
		body["token"] = out.Token
		body["expires_at"] = out.ExpiresAt
	}
	writeOK(w, body)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input usecase.ResetPasswordInput
	if !decodeBody(w, r, &input) {
		return
	}

	if err := h.Service.ResetPassword(r.Context(), input); err != nil {
		writeFailure(w, "AUTH", err)
		return
	}
	writeOK(w, envelope{"message": "Password has been reset successfully"})
}
