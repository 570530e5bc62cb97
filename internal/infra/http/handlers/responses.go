package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/onedayhr/crm-api/internal/entity"
	"github.com/onedayhr/crm-api/internal/usecase"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeOK adds "success": true to fields.
func writeOK(w http.ResponseWriter, fields envelope) {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "error": message})
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

var sentinelStatus = []struct {
	err     error
	status  int
	message string
}{
	{entity.ErrLeadNotFound, http.StatusNotFound, "Lead not found"},
	{entity.ErrStageNotFound, http.StatusNotFound, "Stage not found"},
	{entity.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
	{entity.ErrLastStage, http.StatusBadRequest, "Cannot delete the last remaining stage"},
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeUnauthorized:
		return http.StatusUnauthorized
	case usecase.CodeForbidden:
		return http.StatusForbidden
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict:
		return http.StatusConflict
	case usecase.CodeNotConfigured:
		return http.StatusBadRequest
	case usecase.CodeValidation, usecase.CodeInvalidToken, usecase.CodeEmailExists:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeFailure maps a use case or repository error to the JSON envelope.
// Server-side failures are logged here, once.
func writeFailure(w http.ResponseWriter, op string, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeError(w, statusForCode(de.Code), de.Message)
		return
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			writeError(w, s.status, s.message)
			return
		}
	}

	log.Printf("❌ [%s] %v", op, err)
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeError(w, http.StatusInternalServerError, te.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, "Database error")
}

func writeValidation(w http.ResponseWriter, errs []usecase.ValidationError) bool {
	if len(errs) == 0 {
		return false
	}
	writeError(w, http.StatusBadRequest, usecase.ValidationFailed(errs).Message)
	return true
}

// decodeBody accepts an empty body as "{}".
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON")
	return false
}

// queryID parses an optional positive integer query parameter.
func queryID(r *http.Request, name string) (int64, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, errors.New(name + " must be a positive integer")
	}
	return id, true, nil
}

// queryInt parses an optional non-negative integer, 0 when absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return n, nil
}

// requiredQueryID writes a 400 and returns false when the parameter is missing or malformed.
func requiredQueryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, ok, err := queryID(r, name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	if !ok {
		writeError(w, http.StatusBadRequest, name+" required")
		return 0, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
