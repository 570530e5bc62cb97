package handlers

import (
	"net/http"

	"github.com/onedayhr/crm-api/internal/usecase"
)

type CaptureHandler struct {
	UseCase *usecase.CaptureLeadUseCase
}

func NewCaptureHandler(uc *usecase.CaptureLeadUseCase) *CaptureHandler {
	return &CaptureHandler{UseCase: uc}
}

// Handle serves the public landing form. Rate limiting is applied by the router.
func (h *CaptureHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CaptureLeadInput
	if !decodeBody(w, r, &input) {
		return
	}

	out, err := h.UseCase.Execute(r.Context(), input)
	if err != nil {
		writeFailure(w, "CAPTURE", err)
		return
	}

	writeOK(w, envelope{"lead_id": out.LeadID, "message": out.Message})
}
