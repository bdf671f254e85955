package httpapi

import (
	"errors"
	"net/http"

	"signupform/internal/domain"
	"signupform/internal/validate"
)

type fieldCheckRequest struct {
	Value *string `json:"value"`
}

type fieldCheckResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type displayNameCheckResponse struct {
	Valid bool    `json:"valid"`
	Value *string `json:"value"`
}

// handleFieldCheck runs one form field through its validator, the way a
// form's per-field validate callback would on blur.
func (a *api) handleFieldCheck(w http.ResponseWriter, r *http.Request) {
	field := r.PathValue("field")

	var req fieldCheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if field == validate.FieldDisplayName {
		resp := displayNameCheckResponse{Valid: true}
		if name, ok := validate.DisplayName(req.Value); ok {
			resp.Value = &name
		}
		WriteJSON(w, http.StatusOK, resp)
		return
	}

	var value string
	if req.Value != nil {
		value = *req.Value
	}
	res, err := a.signupSvc.Check(field, value)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "unknown_field", "unknown field")
			return
		}
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, fieldCheckResponse{Valid: res.OK, Message: res.Message})
}
