package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	appI18n "github.com/aulavirtual/tutoria/internal/i18n"
	"github.com/aulavirtual/tutoria/internal/llm"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError responds with the localized detail string for msgID.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	writeJSON(w, status, errorBody{
		Detail:    appI18n.T(r.Context(), msgID),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// writeErrorData is writeError with template data for the detail string.
func (h *Handler) writeErrorData(w http.ResponseWriter, r *http.Request, status int, msgID string, data map[string]any) {
	writeJSON(w, status, errorBody{
		Detail:    appI18n.Td(r.Context(), msgID, data),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// writeLLMError maps gateway errors to HTTP responses. unavailableStatus
// differs per endpoint: 502 for exercise generation, 503 for chat.
func (h *Handler) writeLLMError(w http.ResponseWriter, r *http.Request, err error, unavailableStatus int) {
	var unavail *llm.ErrUnavailable
	if errors.As(err, &unavail) {
		h.writeError(w, r, unavailableStatus, "ErrLLMUnavailable")
		return
	}
	var bad *llm.ErrBadResponse
	if errors.As(err, &bad) {
		h.writeError(w, r, http.StatusInternalServerError, "ErrLLMBadResponse")
		return
	}
	h.writeError(w, r, http.StatusInternalServerError, "ErrInternal")
}
