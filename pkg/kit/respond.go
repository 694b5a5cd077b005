package kit

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Messages carry literal '>' and accented text.
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// WriteError keeps the body to {"message": ...}; the request id travels in a header.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteErrorBody(w, r, status, ErrorResponse{Message: msg})
}

func WriteErrorBody(w http.ResponseWriter, r *http.Request, status int, body any) {
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		w.Header().Set("X-Request-Id", reqID)
	}
	WriteJSON(w, status, body)
}
