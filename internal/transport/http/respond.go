package http

import (
	"encoding/json"
	"net/http"

	"github.com/strogmv/chatpush/internal/pkg/apperr"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	writeJSON(w, e.Status, errorBody{
		Error: errorDetail{
			Code:    e.Code,
			Message: e.Message,
		},
	})
}
