package http

import (
	"encoding/json"
	"net/http"
)

// ErrorDetail is the error body the dashboard expects: a single detail
// message alongside the status code.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// WriteJSON writes a success payload as-is.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteDetail writes the normalized error body.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorDetail{Detail: detail})
}
