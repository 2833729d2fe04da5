package httpx

import (
	"encoding/json"
	"net/http"
)

// StatusResponse is the {code, message} body used for plain status replies and
// all error replies.
type StatusResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteStatus writes a {code, message} body with the status text for code.
func WriteStatus(w http.ResponseWriter, code int) {
	WriteJSON(w, code, StatusResponse{Code: code, Message: http.StatusText(code)})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
