package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Envelope is the structured response wrapper used by every endpoint.
type Envelope struct {
	StatusCode       int       `json:"statusCode"`
	Status           string    `json:"status"`
	Response         any       `json:"response"`
	Message          string    `json:"message"`
	Reason           string    `json:"reason"`
	DeveloperMessage string    `json:"developerMessage"`
	Timestamp        time.Time `json:"timestamp"`
}

// NewEnvelope builds an envelope for the given status code and payload.
func NewEnvelope(statusCode int, payload any, message, reason, developerMessage string) Envelope {
	return Envelope{
		StatusCode:       statusCode,
		Status:           statusLabel(statusCode),
		Response:         payload,
		Message:          message,
		Reason:           reason,
		DeveloperMessage: developerMessage,
		Timestamp:        time.Now().UTC(),
	}
}

// WriteEnvelope serializes the envelope with its status code.
func WriteEnvelope(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	json.NewEncoder(w).Encode(env)
}

// statusLabel renders an HTTP status code in the envelope's
// upper-snake status convention, e.g. 401 -> "UNAUTHORIZED".
func statusLabel(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
