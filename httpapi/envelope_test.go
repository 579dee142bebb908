package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{http.StatusOK, "OK"},
		{http.StatusUnauthorized, "UNAUTHORIZED"},
		{http.StatusForbidden, "FORBIDDEN"},
		{http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{999, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.code); got != tt.want {
			t.Errorf("statusLabel(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestWriteEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteEnvelope(rec, NewEnvelope(http.StatusForbidden, nil,
		"denied", "Access Denied", "details"))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.StatusCode != http.StatusForbidden {
		t.Errorf("statusCode = %d, want 403", env.StatusCode)
	}
	if env.Status != "FORBIDDEN" {
		t.Errorf("status = %q, want FORBIDDEN", env.Status)
	}
	if env.Reason != "Access Denied" {
		t.Errorf("reason = %q, want Access Denied", env.Reason)
	}
	if env.Timestamp.IsZero() {
		t.Error("timestamp is zero")
	}
}
