package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	handler := func(status int) http.Handler {
		return RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
	}

	tests := []struct {
		name   string
		path   string
		status int
		want   string
	}{
		{"ok request at info", "/api/accounts", http.StatusOK, "level=INFO"},
		{"client error at warn", "/api/accounts", http.StatusNotFound, "level=WARN"},
		{"server error at error", "/api/sweep", http.StatusInternalServerError, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			w := httptest.NewRecorder()
			handler(tt.status).ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}

	// Healthy health probes stay below the info threshold.
	buf.Reset()
	w := httptest.NewRecorder()
	handler(http.StatusOK).ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if buf.Len() != 0 {
		t.Errorf("health probe logged at info: %q", buf.String())
	}

	// But a failing health check is still an error.
	buf.Reset()
	w = httptest.NewRecorder()
	handler(http.StatusInternalServerError).ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Errorf("failing health probe log = %q, want level=ERROR", buf.String())
	}
}
