package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestLogging_LogsStatusAndRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})
	h := chiMiddleware.RequestID(WithRequestLogging(logger)(next))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stager", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rec.Code)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodPost || fields["path"] != "/stager" {
		t.Errorf("unexpected method/path fields: %v", fields)
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status field = %v; want %d", fields["status"], http.StatusTeapot)
	}
	if fields["bytes"] != int64(len("short and stout")) {
		t.Errorf("bytes field = %v", fields["bytes"])
	}
	if id, _ := fields["request_id"].(string); id == "" {
		t.Error("expected request_id to be logged")
	}
}

func TestWithRequestLogging_DefaultStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := WithRequestLogging(zap.New(core))(next)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusOK) {
		t.Errorf("status field = %v; want 200", got)
	}
}
