package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestSetupRouter_Health(t *testing.T) {
	r := chi.NewRouter()
	SetupRouter(r)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
	}
}

func TestSetupRouter_RequestID(t *testing.T) {
	r := chi.NewRouter()
	SetupRouter(r)
	r.Get("/echo", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(RequestIDFromContext(req.Context())))
	})

	// Generated when absent
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected generated request id header")
	}

	// Propagated when provided
	req = httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if got := rr.Body.String(); got != "rid-123" {
		t.Fatalf("expected request id 'rid-123' in context, got %q", got)
	}
	if got := rr.Header().Get("X-Request-Id"); got != "rid-123" {
		t.Fatalf("expected request id header 'rid-123', got %q", got)
	}
}
