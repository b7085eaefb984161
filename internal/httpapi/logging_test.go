package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingMiddlewareRequestID(t *testing.T) {
	var seen string
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusTeapot)
	}))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if seen == "" || resp.Header().Get("X-Request-ID") != seen {
		t.Fatalf("expected generated request id to be echoed, got %q / %q", seen, resp.Header().Get("X-Request-ID"))
	}
	if resp.Code != http.StatusTeapot {
		t.Fatalf("expected wrapped status, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if seen != "req-42" || resp.Header().Get("X-Request-ID") != "req-42" {
		t.Fatalf("expected incoming request id to be kept, got %q", seen)
	}
}
