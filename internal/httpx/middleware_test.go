package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	handler := CORSMiddleware([]string{"http://localhost:3000", "http://localhost:5173"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("Expected CORS header for allowed origin, got %s", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Expected credentials to be allowed for a listed origin")
	}
	if w.Header().Get("Vary") != "Origin" {
		t.Errorf("Expected Vary: Origin, got %q", w.Header().Get("Vary"))
	}
}

func TestCORSMiddleware_DisallowedOrigin(t *testing.T) {
	handler := CORSMiddleware([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://evil.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("Expected no CORS header for disallowed origin, got %s", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	handler := CORSMiddleware([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected wildcard origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "" {
		t.Error("Expected no credentials for wildcard origin")
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	handler := CORSMiddleware([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	methods := w.Header().Get("Access-Control-Allow-Methods")
	if !strings.Contains(methods, "GET") || !strings.Contains(methods, "POST") {
		t.Errorf("Expected methods header to include GET and POST, got %s", methods)
	}
}

func TestCORSMiddleware_PlainOPTIONSPassesThrough(t *testing.T) {
	handler := CORSMiddleware([]string{"http://localhost:3000"})(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/test", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected non-preflight OPTIONS to reach the handler, got %d", w.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	RecoveryMiddleware(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 after panic, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("Expected error envelope, got %s", w.Body.String())
	}
}

func TestRecoveryMiddleware_AfterHeaderWritten(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	})

	w := httptest.NewRecorder()
	RecoveryMiddleware(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusAccepted {
		t.Errorf("Expected the committed status to stand, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected no error body once committed, got %s", w.Body.String())
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	SecurityHeadersMiddleware(true)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("Expected nosniff header")
	}
	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Error("Expected HSTS header when enabled")
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(8)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 64)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	}))

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"propagates caller id", "req-123", true},
		{"generates when missing", "", false},
		{"replaces id with spaces", "bad id", false},
		{"replaces oversized id", strings.Repeat("a", 200), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-Id", tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if seen == "" {
				t.Fatal("expected request id in context")
			}
			if got := rec.Header().Get("X-Request-Id"); got != seen {
				t.Errorf("header %q does not match context %q", got, seen)
			}
			if tt.keep && seen != tt.incoming {
				t.Errorf("expected %q to be kept, got %q", tt.incoming, seen)
			}
			if !tt.keep && seen == tt.incoming {
				t.Errorf("expected %q to be replaced", tt.incoming)
			}
		})
	}
}
