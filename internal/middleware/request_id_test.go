package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestRequestIDMiddleware_GeneratesID はリクエストIDが採番され、
// レスポンスヘッダーとコンテキストの両方に設定されることを検証する。
func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var ctxID string
	handler := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	headerID := rec.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("expected X-Request-ID response header")
	}
	if ctxID != headerID {
		t.Errorf("context ID = %q, header ID = %q, want same value", ctxID, headerID)
	}
}

// TestRequestIDMiddleware_HonorsInboundID はクライアント指定のIDが引き継がれることを検証する。
func TestRequestIDMiddleware_HonorsInboundID(t *testing.T) {
	handler := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied-id" {
		t.Errorf("X-Request-ID = %q, want %q", got, "client-supplied-id")
	}
}

// TestRequestIDFromContext_NotSet は未設定時に空文字列を返すことを検証する。
func TestRequestIDFromContext_NotSet(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want \"\"", got)
	}
}
