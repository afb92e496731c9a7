package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/recipebox/internal/model"
)

func testRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(1.0 / 60.0),
		GeneralBurst:    2,
		RegisterRate:    rate.Limit(1.0 / 60.0),
		RegisterBurst:   2,
		CleanupInterval: time.Hour,
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestGeneralMiddleware_WithinLimit はバースト内のリクエストが通過することを検証する。
func TestGeneralMiddleware_WithinLimit(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())
	user := &model.User{ID: 1}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/recipe/1", nil)
		req = req.WithContext(ContextWithPrincipal(req.Context(), user))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}

// TestGeneralMiddleware_ExceedsLimit はバースト超過で429とRetry-Afterが返ることを検証する。
func TestGeneralMiddleware_ExceedsLimit(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())
	user := &model.User{ID: 1}

	var lastRec *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/recipe/1", nil)
		req = req.WithContext(ContextWithPrincipal(req.Context(), user))
		lastRec = httptest.NewRecorder()
		handler.ServeHTTP(lastRec, req)
	}

	if lastRec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", lastRec.Code, http.StatusTooManyRequests)
	}
	if lastRec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429 response")
	}
}

// TestGeneralMiddleware_PerUserLimit はユーザーごとに独立した制限であることを検証する。
func TestGeneralMiddleware_PerUserLimit(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	// user 1 の枠を使い切る
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/recipe/1", nil)
		req = req.WithContext(ContextWithPrincipal(req.Context(), &model.User{ID: 1}))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// user 2 は影響を受けない
	req := httptest.NewRequest(http.MethodGet, "/api/recipe/1", nil)
	req = req.WithContext(ContextWithPrincipal(req.Context(), &model.User{ID: 2}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (other user should not be limited)", rec.Code, http.StatusOK)
	}
}

// TestGeneralMiddleware_NoPrincipal はプリンシパルなしのリクエストが401になることを検証する。
func TestGeneralMiddleware_NoPrincipal(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/recipe/1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// TestRegistrationMiddleware_PerIPLimit は登録エンドポイントがIP単位で制限されることを検証する。
func TestRegistrationMiddleware_PerIPLimit(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.RegistrationMiddleware()(okHandler())

	// 同一IPからバースト超過
	var lastRec *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
		req.RemoteAddr = "203.0.113.1:12345"
		lastRec = httptest.NewRecorder()
		handler.ServeHTTP(lastRec, req)
	}

	if lastRec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", lastRec.Code, http.StatusTooManyRequests)
	}

	// 別IPは影響を受けない
	req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
	req.RemoteAddr = "203.0.113.2:12345"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (other IP should not be limited)", rec.Code, http.StatusOK)
	}
}

// TestRemoteIP はポート付きRemoteAddrからIPのみが取り出されることを検証する。
func TestRemoteIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.1:54321"

	if got := remoteIP(req); got != "203.0.113.1" {
		t.Errorf("remoteIP = %q, want %q", got, "203.0.113.1")
	}

	req.RemoteAddr = "203.0.113.9"
	if got := remoteIP(req); got != "203.0.113.9" {
		t.Errorf("remoteIP = %q, want %q", got, "203.0.113.9")
	}
}

// TestRateLimiter_Cleanup は期限切れエントリが削除されることを検証する。
func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	rl.getOrCreateLimiter(&rl.generalMu, rl.generalLimiters, "stale", rl.config.GeneralRate, rl.config.GeneralBurst)

	// 最終アクセスを過去に書き換えてクリーンアップ対象にする
	rl.generalMu.Lock()
	rl.generalLimiters["stale"].lastAccess = time.Now().Add(-2 * time.Hour)
	rl.generalMu.Unlock()

	rl.cleanup(&rl.generalMu, rl.generalLimiters, time.Now().Add(-time.Hour))

	rl.generalMu.RLock()
	_, exists := rl.generalLimiters["stale"]
	rl.generalMu.RUnlock()

	if exists {
		t.Error("expected stale entry to be removed by cleanup")
	}
}
