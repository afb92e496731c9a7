package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/recipebox/internal/model"
)

// --- モック ---

type mockVerifier struct {
	verifyFn func(ctx context.Context, email, rawPassword string) (*model.User, error)
}

func (m *mockVerifier) Verify(ctx context.Context, email, rawPassword string) (*model.User, error) {
	return m.verifyFn(ctx, email, rawPassword)
}

// --- テスト ---

// TestBasicAuthMiddleware_ValidCredentials は正しい認証情報で
// プリンシパルがコンテキストに注入されることを検証する。
func TestBasicAuthMiddleware_ValidCredentials(t *testing.T) {
	verifier := &mockVerifier{
		verifyFn: func(ctx context.Context, email, rawPassword string) (*model.User, error) {
			if email != "cook@example.com" || rawPassword != "secret-password" {
				t.Errorf("Verify called with (%q, %q)", email, rawPassword)
			}
			return &model.User{ID: 42, Email: email}, nil
		},
	}

	var principal *model.User
	handler := NewBasicAuthMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/recipe/1", nil)
	req.SetBasicAuth("cook@example.com", "secret-password")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if principal == nil || principal.ID != 42 {
		t.Errorf("principal = %v, want user 42 in context", principal)
	}
}

// TestBasicAuthMiddleware_MissingHeader はAuthorizationヘッダーなしで
// 401とWWW-Authenticateが返ることを検証する。
func TestBasicAuthMiddleware_MissingHeader(t *testing.T) {
	verifier := &mockVerifier{
		verifyFn: func(ctx context.Context, email, rawPassword string) (*model.User, error) {
			t.Error("Verify should not be called without credentials")
			return nil, nil
		},
	}

	handler := NewBasicAuthMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/recipe/1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header")
	}
}

// TestBasicAuthMiddleware_InvalidCredentials は認証失敗で401が返ることを検証する。
func TestBasicAuthMiddleware_InvalidCredentials(t *testing.T) {
	verifier := &mockVerifier{
		verifyFn: func(ctx context.Context, email, rawPassword string) (*model.User, error) {
			return nil, model.NewInvalidCredentialsError()
		},
	}

	handler := NewBasicAuthMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/recipe/1", nil)
	req.SetBasicAuth("cook@example.com", "wrong-password")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// TestPrincipalFromContext_NotSet はプリンシパル未設定のコンテキストで
// エラーが返ることを検証する。
func TestPrincipalFromContext_NotSet(t *testing.T) {
	_, err := PrincipalFromContext(context.Background())
	if err == nil {
		t.Fatal("expected error for context without principal, got nil")
	}
}

// TestContextWithPrincipal はヘルパーで注入したプリンシパルが取得できることを検証する。
func TestContextWithPrincipal(t *testing.T) {
	user := &model.User{ID: 7, Email: "cook@example.com"}
	ctx := ContextWithPrincipal(context.Background(), user)

	got, err := PrincipalFromContext(ctx)
	if err != nil {
		t.Fatalf("PrincipalFromContext returned error: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("ID = %d, want 7", got.ID)
	}
}
