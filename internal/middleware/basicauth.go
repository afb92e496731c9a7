// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/recipebox/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// principalContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var principalContextKey = contextKey("principal")

// CredentialVerifier は認証情報の検証に必要なインターフェース。
// auth.Serviceの部分集合として定義する。
type CredentialVerifier interface {
	Verify(ctx context.Context, email, rawPassword string) (*model.User, error)
}

// NewBasicAuthMiddleware はHTTP Basic認証ヘッダーから認証情報を読み取り、
// 検証するミドルウェアを返す。
// 認証済みユーザーをリクエストコンテキストに注入する。
// 未認証リクエストには401 Unauthorizedを返す。
func NewBasicAuthMiddleware(verifier CredentialVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーから認証情報を取得
			email, password, ok := r.BasicAuth()
			if !ok || email == "" {
				w.Header().Set("WWW-Authenticate", `Basic realm="recipebox"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			// 2. 認証情報を検証し、プリンシパルを解決
			principal, err := verifier.Verify(r.Context(), email, password)
			if err != nil {
				slog.Warn("authentication failed",
					slog.String("email", email),
				)
				w.Header().Set("WWW-Authenticate", `Basic realm="recipebox"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			// 3. 認証済みユーザーをコンテキストに注入
			ctx := context.WithValue(r.Context(), principalContextKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// Basic認証ミドルウェアを通過したリクエストでのみ有効。
func PrincipalFromContext(ctx context.Context) (*model.User, error) {
	principal, ok := ctx.Value(principalContextKey).(*model.User)
	if !ok || principal == nil {
		return nil, fmt.Errorf("principal not found in context")
	}
	return principal, nil
}

// ContextWithPrincipal はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithPrincipal(ctx context.Context, principal *model.User) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}
