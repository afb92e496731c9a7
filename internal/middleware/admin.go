package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/recipebox/internal/model"
)

// NewRequireAdminMiddleware はADMINロールを要求するミドルウェアを返す。
// Basic認証ミドルウェアの後に配置すること。
// ロールを持たないユーザーには403 Forbiddenを返す。
// 管理者専用操作（レシピ全削除・ユーザー削除）の認可はここで完結し、
// サービス層では追加のロールチェックを行わない。
func NewRequireAdminMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := PrincipalFromContext(r.Context())
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !principal.HasRole(model.RoleAdmin) {
				slog.Warn("admin permission denied",
					slog.Int64("user_id", principal.ID),
					slog.String("path", r.URL.Path),
				)
				WriteErrorResponse(w, http.StatusForbidden, &model.APIError{
					Code:     "ADMIN_REQUIRED",
					Message:  "この操作には管理者権限が必要です。",
					Category: "auth",
					Action:   "管理者アカウントでログインしてください。",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
