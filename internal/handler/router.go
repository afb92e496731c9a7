// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/recipebox/internal/metrics"
	"github.com/hitoshi/recipebox/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	Verifier          middleware.CredentialVerifier
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス
	Metrics  metrics.MetricsCollector
	Gatherer prometheus.Gatherer

	// ドメインサービス
	RecipeService RecipeServiceInterface
	UserService   UserServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → SecurityHeaders → CORS → Logging
//
// 認証が必要なルートはさらにBasicAuth → RateLimit(General)を通過する。
// /health、/metrics、POST /api/register は認証不要。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// 全ルート共通のミドルウェア
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(logger, deps.Metrics))

	recipeHandler := NewRecipeHandler(deps.RecipeService)
	userHandler := NewUserHandler(deps.UserService, deps.Metrics)

	// --- 認証不要のルート ---

	// ヘルスチェック
	r.Get("/health", newHealthHandler(deps.HealthChecker))

	// Prometheusスクレイプ
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// ユーザー登録（IP単位のレート制限を適用）
	r.With(deps.RateLimiter.RegistrationMiddleware()).Post("/api/register", userHandler.Register)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: BasicAuth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewBasicAuthMiddleware(deps.Verifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// レシピ管理
		r.Route("/api/recipe", func(r chi.Router) {
			r.Post("/new", recipeHandler.New)
			r.Get("/search", recipeHandler.Search)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", recipeHandler.Get)
				r.Put("/", recipeHandler.Update)
				r.Delete("/", recipeHandler.Delete)
			})

			// 管理者専用: 全レシピ削除
			r.With(middleware.NewRequireAdminMiddleware()).Delete("/delete", recipeHandler.DeleteAll)
		})

		// 管理者専用: ユーザー削除（所有レシピごと削除する）
		r.With(middleware.NewRequireAdminMiddleware()).Delete("/api/deleteuser/{id}", userHandler.DeleteUser)
	})

	return r
}

// newHealthHandler はDB接続を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed",
					slog.String("error", err.Error()),
				)
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}
}
