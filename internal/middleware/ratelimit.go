package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig はレート制限の設定を保持する。
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // API全般のレート（req/sec）。120/60 = 2 req/sec
	GeneralBurst    int           // API全般のバーストサイズ
	RegisterRate    rate.Limit    // ユーザー登録のレート（req/sec）。10/60
	RegisterBurst   int           // ユーザー登録のバーストサイズ
	CleanupInterval time.Duration // 期限切れエントリのクリーンアップ間隔
}

// DefaultRateLimiterConfig はデフォルトのレート制限設定を返す。
// 要件: API全般 120 req/min/user、ユーザー登録 10 req/min/IP
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(120.0 / 60.0), // 2 req/sec
		GeneralBurst:    120,
		RegisterRate:    rate.Limit(10.0 / 60.0), // ~0.167 req/sec
		RegisterBurst:   10,
		CleanupInterval: 5 * time.Minute,
	}
}

// keyLimiter はキーごとのレートリミッターとアクセス時刻を保持する。
type keyLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter はキーごとのレート制限を管理する。
// 認証済みAPI全般のユーザー単位制限と、匿名登録エンドポイントのIP単位制限の
// 2種類を提供する。
type RateLimiter struct {
	config RateLimiterConfig

	generalMu       sync.RWMutex
	generalLimiters map[string]*keyLimiter

	registerMu       sync.RWMutex
	registerLimiters map[string]*keyLimiter

	stopCh chan struct{}
}

// NewRateLimiter は新しいRateLimiterを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:           config,
		generalLimiters:  make(map[string]*keyLimiter),
		registerLimiters: make(map[string]*keyLimiter),
		stopCh:           make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware はAPI全般のレート制限ミドルウェアを返す。
// リクエストコンテキストに認証済みユーザーが含まれている必要がある
// （Basic認証ミドルウェアの後に配置）。
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := PrincipalFromContext(r.Context())
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			key := strconv.FormatInt(principal.ID, 10)
			limiter := rl.getOrCreateLimiter(&rl.generalMu, rl.generalLimiters, key, rl.config.GeneralRate, rl.config.GeneralBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.GeneralRate)
				slog.Warn("rate limit exceeded",
					slog.Int64("user_id", principal.ID),
					slog.String("limit_type", "general"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RegistrationMiddleware はユーザー登録専用のレート制限ミドルウェアを返す。
// 登録は匿名リクエストのため、リモートIPアドレス単位で制限する。
func (rl *RateLimiter) RegistrationMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := remoteIP(r)
			limiter := rl.getOrCreateLimiter(&rl.registerMu, rl.registerLimiters, key, rl.config.RegisterRate, rl.config.RegisterBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.RegisterRate)
				slog.Warn("rate limit exceeded",
					slog.String("remote_ip", key),
					slog.String("limit_type", "registration"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getOrCreateLimiter はキーに対応するリミッターを取得または作成し、
// 最終アクセス時刻を更新する。
func (rl *RateLimiter) getOrCreateLimiter(mu *sync.RWMutex, limiters map[string]*keyLimiter, key string, r rate.Limit, burst int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	kl, ok := limiters[key]
	if !ok {
		kl = &keyLimiter{
			limiter: rate.NewLimiter(r, burst),
		}
		limiters[key] = kl
	}
	kl.lastAccess = time.Now()

	return kl.limiter
}

// cleanupLoop は一定間隔で長時間アクセスのないエントリを削除する。
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.config.CleanupInterval)
			rl.cleanup(&rl.generalMu, rl.generalLimiters, cutoff)
			rl.cleanup(&rl.registerMu, rl.registerLimiters, cutoff)
		}
	}
}

// cleanup はcutoffより前にしかアクセスされていないエントリを削除する。
func (rl *RateLimiter) cleanup(mu *sync.RWMutex, limiters map[string]*keyLimiter, cutoff time.Time) {
	mu.Lock()
	defer mu.Unlock()

	for key, kl := range limiters {
		if kl.lastAccess.Before(cutoff) {
			delete(limiters, key)
		}
	}
}

// remoteIP はリクエストの送信元IPアドレスを返す。
// ポート番号を含む場合は取り除く。
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeRateLimitResponse は429レスポンスをRetry-Afterヘッダー付きで書き込む。
func writeRateLimitResponse(w http.ResponseWriter, limit rate.Limit) {
	retryAfter := 1
	if limit > 0 {
		retryAfter = int(math.Ceil(1.0 / float64(limit)))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     "RATE_LIMIT_EXCEEDED",
		Message:  "リクエスト数が制限を超えています。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}
