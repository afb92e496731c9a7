// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
	RecordUserRegistered()
	RecordRecipeCreated()
	RecordRecipeUpdated()
	RecordRecipeDeleted()
	RecordRecipeSearch(kind string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration prometheus.Histogram
	usersRegistered prometheus.Counter
	recipesCreated  prometheus.Counter
	recipesUpdated  prometheus.Counter
	recipesDeleted  prometheus.Counter
	recipeSearches  *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipebox_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recipebox_request_duration_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		usersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipebox_users_registered_total",
			Help: "登録されたユーザーの合計数",
		}),
		recipesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipebox_recipes_created_total",
			Help: "作成されたレシピの合計数",
		}),
		recipesUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipebox_recipes_updated_total",
			Help: "更新されたレシピの合計数",
		}),
		recipesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipebox_recipes_deleted_total",
			Help: "削除されたレシピの合計数",
		}),
		recipeSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipebox_recipe_searches_total",
			Help: "検索種別ごとのレシピ検索数",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.usersRegistered,
		c.recipesCreated,
		c.recipesUpdated,
		c.recipesDeleted,
		c.recipeSearches,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordUserRegistered はユーザー登録を記録する。
func (c *Collector) RecordUserRegistered() {
	c.usersRegistered.Inc()
}

// RecordRecipeCreated はレシピ作成を記録する。
func (c *Collector) RecordRecipeCreated() {
	c.recipesCreated.Inc()
}

// RecordRecipeUpdated はレシピ更新を記録する。
func (c *Collector) RecordRecipeUpdated() {
	c.recipesUpdated.Inc()
}

// RecordRecipeDeleted はレシピ削除を記録する。
func (c *Collector) RecordRecipeDeleted() {
	c.recipesDeleted.Inc()
}

// RecordRecipeSearch は検索種別（category / name）ごとのレシピ検索を記録する。
func (c *Collector) RecordRecipeSearch(kind string) {
	c.recipeSearches.WithLabelValues(kind).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
