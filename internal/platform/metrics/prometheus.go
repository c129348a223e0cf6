// Package metrics はPrometheusメトリクスと /metrics エンドポイントを提供します。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics は専用のレジストリに登録したメトリクスを保持します。
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	operationErrors     *prometheus.CounterVec
}

// New はメトリクスを初期化して新しいレジストリに登録します。
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		operationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ranking_operation_errors_total",
			Help: "Failed ranking operations by operation and error kind.",
		}, []string{"operation", "kind"}),
	}
}

// Registry はメトリクスのレジストリを返します。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler は /metrics 用のHTTPハンドラーを返します。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware はリクエスト数とレイテンシを記録するginミドルウェアを返します。
// ルートが見つからない場合は route="unmatched" として記録します。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// ObserveOperationError はユースケース操作の失敗を記録します。
func (m *Metrics) ObserveOperationError(operation, kind string) {
	m.operationErrors.WithLabelValues(operation, kind).Inc()
}
