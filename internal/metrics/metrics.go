// Package metrics は Prometheus 形式のメトリクスを提供します。
package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "user_service"

// Metrics はサービス専用のレジストリとカウンターを保持します。
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	auth     *prometheus.CounterVec
	users    prometheus.GaugeFunc
}

// New は Metrics を作成します。userCount が nil でなければ登録ユーザー数のゲージも公開します。
func New(userCount func() int) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		auth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_operations_total",
			Help:      "Auth operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.auth,
	)

	if userCount != nil {
		m.users = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_users",
			Help:      "Users currently held in memory.",
		}, func() float64 { return float64(userCount()) })
		registry.MustRegister(m.users)
	}
	return m
}

// ObserveAuth は認証操作の結果を1件記録します。
func (m *Metrics) ObserveAuth(operation, outcome string) {
	m.auth.WithLabelValues(operation, outcome).Inc()
}

// Middleware はリクエスト数を数える gin ミドルウェアです。
// ルート未一致のリクエストは route="unmatched" に集約します。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler は GET /metrics のハンドラーを返します。
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
