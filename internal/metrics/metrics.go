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
// HTTPミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
	RecordMutation(entity, action string)
	RecordEventPublishFailure(entity string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	mutations      *prometheus.CounterVec
	publishFailure *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posledger_http_requests_total",
			Help: "メソッド・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "posledger_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posledger_record_mutations_total",
			Help: "エンティティ・操作別のレコード変更数",
		}, []string{"entity", "action"}),
		publishFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posledger_event_publish_failures_total",
			Help: "変更イベントの発行に失敗した数",
		}, []string{"entity"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.mutations,
		c.publishFailure,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエストの件数と処理時間を記録する。
func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordMutation はレコードの作成・更新・削除を記録する。
// actionは"created"、"updated"、"deleted"のいずれか。
func (c *Collector) RecordMutation(entity, action string) {
	c.mutations.WithLabelValues(entity, action).Inc()
}

// RecordEventPublishFailure は変更イベントの発行失敗を記録する。
func (c *Collector) RecordEventPublishFailure(entity string) {
	c.publishFailure.WithLabelValues(entity).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var _ MetricsCollector = (*Collector)(nil)
