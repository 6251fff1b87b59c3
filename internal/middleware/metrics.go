package middleware

import (
	"net/http"
	"time"

	"github.com/hitoshi/posledger/internal/metrics"
)

// NewMetricsMiddleware はリクエスト数と処理時間を記録するミドルウェアを返す。
func NewMetricsMiddleware(collector metrics.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			collector.RecordHTTPRequest(r.Method, rec.statusCode, time.Since(start))
		})
	}
}
