// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// registration.MetricsRecorderとmailqueue.MetricsRecorderを満たす。
type Collector struct {
	registrationsCreated   prometheus.Counter
	registrationsCancelled prometheus.Counter
	mailSent               prometheus.Counter
	mailFailed             prometheus.Counter
	httpStatus             *prometheus.CounterVec
	requestLatency         prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_registrations_created_total",
			Help: "作成された受講登録の合計数",
		}),
		registrationsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_registrations_cancelled_total",
			Help: "キャンセルされた受講登録の合計数",
		}),
		mailSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_mail_sent_total",
			Help: "送信に成功した確認メールの合計数",
		}),
		mailFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_mail_failed_total",
			Help: "送信を諦めた確認メールの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gymdesk_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gymdesk_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.registrationsCreated,
		c.registrationsCancelled,
		c.mailSent,
		c.mailFailed,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordRegistrationCreated は受講登録の作成を記録する。
func (c *Collector) RecordRegistrationCreated() {
	c.registrationsCreated.Inc()
}

// RecordRegistrationCancelled は受講登録のキャンセルを記録する。
func (c *Collector) RecordRegistrationCancelled() {
	c.registrationsCancelled.Inc()
}

// RecordMailSent は確認メールの送信成功を記録する。
func (c *Collector) RecordMailSent() {
	c.mailSent.Inc()
}

// RecordMailFailed は確認メールの送信失敗（最終的な断念）を記録する。
func (c *Collector) RecordMailFailed() {
	c.mailFailed.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はHTTPリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
