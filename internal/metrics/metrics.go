// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector は取得パイプラインのPrometheusメトリクスを収集する。
// fetch.MetricsRecorder と aggregate.MetricsRecorder の両方を実装する。
type Collector struct {
	strategyAttempts  *prometheus.CounterVec
	feedFailures      *prometheus.CounterVec
	parseFailures     *prometheus.CounterVec
	pagesFetched      *prometheus.CounterVec
	tendersMapped     prometheus.Counter
	duplicatesDropped prometheus.Counter
	fetchLatency      prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		strategyAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "novahub_fetch_strategy_attempts_total",
			Help: "取得経路（プロキシ戦略）ごとの試行数",
		}, []string{"strategy", "result"}),
		feedFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "novahub_feed_failures_total",
			Help: "全経路失敗によりフィードが取得不能となった回数",
		}, []string{"source"}),
		parseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "novahub_parse_failures_total",
			Help: "フィードページのXMLパース失敗数",
		}, []string{"source"}),
		pagesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "novahub_pages_fetched_total",
			Help: "取得・パースに成功したフィードページ数",
		}, []string{"source"}),
		tendersMapped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "novahub_tenders_mapped_total",
			Help: "マージ結果に採用されたTenderレコードの合計数",
		}),
		duplicatesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "novahub_duplicates_dropped_total",
			Help: "重複排除で破棄されたレコードの合計数",
		}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "novahub_fetch_latency_seconds",
			Help:    "フィードフェッチ（全経路込み）のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.strategyAttempts,
		c.feedFailures,
		c.parseFailures,
		c.pagesFetched,
		c.tendersMapped,
		c.duplicatesDropped,
		c.fetchLatency,
	)

	return c
}

// RecordStrategyAttempt は取得経路の試行結果を記録する。
func (c *Collector) RecordStrategyAttempt(strategy string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.strategyAttempts.WithLabelValues(strategy, result).Inc()
}

// RecordFetchLatency はフェッチのレイテンシを記録する。
func (c *Collector) RecordFetchLatency(duration time.Duration) {
	c.fetchLatency.Observe(duration.Seconds())
}

// RecordFeedFailure はフィード単位の取得不能を記録する。
func (c *Collector) RecordFeedFailure(source string) {
	c.feedFailures.WithLabelValues(source).Inc()
}

// RecordParseFailure はXMLパース失敗を記録する。
func (c *Collector) RecordParseFailure(source string) {
	c.parseFailures.WithLabelValues(source).Inc()
}

// RecordPageFetched はページ取得成功を記録する。
func (c *Collector) RecordPageFetched(source string) {
	c.pagesFetched.WithLabelValues(source).Inc()
}

// RecordTendersMapped はマージ結果のレコード数を記録する。
func (c *Collector) RecordTendersMapped(count int) {
	c.tendersMapped.Add(float64(count))
}

// RecordDuplicatesDropped は重複排除による破棄数を記録する。
func (c *Collector) RecordDuplicatesDropped(count int) {
	c.duplicatesDropped.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
