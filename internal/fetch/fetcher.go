package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// SSRFValidator はSSRF検証のインターフェース。
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration) *http.Client
}

// MetricsRecorder はフェッチ関連メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordStrategyAttempt(strategy string, success bool)
	RecordFetchLatency(duration time.Duration)
}

// Fetcher は取得経路のフォールバックチェーンでフィードXMLを取得する。
// 各経路の失敗（ネットワークエラー・非成功ステータス・XMLに見えないボディ）は
// ローカルに回復し、次の経路へ進む。すべての経路が失敗した場合にのみ
// 「取得不能」を呼び出し側に返す。呼び出し側はこれをフィード単位の
// 非致命的な失敗として扱う（§7）。
type Fetcher struct {
	strategies  []ProxyStrategy
	guard       SSRFValidator
	client      *http.Client
	logger      *slog.Logger
	maxBodySize int64
	metrics     MetricsRecorder
}

// NewFetcher はFetcherの新しいインスタンスを生成する。
// strategiesが空の場合はDefaultStrategiesを使用する。
func NewFetcher(
	guard SSRFValidator,
	strategies []ProxyStrategy,
	logger *slog.Logger,
	metrics MetricsRecorder,
	timeout time.Duration,
	maxBodySize int64,
) *Fetcher {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Fetcher{
		strategies:  strategies,
		guard:       guard,
		client:      guard.NewSafeClient(timeout),
		logger:      logger,
		maxBodySize: maxBodySize,
		metrics:     metrics,
	}
}

// FetchFeedText は対象URLのXMLテキストを取得する。
// 戻り値の ok=false は「全経路で取得不能」を意味し、エラーとしては扱わない。
func (f *Fetcher) FetchFeedText(ctx context.Context, targetURL string) ([]byte, bool) {
	start := time.Now()
	defer func() {
		f.metrics.RecordFetchLatency(time.Since(start))
	}()

	if err := f.guard.ValidateURL(targetURL); err != nil {
		f.logger.Warn("SSRF検証に失敗したためフェッチを中止します",
			slog.String("url", targetURL),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	for _, strategy := range f.strategies {
		body, ok := f.tryStrategy(ctx, strategy, targetURL)
		f.metrics.RecordStrategyAttempt(strategy.Name, ok)
		if ok {
			return body, true
		}
	}

	f.logger.Error("すべての取得経路が失敗しました",
		slog.String("url", targetURL),
		slog.Int("strategies", len(f.strategies)),
	)
	return nil, false
}

// tryStrategy は1つの取得経路を1回だけ試行する。
// いかなる失敗も ok=false として返し、エラーを伝播させない。
func (f *Fetcher) tryStrategy(ctx context.Context, strategy ProxyStrategy, targetURL string) ([]byte, bool) {
	requestURL := strategy.BuildURL(targetURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		f.logger.Warn("リクエスト作成に失敗しました",
			slog.String("strategy", strategy.Name),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	req.Header.Set("User-Agent", "NovaHub/1.0 Tender Dashboard")
	req.Header.Set("Accept", "application/atom+xml, application/xml, text/xml, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("取得経路でのHTTPリクエストに失敗しました",
			slog.String("strategy", strategy.Name),
			slog.String("url", targetURL),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("取得経路が非成功ステータスを返しました",
			slog.String("strategy", strategy.Name),
			slog.String("url", targetURL),
			slog.Int("http_status", resp.StatusCode),
		)
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		f.logger.Warn("レスポンスボディの読み取りに失敗しました",
			slog.String("strategy", strategy.Name),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	if !LooksLikeXML(body) {
		f.logger.Warn("レスポンスがXMLに見えないため次の経路へ進みます",
			slog.String("strategy", strategy.Name),
			slog.String("url", targetURL),
		)
		return nil, false
	}

	return body, true
}
