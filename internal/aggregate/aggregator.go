// Package aggregate は複数フィードの並列取得・ページ送り・重複排除・
// マージソートを行う集約コントローラを提供する。
package aggregate

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/daviidcruz/novahub/internal/feed"
	"github.com/daviidcruz/novahub/internal/model"
	"github.com/daviidcruz/novahub/internal/xmlnav"
)

// defaultMaxPages はフィードあたりのページ取得数の既定上限。
// どのページも次ページリンクを持ち得るため、無制限ループを防ぐ。
const defaultMaxPages = 5

// FeedFetcher はフィードXML取得のインターフェース。
type FeedFetcher interface {
	// FetchFeedText は対象URLのXMLテキストを取得する。ok=falseは取得不能を表す。
	FetchFeedText(ctx context.Context, targetURL string) ([]byte, bool)
}

// EntryMapper はパース済みドキュメントのエントリをTenderに変換するインターフェース。
type EntryMapper interface {
	MapEntries(doc *xmlnav.Element, sourceType string, keywords []string) []model.Tender
}

// MetricsRecorder は集約関連メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordFeedFailure(source string)
	RecordParseFailure(source string)
	RecordPageFetched(source string)
	RecordTendersMapped(count int)
	RecordDuplicatesDropped(count int)
}

// Aggregator は設定された全フィード供給元を並列に取得し、
// マージ済みのTenderリストを生成する。1回の呼び出し内に共有可変状態はなく、
// 重複排除マップも呼び出しローカルであるためロックは不要。
type Aggregator struct {
	sources  []feed.Source
	fetcher  FeedFetcher
	mapper   EntryMapper
	logger   *slog.Logger
	metrics  MetricsRecorder
	maxPages int
}

// NewAggregator はAggregatorの新しいインスタンスを生成する。
// maxPagesが0以下の場合は既定値を使用する。
func NewAggregator(
	sources []feed.Source,
	fetcher FeedFetcher,
	mapper EntryMapper,
	logger *slog.Logger,
	metrics MetricsRecorder,
	maxPages int,
) *Aggregator {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Aggregator{
		sources:  sources,
		fetcher:  fetcher,
		mapper:   mapper,
		logger:   logger,
		metrics:  metrics,
		maxPages: maxPages,
	}
}

// FetchAllTenders は全フィードを並列に取得し、重複排除・ソート済みの
// Tenderリストを返す。フィード単位の失敗は他フィードの結果に影響しない。
// 冪等であり、ネットワーク読み取り以外の副作用を持たない。
//
// 重複排除の「先勝ち」を並列スケジューリングに依存させないため、
// 各供給元の結果は独立に収集し、供給元の設定順でマージする。
func (a *Aggregator) FetchAllTenders(ctx context.Context, keywords []string) []model.Tender {
	start := time.Now()

	results := make([][]model.Tender, len(a.sources))
	var wg sync.WaitGroup

	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src feed.Source) {
			defer wg.Done()
			results[i] = a.fetchSource(ctx, src, keywords)
		}(i, src)
	}

	wg.Wait()

	seen := make(map[string]struct{})
	merged := []model.Tender{}
	dropped := 0

	for _, list := range results {
		for _, t := range list {
			if _, dup := seen[t.ID]; dup {
				dropped++
				continue
			}
			seen[t.ID] = struct{}{}
			merged = append(merged, t)
		}
	}

	a.metrics.RecordDuplicatesDropped(dropped)
	a.metrics.RecordTendersMapped(len(merged))

	// updated降順。パースできない日時は末尾に沈む。同値は安定ソートでマージ順を保つ。
	sort.SliceStable(merged, func(i, j int) bool {
		return parseUpdated(merged[i].Updated).After(parseUpdated(merged[j].Updated))
	})

	a.logger.Info("フィード集約が完了しました",
		slog.Int("sources", len(a.sources)),
		slog.Int("tenders", len(merged)),
		slog.Int("duplicates_dropped", dropped),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return merged
}

// fetchSource は1つの供給元をページ上限までたどって取得する。
// あらゆる失敗はその供給元の空（または途中までの）結果として回復し、
// エラーを呼び出し側に伝播させない（§7 部分的な集約失敗）。
func (a *Aggregator) fetchSource(ctx context.Context, src feed.Source, keywords []string) []model.Tender {
	var tenders []model.Tender
	pageURL := src.URL

	for page := 0; page < a.maxPages && pageURL != ""; page++ {
		body, ok := a.fetcher.FetchFeedText(ctx, pageURL)
		if !ok {
			a.metrics.RecordFeedFailure(src.Selector)
			a.logger.Warn("フィードページの取得に失敗しました",
				slog.String("source", src.Selector),
				slog.String("url", pageURL),
				slog.Int("page", page),
			)
			break
		}

		doc, err := xmlnav.Parse(bytes.NewReader(body))
		if err != nil {
			// パース失敗はこのページを空として扱い、このフィードの追跡を打ち切る
			// （次ページリンクはパース済みドキュメントからしか得られない）
			a.metrics.RecordParseFailure(src.Selector)
			a.logger.Warn("フィードページのパースに失敗しました",
				slog.String("source", src.Selector),
				slog.String("url", pageURL),
				slog.String("error", err.Error()),
			)
			break
		}

		a.metrics.RecordPageFetched(src.Selector)
		tenders = append(tenders, a.mapper.MapEntries(doc, src.SourceType, keywords)...)

		pageURL = feed.NextPageLink(doc)
	}

	return tenders
}

// parseUpdated はISO-8601日時文字列をソートキーに変換する。
// パース失敗時はゼロ値を返し、降順ソートで末尾に並ぶ。
func parseUpdated(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
