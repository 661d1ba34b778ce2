// Package refresh はTenderスナップショットの定期リフレッシュを提供する。
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/daviidcruz/novahub/internal/aggregate"
	"github.com/daviidcruz/novahub/internal/feed"
)

// Snapshotter はスナップショットのリフレッシュ実行インターフェース。
type Snapshotter interface {
	Refresh(ctx context.Context, keywords []string) aggregate.Snapshot
}

// KeywordSource は保存済みキーワードリストの取得インターフェース。
type KeywordSource interface {
	// GetKeywords は保存済みのキーワードリストを返す。未保存の場合はnilを返す。
	GetKeywords(ctx context.Context) ([]string, error)
}

// Refresher は一定間隔でスナップショットをリフレッシュするバックグラウンドジョブ。
// キーワードは毎サイクル取得し直し、保存されていなければ既定リストを使う。
type Refresher struct {
	snapshotter Snapshotter
	keywords    KeywordSource
	logger      *slog.Logger
}

// NewRefresher はRefresherの新しいインスタンスを生成する。
func NewRefresher(snapshotter Snapshotter, keywords KeywordSource, logger *slog.Logger) *Refresher {
	return &Refresher{
		snapshotter: snapshotter,
		keywords:    keywords,
		logger:      logger,
	}
}

// Start は指定間隔のティッカーでリフレッシュループを起動する。
// 起動直後に1回実行し、コンテキストがキャンセルされるまで継続する（ブロッキング）。
func (r *Refresher) Start(ctx context.Context, interval time.Duration) {
	r.logger.Info("リフレッシュループを開始しました",
		slog.Duration("interval", interval),
	)

	r.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("リフレッシュループを停止しました")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce はリフレッシュを1回実行する。
func (r *Refresher) RunOnce(ctx context.Context) {
	keywords := r.ResolveKeywords(ctx)
	snap := r.snapshotter.Refresh(ctx, keywords)

	r.logger.Info("スナップショットをリフレッシュしました",
		slog.Uint64("seq", snap.Seq),
		slog.Int("tenders", len(snap.Tenders)),
		slog.Int("keywords", len(keywords)),
	)
}

// ResolveKeywords は保存済みキーワードを取得し、未保存または取得失敗時は
// 既定リストにフォールバックする。
func (r *Refresher) ResolveKeywords(ctx context.Context) []string {
	stored, err := r.keywords.GetKeywords(ctx)
	if err != nil {
		r.logger.Warn("キーワードの取得に失敗したため既定リストを使用します",
			slog.String("error", err.Error()),
		)
		return feed.DefaultKeywords()
	}
	if len(stored) == 0 {
		return feed.DefaultKeywords()
	}
	return stored
}
