package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/daviidcruz/novahub/internal/feed"
	"github.com/daviidcruz/novahub/internal/fetch"
	"github.com/daviidcruz/novahub/internal/model"
)

// revalidateTimeout はバックグラウンド再検証フェッチの上限時間。
const revalidateTimeout = 30 * time.Second

// SSRFValidator はSSRF検証のインターフェース。
type SSRFValidator interface {
	NewSafeClient(timeout time.Duration) *http.Client
}

// Service は上流フィードを直接取得して同一のXMLバイト列を中継する。
// 鮮度ウィンドウ付きのキャッシュを持ち、期限切れエントリは
// 古い内容を返しつつバックグラウンドで再検証する（serve-stale-while-revalidate）。
type Service struct {
	sources     []feed.Source
	client      *http.Client
	cache       *Cache
	logger      *slog.Logger
	maxBodySize int64

	mu           sync.Mutex
	revalidating map[string]bool
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	sources []feed.Source,
	guard SSRFValidator,
	cache *Cache,
	logger *slog.Logger,
	timeout time.Duration,
	maxBodySize int64,
) *Service {
	return &Service{
		sources:      sources,
		client:       guard.NewSafeClient(timeout),
		cache:        cache,
		logger:       logger,
		maxBodySize:  maxBodySize,
		revalidating: make(map[string]bool),
	}
}

// FeedXML はセレクタで指定されたフィードのXMLバイト列を返す。
// 不正なセレクタはクライアントエラー、上流取得失敗はサーバーエラーとして
// *model.APIError を返す。
func (s *Service) FeedXML(ctx context.Context, selector string) ([]byte, error) {
	src, ok := feed.SourceBySelector(s.sources, selector)
	if !ok {
		return nil, model.NewInvalidFeedError()
	}

	body, fresh, found := s.cache.Get(selector)
	if found && fresh {
		return body, nil
	}
	if found {
		// 期限切れ: 古い内容を返しつつ裏で更新する
		s.revalidateAsync(selector, src)
		return body, nil
	}

	fetched, err := s.fetchUpstream(ctx, src.URL)
	if err != nil {
		s.logger.Error("上流フィードの取得に失敗しました",
			slog.String("selector", selector),
			slog.String("url", src.URL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewFeedUnavailableError()
	}

	s.cache.Put(selector, fetched)
	return fetched, nil
}

// revalidateAsync は期限切れエントリのバックグラウンド再検証を開始する。
// 同一セレクタの再検証は同時に1つだけ実行する。
func (s *Service) revalidateAsync(selector string, src feed.Source) {
	s.mu.Lock()
	if s.revalidating[selector] {
		s.mu.Unlock()
		return
	}
	s.revalidating[selector] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.revalidating, selector)
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), revalidateTimeout)
		defer cancel()

		body, err := s.fetchUpstream(ctx, src.URL)
		if err != nil {
			s.logger.Warn("バックグラウンド再検証に失敗しました",
				slog.String("selector", selector),
				slog.String("error", err.Error()),
			)
			return
		}
		s.cache.Put(selector, body)
	}()
}

// fetchUpstream は上流フィードを1回取得する。
func (s *Service) fetchUpstream(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}

	req.Header.Set("User-Agent", "NovaHub/1.0 Tender Dashboard")
	req.Header.Set("Accept", "application/atom+xml, application/xml, text/xml, */*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("上流リクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("上流が非成功ステータスを返却: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("上流レスポンスの読み取り失敗: %w", err)
	}

	if !fetch.LooksLikeXML(body) {
		return nil, fmt.Errorf("上流レスポンスがXMLではありません")
	}

	return body, nil
}
