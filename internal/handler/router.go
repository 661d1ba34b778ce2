package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daviidcruz/novahub/internal/middleware"
	"github.com/daviidcruz/novahub/internal/repository"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// 稼働状態確認
	DB Pinger

	// メトリクス
	MetricsHandler http.Handler

	// 入札情報スナップショット
	SnapshotService SnapshotServiceInterface
	KeywordResolver KeywordResolver

	// フィード中継
	RelayService RelayServiceInterface

	// ユーザー設定
	PreferencesRepo repository.PreferencesRepository
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Logging → Recovery → RateLimit(General)
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewRecoveryMiddleware())

	healthHandler := NewHealthHandler(deps.DB)
	tenderHandler := NewTenderHandler(deps.SnapshotService, deps.KeywordResolver)
	relayHandler := NewRelayHandler(deps.RelayService)
	prefsHandler := NewPreferencesHandler(deps.PreferencesRepo)

	// --- 運用ルート（レート制限なし）---

	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)

	// --- APIルート ---
	// ミドルウェアスタック: RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 入札情報
		r.Route("/api/tenders", func(r chi.Router) {
			r.Get("/", tenderHandler.GetTenders)

			// POST /api/tenders/refresh - 即時リフレッシュ（専用レート制限を追加）
			r.With(deps.RateLimiter.RefreshMiddleware()).Post("/refresh", tenderHandler.RefreshTenders)
		})

		// フィード中継
		r.Get("/api/atom", relayHandler.GetAtom)

		// ユーザー設定
		r.Route("/api/preferences", func(r chi.Router) {
			r.Get("/favorites", prefsHandler.GetFavorites)
			r.Put("/favorites", prefsHandler.PutFavorites)

			r.Get("/keywords", prefsHandler.GetKeywords)
			r.Put("/keywords", prefsHandler.PutKeywords)

			r.Get("/last-viewed", prefsHandler.GetLastViewed)
			r.Put("/last-viewed", prefsHandler.PutLastViewed)
		})
	})

	return r
}
