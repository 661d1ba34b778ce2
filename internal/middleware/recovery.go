package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/daviidcruz/novahub/internal/model"
)

// NewRecoveryMiddleware はpanic発生時にプロセスクラッシュを防ぎ、
// 統一フォーマットの500レスポンスを返すミドルウェアを生成する。
func NewRecoveryMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					internal := model.NewInternalError()
					WriteErrorResponse(w, internal.Status, internal.Message)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
