package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/daviidcruz/novahub/internal/middleware"
)

// healthCheckTimeout はDB疎通確認の上限時間。
const healthCheckTimeout = 2 * time.Second

// Pinger はDB疎通確認のインターフェース。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler は稼働状態確認のHTTPハンドラー。
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health は稼働状態を返す。DB疎通に失敗した場合は503を返す。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		middleware.WriteErrorResponse(w, http.StatusServiceUnavailable, "Servicio no disponible")
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
