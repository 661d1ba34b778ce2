package handler

import (
	"context"
	"net/http"

	"github.com/daviidcruz/novahub/internal/middleware"
)

// RelayServiceInterface は中継ハンドラーが必要とするサービスインターフェース。
type RelayServiceInterface interface {
	// FeedXML はセレクタで指定されたフィードのXMLバイト列を返す。
	FeedXML(ctx context.Context, selector string) ([]byte, error)
}

// RelayHandler は上流フィードをそのまま中継するHTTPハンドラー。
type RelayHandler struct {
	service RelayServiceInterface
}

// NewRelayHandler はRelayHandlerを生成する。
func NewRelayHandler(service RelayServiceInterface) *RelayHandler {
	return &RelayHandler{service: service}
}

// GetAtom は選択されたフィードのXMLを中継する。
// GET /api/atom?feed={selector}
func (h *RelayHandler) GetAtom(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("feed")

	body, err := h.service.FeedXML(r.Context(), selector)
	if err != nil {
		middleware.WriteAPIError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Cache-Control", "s-maxage=900, stale-while-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
