// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/daviidcruz/novahub/internal/aggregate"
	"github.com/daviidcruz/novahub/internal/model"
)

// SnapshotServiceInterface はTenderハンドラーが必要とするスナップショット操作。
type SnapshotServiceInterface interface {
	// Latest は保存されている最新のスナップショットを返す。
	Latest() aggregate.Snapshot
	// Refresh はパイプラインを1回実行し、結果のスナップショットを返す。
	Refresh(ctx context.Context, keywords []string) aggregate.Snapshot
}

// KeywordResolver はリフレッシュ時に使うキーワードリストを解決する。
type KeywordResolver interface {
	ResolveKeywords(ctx context.Context) []string
}

// TenderHandler は入札情報スナップショットのHTTPハンドラー。
type TenderHandler struct {
	snapshots SnapshotServiceInterface
	keywords  KeywordResolver
}

// NewTenderHandler はTenderHandlerを生成する。
func NewTenderHandler(snapshots SnapshotServiceInterface, keywords KeywordResolver) *TenderHandler {
	return &TenderHandler{
		snapshots: snapshots,
		keywords:  keywords,
	}
}

// tendersResponse はスナップショットのAPIレスポンス。
type tendersResponse struct {
	Seq         uint64         `json:"seq"`
	RefreshedAt *time.Time     `json:"refreshedAt,omitempty"`
	Tenders     []model.Tender `json:"tenders"`
}

// GetTenders は最新スナップショットを返す。
// GET /api/tenders
func (h *TenderHandler) GetTenders(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Latest()
	writeSnapshotResponse(w, http.StatusOK, snap)
}

// RefreshTenders はリフレッシュを即時実行し、その結果を返す。
// POST /api/tenders/refresh
func (h *TenderHandler) RefreshTenders(w http.ResponseWriter, r *http.Request) {
	keywords := h.keywords.ResolveKeywords(r.Context())
	snap := h.snapshots.Refresh(r.Context(), keywords)
	writeSnapshotResponse(w, http.StatusOK, snap)
}

// writeSnapshotResponse はスナップショットをJSONレスポンスとして書き込む。
// 一度もリフレッシュされていない場合でもtendersは空配列を返す。
func writeSnapshotResponse(w http.ResponseWriter, statusCode int, snap aggregate.Snapshot) {
	resp := tendersResponse{
		Seq:     snap.Seq,
		Tenders: snap.Tenders,
	}
	if resp.Tenders == nil {
		resp.Tenders = []model.Tender{}
	}
	if !snap.RefreshedAt.IsZero() {
		t := snap.RefreshedAt
		resp.RefreshedAt = &t
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
