package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/daviidcruz/novahub/internal/middleware"
	"github.com/daviidcruz/novahub/internal/model"
	"github.com/daviidcruz/novahub/internal/repository"
)

// PreferencesHandler はユーザー設定のHTTPハンドラー。
// お気に入り・キーワード・最終閲覧日時をJSONそのままの形で入出力する。
type PreferencesHandler struct {
	repo repository.PreferencesRepository
}

// NewPreferencesHandler はPreferencesHandlerを生成する。
func NewPreferencesHandler(repo repository.PreferencesRepository) *PreferencesHandler {
	return &PreferencesHandler{repo: repo}
}

// lastViewedBody は最終閲覧日時の入出力ボディ。
type lastViewedBody struct {
	LastViewed string `json:"lastViewed"`
}

// GetFavorites は保存済みのお気に入り一覧を返す。未保存の場合は空配列。
// GET /api/preferences/favorites
func (h *PreferencesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.repo.GetFavorites(r.Context())
	if err != nil {
		handleRepositoryError(w, err)
		return
	}
	if favorites == nil {
		favorites = []model.Tender{}
	}

	writeJSONResponse(w, http.StatusOK, favorites)
}

// PutFavorites はお気に入り一覧を全量置き換えで保存する。
// PUT /api/preferences/favorites
func (h *PreferencesHandler) PutFavorites(w http.ResponseWriter, r *http.Request) {
	var favorites []model.Tender
	if err := json.NewDecoder(r.Body).Decode(&favorites); err != nil {
		apiErr := model.NewInvalidRequestError("se esperaba un array JSON de licitaciones")
		middleware.WriteErrorResponse(w, apiErr.Status, apiErr.Message)
		return
	}
	if favorites == nil {
		favorites = []model.Tender{}
	}

	if err := h.repo.SaveFavorites(r.Context(), favorites); err != nil {
		handleRepositoryError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, favorites)
}

// GetKeywords は保存済みのキーワードリストを返す。未保存の場合は空配列。
// GET /api/preferences/keywords
func (h *PreferencesHandler) GetKeywords(w http.ResponseWriter, r *http.Request) {
	keywords, err := h.repo.GetKeywords(r.Context())
	if err != nil {
		handleRepositoryError(w, err)
		return
	}
	if keywords == nil {
		keywords = []string{}
	}

	writeJSONResponse(w, http.StatusOK, keywords)
}

// PutKeywords はキーワードリストを全量置き換えで保存する。
// 空文字のみのキーワードは拒否する。
// PUT /api/preferences/keywords
func (h *PreferencesHandler) PutKeywords(w http.ResponseWriter, r *http.Request) {
	var keywords []string
	if err := json.NewDecoder(r.Body).Decode(&keywords); err != nil {
		apiErr := model.NewInvalidRequestError("se esperaba un array JSON de cadenas")
		middleware.WriteErrorResponse(w, apiErr.Status, apiErr.Message)
		return
	}
	if keywords == nil {
		keywords = []string{}
	}

	for _, kw := range keywords {
		if kw == "" {
			apiErr := model.NewInvalidRequestError("las palabras clave no pueden estar vacías")
			middleware.WriteErrorResponse(w, apiErr.Status, apiErr.Message)
			return
		}
	}

	if err := h.repo.SaveKeywords(r.Context(), keywords); err != nil {
		handleRepositoryError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, keywords)
}

// GetLastViewed は最終閲覧日時を返す。未保存の場合は空文字。
// GET /api/preferences/last-viewed
func (h *PreferencesHandler) GetLastViewed(w http.ResponseWriter, r *http.Request) {
	lastViewed, err := h.repo.GetLastViewed(r.Context())
	if err != nil {
		handleRepositoryError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, lastViewedBody{LastViewed: lastViewed})
}

// PutLastViewed は最終閲覧日時を保存する。ISO-8601形式のみ受け付ける。
// PUT /api/preferences/last-viewed
func (h *PreferencesHandler) PutLastViewed(w http.ResponseWriter, r *http.Request) {
	var body lastViewedBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apiErr := model.NewInvalidRequestError("cuerpo JSON no válido")
		middleware.WriteErrorResponse(w, apiErr.Status, apiErr.Message)
		return
	}

	if _, err := time.Parse(time.RFC3339, body.LastViewed); err != nil {
		apiErr := model.NewInvalidRequestError("lastViewed debe ser una fecha ISO-8601")
		middleware.WriteErrorResponse(w, apiErr.Status, apiErr.Message)
		return
	}

	if err := h.repo.SaveLastViewed(r.Context(), body.LastViewed); err != nil {
		handleRepositoryError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, body)
}

// --- ヘルパー関数 ---

// writeJSONResponse はJSONレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// handleRepositoryError は永続化層のエラーを内部エラーとして応答する。
// 詳細はログにのみ記録する。
func handleRepositoryError(w http.ResponseWriter, err error) {
	slog.Error("preferences repository error", slog.String("error", err.Error()))
	internal := model.NewInternalError()
	middleware.WriteErrorResponse(w, internal.Status, internal.Message)
}
