// Package middleware はHTTPミドルウェアと共通レスポンスヘルパーを提供する。
package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daviidcruz/novahub/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// 中継エンドポイントの契約 {"error": string} を全エンドポイントに適用する。
type ErrorResponseBody struct {
	Error string `json:"error"`
}

// WriteErrorResponse は統一フォーマットでHTTPエラーレスポンスを書き込む。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{Error: message})
}

// WriteAPIError は*model.APIErrorをレスポンスに変換する。
// APIError以外のエラーは内部エラーとして扱う（詳細はログにのみ残す）。
func WriteAPIError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		WriteErrorResponse(w, apiErr.Status, apiErr.Message)
		return
	}
	internal := model.NewInternalError()
	WriteErrorResponse(w, internal.Status, internal.Message)
}
