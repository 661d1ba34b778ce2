// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError はHTTPレスポンスに変換可能なエラーを表す。
// Message はそのままレスポンスボディ {"error": string} に載るため、
// 利用者向けの文言（スペイン語）を設定する。
type APIError struct {
	Status  int    // HTTPステータスコード
	Code    string // ログ用のエラーコード
	Message string // 利用者向けメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidFeed     = "INVALID_FEED"
	ErrCodeFeedUnavailable = "FEED_UNAVAILABLE"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// NewInvalidFeedError は不正なフィードセレクタに対するエラーを生成する。
func NewInvalidFeedError() *APIError {
	return &APIError{
		Status:  400,
		Code:    ErrCodeInvalidFeed,
		Message: "Feed no válido",
	}
}

// NewFeedUnavailableError は上流フィード取得失敗に対するエラーを生成する。
func NewFeedUnavailableError() *APIError {
	return &APIError{
		Status:  502,
		Code:    ErrCodeFeedUnavailable,
		Message: "No se pudo acceder al feed",
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗などに対するエラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Status:  400,
		Code:    ErrCodeInvalidRequest,
		Message: fmt.Sprintf("Petición no válida: %s", reason),
	}
}

// NewInternalError は内部エラーの汎用レスポンスを生成する。
// 詳細はログにのみ記録し、利用者には一般的な文言を返す。
func NewInternalError() *APIError {
	return &APIError{
		Status:  500,
		Code:    ErrCodeInternal,
		Message: "Error interno del servidor",
	}
}
