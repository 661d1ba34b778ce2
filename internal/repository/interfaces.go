// Package repository はデータアクセス層を提供する。
package repository

import (
	"context"

	"github.com/daviidcruz/novahub/internal/model"
)

// PreferencesRepository はユーザー設定（お気に入り・キーワード・最終閲覧日時）の
// 永続化インターフェース。スキーマ契約:
//   - お気に入り: Tenderオブジェクト全体のJSON配列
//   - キーワード: 文字列のJSON配列
//   - 最終閲覧日時: ISO-8601文字列
type PreferencesRepository interface {
	// GetFavorites は保存済みのお気に入り一覧を返す。未保存の場合はnil。
	GetFavorites(ctx context.Context) ([]model.Tender, error)
	// SaveFavorites はお気に入り一覧を全量置き換えで保存する。
	SaveFavorites(ctx context.Context, favorites []model.Tender) error

	// GetKeywords は保存済みのキーワードリストを返す。未保存の場合はnil。
	GetKeywords(ctx context.Context) ([]string, error)
	// SaveKeywords はキーワードリストを全量置き換えで保存する。
	SaveKeywords(ctx context.Context, keywords []string) error

	// GetLastViewed は最終閲覧日時（ISO-8601文字列）を返す。未保存の場合は空文字。
	GetLastViewed(ctx context.Context) (string, error)
	// SaveLastViewed は最終閲覧日時を保存する。
	SaveLastViewed(ctx context.Context, lastViewed string) error
}
