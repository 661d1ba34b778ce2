package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/daviidcruz/novahub/internal/model"
)

// 設定キー。preferencesテーブルの主キーとして使用する。
const (
	prefKeyFavorites  = "favorites"
	prefKeyKeywords   = "keywords"
	prefKeyLastViewed = "last_viewed"
)

// PostgresPreferencesRepo はPostgreSQLを使用したユーザー設定リポジトリ。
// 各設定は1行のJSONB値として保存するシンプルなキーバリュー構造を取る。
type PostgresPreferencesRepo struct {
	db *sql.DB
}

// NewPostgresPreferencesRepo はPostgresPreferencesRepoを生成する。
func NewPostgresPreferencesRepo(db *sql.DB) *PostgresPreferencesRepo {
	return &PostgresPreferencesRepo{db: db}
}

// GetFavorites は保存済みのお気に入り一覧を返す。未保存の場合はnilを返す。
func (r *PostgresPreferencesRepo) GetFavorites(ctx context.Context) ([]model.Tender, error) {
	raw, err := r.getValue(ctx, prefKeyFavorites)
	if err != nil || raw == nil {
		return nil, err
	}

	var favorites []model.Tender
	if err := json.Unmarshal(raw, &favorites); err != nil {
		return nil, fmt.Errorf("お気に入りのデコードに失敗しました: %w", err)
	}
	return favorites, nil
}

// SaveFavorites はお気に入り一覧を全量置き換えで保存する。
func (r *PostgresPreferencesRepo) SaveFavorites(ctx context.Context, favorites []model.Tender) error {
	if favorites == nil {
		favorites = []model.Tender{}
	}
	return r.putValue(ctx, prefKeyFavorites, favorites)
}

// GetKeywords は保存済みのキーワードリストを返す。未保存の場合はnilを返す。
func (r *PostgresPreferencesRepo) GetKeywords(ctx context.Context) ([]string, error) {
	raw, err := r.getValue(ctx, prefKeyKeywords)
	if err != nil || raw == nil {
		return nil, err
	}

	var keywords []string
	if err := json.Unmarshal(raw, &keywords); err != nil {
		return nil, fmt.Errorf("キーワードのデコードに失敗しました: %w", err)
	}
	return keywords, nil
}

// SaveKeywords はキーワードリストを全量置き換えで保存する。
func (r *PostgresPreferencesRepo) SaveKeywords(ctx context.Context, keywords []string) error {
	if keywords == nil {
		keywords = []string{}
	}
	return r.putValue(ctx, prefKeyKeywords, keywords)
}

// GetLastViewed は最終閲覧日時（ISO-8601文字列）を返す。未保存の場合は空文字を返す。
func (r *PostgresPreferencesRepo) GetLastViewed(ctx context.Context) (string, error) {
	raw, err := r.getValue(ctx, prefKeyLastViewed)
	if err != nil || raw == nil {
		return "", err
	}

	var lastViewed string
	if err := json.Unmarshal(raw, &lastViewed); err != nil {
		return "", fmt.Errorf("最終閲覧日時のデコードに失敗しました: %w", err)
	}
	return lastViewed, nil
}

// SaveLastViewed は最終閲覧日時を保存する。
func (r *PostgresPreferencesRepo) SaveLastViewed(ctx context.Context, lastViewed string) error {
	return r.putValue(ctx, prefKeyLastViewed, lastViewed)
}

// getValue は設定キーのJSONB値を取得する。行が存在しない場合はnilを返す。
func (r *PostgresPreferencesRepo) getValue(ctx context.Context, name string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE name = $1`,
		name,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("設定の取得に失敗しました (%s): %w", name, err)
	}
	return value, nil
}

// putValue は設定キーのJSONB値をUPSERTで保存する。
func (r *PostgresPreferencesRepo) putValue(ctx context.Context, name string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("設定のエンコードに失敗しました (%s): %w", name, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO preferences (name, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (name)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		name, encoded,
	)
	if err != nil {
		return fmt.Errorf("設定の保存に失敗しました (%s): %w", name, err)
	}
	return nil
}
