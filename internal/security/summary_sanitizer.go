// Package security はアプリケーションのセキュリティ機能を提供する。
//
// SummarySanitizer はフィードエントリの概要テキストに混入するHTMLを除去し、
// プレーンテキストとして安全に扱えるようにする。PLACSPのフィードは
// summary/content要素にHTML断片が混ざることがあるため、レコード構築前に
// 必ず通す。bluemondayの許可リストベースのポリシーを使用する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SummarySanitizerService は概要テキストのHTML除去機能のインターフェースを定義する。
type SummarySanitizerService interface {
	// PlainText はHTML断片を含むテキストからすべてのタグを除去し、
	// 実体参照を復元したプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。同一入力に対して常に同一出力を返す（冪等）。
	PlainText(raw string) string
}

// summarySanitizer はSummarySanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフに処理を行う。
type summarySanitizer struct {
	policy *bluemonday.Policy
}

// NewSummarySanitizer はSummarySanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyはすべてのタグと属性を除去する（テキストノードのみ通過させる）。
func NewSummarySanitizer() *summarySanitizer {
	return &summarySanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// PlainText はHTMLタグをすべて除去し、実体参照を復元し、
// 連続する空白を単一スペースに畳み込んだテキストを返す。
func (s *summarySanitizer) PlainText(raw string) string {
	if raw == "" {
		return ""
	}

	stripped := s.policy.Sanitize(raw)
	unescaped := html.UnescapeString(stripped)

	// フィード内の改行・タブ混じりのテキストを表示向けに整える
	return strings.Join(strings.Fields(unescaped), " ")
}
