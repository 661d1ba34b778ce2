// Package textutil はアクセント・大文字小文字に依存しないテキスト照合を提供する。
// キーワードマッチングと契約種別判定の土台となる純粋関数のみを含む。
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer はNFD正規分解→結合文字（ダイアクリティカルマーク）除去→NFC再構成を行う。
// transform.Chainが返すTransformerは内部バッファを持ちスレッドセーフではないため、
// 共有インスタンスは持たず呼び出しごとに構築する。
func foldTransformer() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
}

// Normalize は文字列を小文字化し、ダイアクリティカルマークを除去する。
// "Innovación" と "innovacion" が同一視されるようにするための照合キーを返す。
// 複数のgoroutineから同時に呼び出せる。
// 変換に失敗した場合は小文字化のみ適用した文字列を返す（失敗モードなし）。
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer(), s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// FindKeywords はテキスト中に含まれるキーワードを検索する。
// テキストとキーワードの両方を正規化して部分一致を判定し、
// 一致したキーワードは元の表記のまま返す。結果は重複なしで、
// キーワードリストの並び順を保つ（表示順として十分な安定性）。
func FindKeywords(text string, keywords []string) []string {
	normalizedText := Normalize(text)

	matches := []string{}
	seen := make(map[string]struct{}, len(keywords))

	for _, k := range keywords {
		normalized := Normalize(k)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		if strings.Contains(normalizedText, normalized) {
			seen[normalized] = struct{}{}
			matches = append(matches, k)
		}
	}

	return matches
}
