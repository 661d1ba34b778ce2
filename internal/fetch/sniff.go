package fetch

import (
	"bytes"
	"strings"
)

// utf8BOM はUTF-8のバイトオーダーマーク。一部の中継サービスが先頭に残すことがある。
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LooksLikeXML はレスポンスボディがXMLドキュメントらしいかを判定する。
// 中継サービスはエラー時にHTMLのエラーページやJSONを200で返すことがあるため、
// パースに回す前の軽量なチェックとして使用する。
func LooksLikeXML(body []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}

	// 先頭4KBだけ検査すればプロローグとルート要素の判定に十分
	checkSize := 4096
	if len(trimmed) < checkSize {
		checkSize = len(trimmed)
	}
	prefix := strings.ToLower(string(trimmed[:checkSize]))

	// 中継サービスが返すHTMLエラーページを除外する
	if strings.HasPrefix(prefix, "<!doctype html") || strings.HasPrefix(prefix, "<html") {
		return false
	}

	return true
}
