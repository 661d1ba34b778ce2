// Package fetch はプロキシフォールバック付きのフィード取得を提供する。
//
// PLACSPのフィードはブラウザ由来の利用経路を引き継いでおり、単一の
// 取得経路に依存しない。直接取得に加えて複数のCORS中継サービスを
// 順に試行し、すべて失敗した場合にのみ「取得不能」として扱う。
package fetch

import "net/url"

// ProxyStrategy は1つの取得経路を表す。
// BuildURLは対象URLをその経路経由のリクエストURLに変換する。
type ProxyStrategy struct {
	Name     string
	BuildURL func(target string) string
}

// DefaultStrategies は既定の取得経路リストを返す。
// 先頭の直接取得が成功する限り中継サービスには到達しない。
// 各戦略は1回のフェッチにつき最大1回だけ試行される（同一戦略のリトライはしない）。
func DefaultStrategies() []ProxyStrategy {
	return []ProxyStrategy{
		{
			Name: "directo",
			BuildURL: func(target string) string {
				return target
			},
		},
		{
			Name: "corsproxy",
			BuildURL: func(target string) string {
				return "https://corsproxy.io/?" + url.QueryEscape(target)
			},
		},
		{
			Name: "allorigins",
			BuildURL: func(target string) string {
				return "https://api.allorigins.win/raw?url=" + url.QueryEscape(target)
			},
		},
		{
			Name: "codetabs",
			BuildURL: func(target string) string {
				return "https://api.codetabs.com/v1/proxy?quest=" + url.QueryEscape(target)
			},
		},
	}
}
