// Package extract は公告テキスト・XMLノードから業務メタデータ
// （金額・発注機関・状態・契約種別）を抽出するヒューリスティクスを提供する。
//
// PLACSPのフィードはフィールドの形が一貫しないため、すべての抽出は
// ベストエフォートであり、見つからない場合は空文字を返す（エラーにはしない）。
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// amountLabelRegex は明示的なラベル（Importe/Valor estimado/Presupuesto base/Importe total）に
// 続くコロンと数値トークンを検出する。数値トークンは千区切りドット・小数カンマの欧州形式と
// 千区切りカンマ・小数ドットの形式の両方を受け付ける。
var amountLabelRegex = regexp.MustCompile(`(?i)(?:Importe|Valor estimado|Presupuesto base|Importe total)(?:.*?):\s*([\d.,]+)`)

// amountCurrencyRegex は通貨記号・通貨語を伴う裸の数値トークンを検出するフォールバック。
var amountCurrencyRegex = regexp.MustCompile(`(?i)([\d.,]+)\s?(?:€|EUR|euros)`)

// currencyPrinter はes-ESロケールの数値整形を行う。Printerは並行利用に対して安全。
var currencyPrinter = message.NewPrinter(language.EuropeanSpanish)

// Amount はテキストから金額を抽出し、es-ESロケールの2桁固定通貨文字列として返す。
// 優先順位: (1) ラベルパターン、(2) 通貨記号フォールバック。
// どちらにも一致しない、または数値として解釈できない場合は空文字を返す。
func Amount(text string) string {
	if m := amountLabelRegex.FindStringSubmatch(text); m != nil {
		if formatted, ok := NormalizeAmount(m[1]); ok {
			return formatted
		}
	}

	if m := amountCurrencyRegex.FindStringSubmatch(text); m != nil {
		if formatted, ok := NormalizeAmount(m[1]); ok {
			return formatted
		}
	}

	return ""
}

// NormalizeAmount は数値トークンの区切り文字の曖昧さを決定的に解決し、
// es-ESロケールの通貨文字列に整形する。
//
// 規則（§4.3の優先順位をそのまま実装する）:
//   - ドットとカンマの両方を含む: ドットは千区切り、カンマは小数点（欧州形式）。
//   - カンマのみ: カンマを小数点とみなす。
//   - ドットのみ: 最後のドット以降がちょうど2桁なら小数点、
//     それ以外はすべて千区切りとして除去する（"1.234" → 1234）。
//
// 解析に失敗した場合は ok=false を返す。推測による補完は行わない。
func NormalizeAmount(raw string) (string, bool) {
	clean := strings.Trim(raw, ".,")

	hasDot := strings.Contains(clean, ".")
	hasComma := strings.Contains(clean, ",")

	switch {
	case hasDot && hasComma:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case hasComma:
		clean = strings.Replace(clean, ",", ".", 1)
	case hasDot:
		last := strings.LastIndex(clean, ".")
		if len(clean)-last-1 == 2 {
			intPart := strings.ReplaceAll(clean[:last], ".", "")
			clean = intPart + "." + clean[last+1:]
		} else {
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return "", false
	}

	return FormatCurrency(value), true
}

// FormatCurrency は数値をes-ESロケールの2桁固定通貨文字列（例: "1.234,56 €"）に整形する。
func FormatCurrency(value float64) string {
	return currencyPrinter.Sprintf("%v €",
		number.Decimal(value,
			number.MinFractionDigits(2),
			number.MaxFractionDigits(2),
		),
	)
}
