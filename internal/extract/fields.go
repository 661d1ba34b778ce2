package extract

import (
	"regexp"
	"strings"
)

// organismRegex は "Órgano de Contratación:" ラベルに続くテキストを、
// 次の区切り（セミコロン・カンマ・文末ピリオド・山括弧・行末）まで取得する。
var organismRegex = regexp.MustCompile(`(?i)Órgano de Contratación:\s*(.*?)(?:;|,|\. |<|$)`)

// statusTextRegex は "Estado:" ラベルに続く状態テキストのフォールバック抽出を行う。
var statusTextRegex = regexp.MustCompile(`(?i)Estado:\s*(.*?)(?:;|,|\. |<|$)`)

// resultCodeLabels はCODICEのTenderResult/ResultCodeコード値から状態ラベルへの対応表。
// 構造化フィールドが存在する場合はテキストヒューリスティクスより優先される。
var resultCodeLabels = map[string]string{
	"1": "Adjudicada",
	"2": "Formalizada",
	"3": "Desierta",
	"4": "Desistida",
	"5": "Renuncia",
	"8": "Desierta",
}

// folderStatusLabels はContractFolderStatusCodeコード値から状態ラベルへの対応表。
var folderStatusLabels = map[string]string{
	"PRE":  "Anuncio Previo",
	"PUB":  "En plazo",
	"EV":   "Evaluación",
	"ADJ":  "Adjudicada",
	"RES":  "Resuelta",
	"ANUL": "Anulada",
}

// Organism はテキストから発注機関名を抽出する。見つからない場合は空文字を返す。
func Organism(text string) string {
	m := organismRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// StatusFromResultCode は構造化された落札結果コードを状態ラベルに変換する。
// 未知のコードの場合は ok=false を返し、呼び出し側はテキストフォールバックに進む。
func StatusFromResultCode(code string) (string, bool) {
	label, ok := resultCodeLabels[strings.TrimSpace(code)]
	return label, ok
}

// StatusFromFolderCode はContractFolderStatusCodeを状態ラベルに変換する。
// 未知のコードの場合は ok=false を返す。
func StatusFromFolderCode(code string) (string, bool) {
	label, ok := folderStatusLabels[strings.ToUpper(strings.TrimSpace(code))]
	return label, ok
}

// StatusFromText は "Estado:" ラベルによるテキストヒューリスティクスで状態を抽出する。
// 構造化コードが存在しない、または認識できない場合にのみ使用する。
func StatusFromText(text string) string {
	m := statusTextRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
