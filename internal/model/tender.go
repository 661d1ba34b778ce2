// Package model はドメインモデルを定義する。
package model

// ContractType は契約種別の分類を表す。
// タイトル・概要・発注機関名の連結テキストからキーワード判定で導出される。
type ContractType string

const (
	// ContractTypeServices は役務契約（サービス）。
	ContractTypeServices ContractType = "Servicios"
	// ContractTypeSupplies は物品契約（納入）。
	ContractTypeSupplies ContractType = "Suministros"
	// ContractTypeWorks は工事契約。
	ContractTypeWorks ContractType = "Obras"
	// ContractTypeOther は上記いずれにも該当しない契約。
	ContractTypeOther ContractType = "Otros"
)

// Tender は1件の公共調達公告を表す正規化済みレコード。
// パイプラインが構築した後は不変として扱い、次回リフレッシュで全件置き換えられる。
// JSONタグはお気に入り永続化スキーマ（Tenderオブジェクトの配列）と共有する。
type Tender struct {
	// ID はフィードエントリごとに一意な識別子。重複排除のキーとして使用する。
	// ソースXMLに<id>が無い場合はコンテンツ由来のフォールバックIDが割り当てられる。
	ID string `json:"id"`
	// Title は人間可読のタイトル。欠落時はプレースホルダが入る。
	Title string `json:"title"`
	// Summary はHTMLタグ除去・最大長切り詰め済みの概要テキスト。
	Summary string `json:"summary"`
	// Link は外部参照URL。空の場合がある。
	Link string `json:"link"`
	// Updated はISO-8601形式の更新日時文字列。ソートと新着判定に使用する。
	Updated string `json:"updated"`
	// Amount は整形済みの通貨文字列。抽出できなかった場合は空（表示層が「Consultar」を出す）。
	Amount string `json:"amount,omitempty"`
	// Organism は発注機関（契約機関）名。導出値であり正式なものではない。
	Organism string `json:"organism,omitempty"`
	// Status は公告のライフサイクルラベル（公示/落札/締結/不調など）。
	// 構造化コードを優先し、テキストヒューリスティクスはフォールバック。
	Status string `json:"status,omitempty"`
	// ContractType は契約種別（Servicios/Suministros/Obras/Otros）。
	ContractType ContractType `json:"contractType"`
	// SourceType はレコードを生成したフィードの識別ラベル。
	SourceType string `json:"sourceType"`
	// KeywordsFound は検索対象テキスト中に見つかったキーワード（元の表記のまま）。
	KeywordsFound []string `json:"keywordsFound"`
	// IsRead はパイプラインでは常にfalseで初期化される。
	// 既読状態は表示層が最終閲覧日時と比較して管理する。
	IsRead bool `json:"isRead"`
}
