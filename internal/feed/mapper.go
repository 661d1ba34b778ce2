package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/daviidcruz/novahub/internal/extract"
	"github.com/daviidcruz/novahub/internal/model"
	"github.com/daviidcruz/novahub/internal/textutil"
	"github.com/daviidcruz/novahub/internal/xmlnav"
)

const (
	// summaryMaxLength は概要テキストの最大長（ルーン数）。超過分は省略記号で切り詰める。
	summaryMaxLength = 300
	// defaultTitle はタイトル欠落時のプレースホルダ。
	defaultTitle = "Sin título"
)

// SummarySanitizer は概要テキストのHTML除去インターフェース。
type SummarySanitizer interface {
	PlainText(raw string) string
}

// Mapper はフィードエントリを正規化済みTenderレコードに変換する。
// すべての抽出はベストエフォートであり、任意フィールドの欠落が
// エントリのマッピングを中断させることはない。
type Mapper struct {
	sanitizer SummarySanitizer
}

// NewMapper はMapperの新しいインスタンスを生成する。
func NewMapper(sanitizer SummarySanitizer) *Mapper {
	return &Mapper{sanitizer: sanitizer}
}

// MapEntries はパース済みフィードドキュメントのすべての<entry>をマッピングする。
func (m *Mapper) MapEntries(doc *xmlnav.Element, sourceType string, keywords []string) []model.Tender {
	entries := doc.FindAll("entry")
	tenders := make([]model.Tender, 0, len(entries))
	for _, entry := range entries {
		tenders = append(tenders, m.MapEntry(entry, sourceType, keywords))
	}
	return tenders
}

// MapEntry は1つの<entry>要素を1件のTenderレコードに変換する。
// 必須フィールド（id/title/updated）には非throwingなデフォルトが入り、
// 構造化サブツリー（ContractFolderStatus系）が存在する場合は
// テキストヒューリスティクスより優先される。
func (m *Mapper) MapEntry(entry *xmlnav.Element, sourceType string, keywords []string) model.Tender {
	title := entry.DescendantText("title")
	if title == "" {
		title = defaultTitle
	}

	updated := entry.DescendantText("updated")
	if updated == "" {
		updated = time.Now().UTC().Format(time.RFC3339)
	}

	var link string
	if linkEl := entry.FindDescendant("link"); linkEl != nil {
		link = linkEl.Attr("href")
	}

	id := entry.DescendantText("id")
	if id == "" {
		id = fallbackID(title, updated, link)
	}

	// contentの方が詳細を含むことが多いため優先し、無ければsummaryを使う
	rawDescription := entry.DescendantText("content")
	if rawDescription == "" {
		rawDescription = entry.DescendantText("summary")
	}
	cleaned := m.sanitizer.PlainText(rawDescription)

	organism, amount, status := m.extractBusinessFields(entry, cleaned)

	summary := truncateSummary(cleaned)

	// キーワード照合と契約種別判定は切り詰め前の全文に対して行う。
	// 切り詰めは表示用のSummaryフィールドにのみ適用される。
	fullText := title + " " + cleaned + " " + organism
	keywordsFound := textutil.FindKeywords(fullText, keywords)
	contractType := extract.ClassifyContractType(fullText)

	return model.Tender{
		ID:            id,
		Title:         title,
		Summary:       summary,
		Link:          link,
		Updated:       updated,
		Amount:        amount,
		Organism:      organism,
		Status:        status,
		ContractType:  contractType,
		SourceType:    sourceType,
		KeywordsFound: keywordsFound,
		IsRead:        false,
	}
}

// extractBusinessFields は発注機関・金額・状態を抽出する。
// エントリ内に構造化された契約フォルダ（ContractFolderStatus）が存在する場合は
// そちらを優先し、欠けているフィールドのみテキストヒューリスティクスで補う。
func (m *Mapper) extractBusinessFields(entry *xmlnav.Element, cleanedText string) (organism, amount, status string) {
	folder := entry.FindDescendant("ContractFolderStatus")

	if folder != nil {
		organism = findPathText(folder, "LocatedContractingParty", "Party", "PartyName", "Name")

		if raw := findPathText(folder, "ProcurementProject", "BudgetAmount", "TaxExclusiveAmount"); raw != "" {
			if formatted, ok := extract.NormalizeAmount(raw); ok {
				amount = formatted
			}
		}
		if amount == "" {
			if raw := findPathText(folder, "ProcurementProject", "BudgetAmount", "TotalAmount"); raw != "" {
				if formatted, ok := extract.NormalizeAmount(raw); ok {
					amount = formatted
				}
			}
		}

		// 落札結果コードは状態コードより具体的なため先に照合する
		if code := folder.DescendantText("ResultCode"); code != "" {
			if label, ok := extract.StatusFromResultCode(code); ok {
				status = label
			}
		}
		if status == "" {
			if code := folder.DescendantText("ContractFolderStatusCode"); code != "" {
				if label, ok := extract.StatusFromFolderCode(code); ok {
					status = label
				}
			}
		}
	}

	if organism == "" {
		organism = extract.Organism(cleanedText)
	}
	if amount == "" {
		amount = extract.Amount(cleanedText)
	}
	if status == "" {
		status = extract.StatusFromText(cleanedText)
	}

	return organism, amount, status
}

// findPathText はローカル名の系列を順にたどり、最後の要素のテキストを返す。
// 途中で要素が見つからない場合は空文字を返す。
func findPathText(el *xmlnav.Element, path ...string) string {
	current := el
	for _, local := range path {
		current = current.FindDescendant(local)
		if current == nil {
			return ""
		}
	}
	return current.Text()
}

// truncateSummary は概要テキストを最大長に切り詰め、超過時は省略記号を付与する。
func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryMaxLength {
		return s
	}
	return string(runes[:summaryMaxLength]) + "..."
}

// fallbackID はソースXMLに<id>が無いエントリに割り当てる代替識別子を生成する。
// リフレッシュをまたいだ重複排除を保つため、ランダム値ではなく
// コンテンツ由来の安定ハッシュを優先する。
func fallbackID(title, updated, link string) string {
	if title == "" && updated == "" && link == "" {
		return "gen-" + uuid.NewString()
	}
	sum := sha256.Sum256([]byte(title + "|" + updated + "|" + link))
	return "gen-" + hex.EncodeToString(sum[:8])
}

// NextPageLink はフィードドキュメントのページ送りリンク（rel="next"）を返す。
// フィード直下のlink要素のみを対象とし、エントリ内のlinkは無視する。
// 存在しない場合は空文字を返す。
func NextPageLink(doc *xmlnav.Element) string {
	for _, child := range doc.Children {
		if child.Local != "link" {
			continue
		}
		if child.Attr("rel") == "next" {
			return child.Attr("href")
		}
	}
	return ""
}
