package extract

import (
	"strings"

	"github.com/daviidcruz/novahub/internal/model"
)

// ClassifyContractType はタイトル・概要・発注機関名の連結テキストから
// 契約種別を判定する。カテゴリ語（servicios/suministros/obras）の
// 部分一致で先勝ち、どれにも一致しなければOtrosを返す。
func ClassifyContractType(text string) model.ContractType {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "servicios"):
		return model.ContractTypeServices
	case strings.Contains(lower, "suministros"):
		return model.ContractTypeSupplies
	case strings.Contains(lower, "obras"):
		return model.ContractTypeWorks
	default:
		return model.ContractTypeOther
	}
}
