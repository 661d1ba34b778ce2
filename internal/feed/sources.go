// Package feed はフィード供給元の設定とエントリのマッピングを提供する。
package feed

// Source は1つのフィード供給元の設定を表す。
type Source struct {
	// Selector は中継エンドポイントで使用する短い識別子。
	Selector string
	// URL はAtomフィードのベースURL（1ページ目）。
	URL string
	// SourceType はレコードに付与される供給元ラベル。
	SourceType string
}

// DefaultSources はPLACSP（公共調達プラットフォーム）の既定フィード一覧を返す。
func DefaultSources() []Source {
	return []Source{
		{
			Selector:   "perfiles",
			URL:        "https://contrataciondelsectorpublico.gob.es/sindicacion/sindicacion_643/licitacionesPerfilesContratanteCompleto3.atom",
			SourceType: "Perfiles Contratante",
		},
		{
			Selector:   "agregadas",
			URL:        "https://contrataciondelsectorpublico.gob.es/sindicacion/sindicacion_1044/PlataformasAgregadasSinMenores.atom",
			SourceType: "Plataformas Agregadas",
		},
		{
			Selector:   "menores",
			URL:        "https://contrataciondelsectorpublico.gob.es/sindicacion/sindicacion_1143/contratosMenoresPerfilesContratantes.atom",
			SourceType: "Contratos Menores",
		},
	}
}

// SourceBySelector はセレクタに一致する供給元を返す。
// 一致しない場合は ok=false を返す。
func SourceBySelector(sources []Source, selector string) (Source, bool) {
	for _, s := range sources {
		if s.Selector == selector {
			return s, true
		}
	}
	return Source{}, false
}
