package feed

// defaultKeywords はカスタムキーワードが保存されていない場合に使用する
// 既定のキーワードセット（NovaGobのテーマ定義に由来する）。
var defaultKeywords = []string{
	// テーマ全般
	"Innovación pública", "Gobierno abierto", "Participación ciudadana",
	"Transparencia", "Transformación digital", "Inteligencia artificial",
	"Ciudades inteligentes", "Smart city", "Modernización", "Gestión pública",
	// サービス・成果物
	"Consultoría", "Formación", "Plataformas colaborativas",
	"Organización de eventos", "Premios", "Proyectos de innovación",
	"Publicaciones", "Informes", "Comunicación", "Divulgación",
	// 方法論
	"Laboratorio", "Lab", "Co-creación", "Agile", "Ágil",
	"Innovación abierta", "Prototipado", "Experimentación",
	"Datos", "Data", "Gestión del cambio",
}

// DefaultKeywords は既定キーワードリストのコピーを返す。
// 呼び出し側が変更してもパッケージ内の定義には影響しない。
func DefaultKeywords() []string {
	keywords := make([]string, len(defaultKeywords))
	copy(keywords, defaultKeywords)
	return keywords
}
