package extract

import (
	"testing"

	"github.com/daviidcruz/novahub/internal/model"
)

func TestOrganism_ExtractsUntilDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"セミコロン区切り",
			"Órgano de Contratación: Ayuntamiento de Madrid; Estado: PUB",
			"Ayuntamiento de Madrid",
		},
		{
			"行末まで",
			"Órgano de Contratación: Diputación de Valencia",
			"Diputación de Valencia",
		},
		{
			"小文字ラベル",
			"órgano de contratación: Universidad de Sevilla, Importe: 1.000,00",
			"Universidad de Sevilla",
		},
		{
			"HTMLタグ手前まで",
			"Órgano de Contratación: Junta de Andalucía<br>",
			"Junta de Andalucía",
		},
		{
			"ラベルなし",
			"Servicio de limpieza de edificios",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Organism(tt.text)
			if got != tt.want {
				t.Errorf("Organism(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestStatusFromResultCode(t *testing.T) {
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{"1", "Adjudicada", true},
		{"2", "Formalizada", true},
		{"3", "Desierta", true},
		{"4", "Desistida", true},
		{"5", "Renuncia", true},
		{"8", "Desierta", true},
		{" 2 ", "Formalizada", true},
		{"9", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := StatusFromResultCode(tt.code)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("StatusFromResultCode(%q) = (%q, %v), want (%q, %v)", tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStatusFromFolderCode(t *testing.T) {
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{"PRE", "Anuncio Previo", true},
		{"PUB", "En plazo", true},
		{"EV", "Evaluación", true},
		{"ADJ", "Adjudicada", true},
		{"RES", "Resuelta", true},
		{"ANUL", "Anulada", true},
		{"pub", "En plazo", true},
		{"XYZ", "", false},
	}

	for _, tt := range tests {
		got, ok := StatusFromFolderCode(tt.code)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("StatusFromFolderCode(%q) = (%q, %v), want (%q, %v)", tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStatusFromText(t *testing.T) {
	got := StatusFromText("Expediente 12/2025; Estado: En plazo; Importe: 1.000,00")
	if got != "En plazo" {
		t.Errorf("StatusFromText = %q, want %q", got, "En plazo")
	}

	if got := StatusFromText("sin información de estado"); got != "" {
		t.Errorf("StatusFromText = %q, want 空文字", got)
	}
}

func TestClassifyContractType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.ContractType
	}{
		{"servicios", "Contrato de SERVICIOS de limpieza", model.ContractTypeServices},
		{"suministros", "Suministros de material informático", model.ContractTypeSupplies},
		{"obras", "Ejecución de obras de reforma", model.ContractTypeWorks},
		{"servicios が suministros より優先", "servicios y suministros", model.ContractTypeServices},
		{"該当なし", "Concesión demanial", model.ContractTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyContractType(tt.text)
			if got != tt.want {
				t.Errorf("ClassifyContractType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
