package textutil

import (
	"reflect"
	"sync"
	"testing"
)

func TestNormalize_LowercasesAndStripsAccents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"アクセント付き小文字化", "Innovación", "innovacion"},
		{"複数のアクセント", "Administración Pública", "administracion publica"},
		{"アクセントなし", "digital", "digital"},
		{"大文字のみ", "TELECOMUNICACIONES", "telecomunicaciones"},
		{"ウムラウト", "Müller", "muller"},
		{"空文字", "", ""},
		{"eñe はアクセント扱いで n になる", "diseño", "diseno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalize_ConcurrentCalls は複数goroutineからの同時呼び出しで
// 結果が壊れないことを検証する（go test -race で競合も検出される）。
// 集約処理がソースごとのgoroutineからNormalizeを呼ぶため必須の性質。
func TestNormalize_ConcurrentCalls(t *testing.T) {
	inputs := []string{
		"Innovación",
		"Administración Pública",
		"TELECOMUNICACIONES",
		"diseño y construcción",
	}
	wants := []string{
		"innovacion",
		"administracion publica",
		"telecomunicaciones",
		"diseno y construccion",
	}

	const goroutines = 8
	const iterations = 2000

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				idx := (g + i) % len(inputs)
				if got := Normalize(inputs[idx]); got != wants[idx] {
					t.Errorf("Normalize(%q) = %q, want %q", inputs[idx], got, wants[idx])
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestFindKeywords_MatchesAccentInsensitive(t *testing.T) {
	text := "Servicio de administración electrónica para la modernización"
	keywords := []string{"administracion electronica", "inteligencia artificial", "modernización"}

	got := FindKeywords(text, keywords)
	want := []string{"administracion electronica", "modernización"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindKeywords = %v, want %v", got, want)
	}
}

func TestFindKeywords_CaseInsensitive(t *testing.T) {
	text := "CONTRATO DE CIBERSEGURIDAD"
	keywords := []string{"ciberseguridad"}

	got := FindKeywords(text, keywords)
	if len(got) != 1 || got[0] != "ciberseguridad" {
		t.Errorf("FindKeywords = %v, want [ciberseguridad]", got)
	}
}

// 一致なしでもnilではなく空スライスを返すことを検証（JSONでnullにならないため）
func TestFindKeywords_NoMatch_ReturnsEmptyNonNil(t *testing.T) {
	got := FindKeywords("obra de carretera", []string{"sanidad", "educación"})

	if got == nil {
		t.Fatal("FindKeywords は nil を返してはならない")
	}
	if len(got) != 0 {
		t.Errorf("FindKeywords = %v, want 空スライス", got)
	}
}

// 正規化後に同一になるキーワードは1回だけ返すことを検証
func TestFindKeywords_DeduplicatesNormalizedKeywords(t *testing.T) {
	text := "proyecto de innovación tecnológica"
	keywords := []string{"Innovación", "innovacion", "INNOVACION"}

	got := FindKeywords(text, keywords)
	if len(got) != 1 {
		t.Fatalf("FindKeywords = %v, want 1件", got)
	}
	// 最初の表記が残る
	if got[0] != "Innovación" {
		t.Errorf("キーワード = %q, want %q", got[0], "Innovación")
	}
}

func TestFindKeywords_PreservesKeywordOrder(t *testing.T) {
	text := "servicios de datos y cloud para sanidad"
	keywords := []string{"sanidad", "cloud", "datos"}

	got := FindKeywords(text, keywords)
	want := []string{"sanidad", "cloud", "datos"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindKeywords = %v, want %v", got, want)
	}
}

func TestFindKeywords_IgnoresEmptyKeywords(t *testing.T) {
	got := FindKeywords("texto cualquiera", []string{"", "texto"})

	if len(got) != 1 || got[0] != "texto" {
		t.Errorf("FindKeywords = %v, want [texto]", got)
	}
}
