package xmlnav

import (
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:cac="urn:dgpe:names:draft:codice:schema:xsd:CommonAggregateComponents-2"
      xmlns:cbc="urn:dgpe:names:draft:codice:schema:xsd:CommonBasicComponents-2">
  <title>Licitaciones</title>
  <link rel="next" href="https://example.com/page2.atom"/>
  <entry>
    <id>urn:uuid:entry-1</id>
    <title>Servicio de limpieza</title>
    <cac:ContractFolderStatus>
      <cbc:ContractFolderStatusCode>PUB</cbc:ContractFolderStatusCode>
      <cac:ProcurementProject>
        <cac:BudgetAmount>
          <cbc:TaxExclusiveAmount currencyID="EUR">100000.00</cbc:TaxExclusiveAmount>
        </cac:BudgetAmount>
      </cac:ProcurementProject>
    </cac:ContractFolderStatus>
  </entry>
</feed>`

func TestParse_BuildsElementTree(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse がエラーを返した: %v", err)
	}

	if root.Local != "feed" {
		t.Errorf("ルート要素 = %q, want %q", root.Local, "feed")
	}
}

// 名前空間プレフィックスの有無に関わらずローカル名で探索できることを検証
func TestFindDescendant_IgnoresNamespacePrefix(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse がエラーを返した: %v", err)
	}

	folder := root.FindDescendant("ContractFolderStatus")
	if folder == nil {
		t.Fatal("ContractFolderStatus が見つからない")
	}

	code := folder.DescendantText("ContractFolderStatusCode")
	if code != "PUB" {
		t.Errorf("ContractFolderStatusCode = %q, want %q", code, "PUB")
	}
}

func TestFindDescendant_NotFound_ReturnsNil(t *testing.T) {
	root, _ := Parse(strings.NewReader(sampleDoc))

	if found := root.FindDescendant("NoSuchElement"); found != nil {
		t.Errorf("存在しない要素で %v が返った, want nil", found)
	}
}

// FindDescendant は自分自身を対象に含まないことを検証
func TestFindDescendant_ExcludesSelf(t *testing.T) {
	root, _ := Parse(strings.NewReader(sampleDoc))

	if found := root.FindDescendant("feed"); found != nil {
		t.Error("FindDescendant が自分自身を返した")
	}
}

func TestFindAll_ReturnsDocumentOrder(t *testing.T) {
	doc := `<feed><entry><id>1</id></entry><entry><id>2</id></entry><entry><id>3</id></entry></feed>`
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse がエラーを返した: %v", err)
	}

	entries := root.FindAll("entry")
	if len(entries) != 3 {
		t.Fatalf("entry数 = %d, want 3", len(entries))
	}

	for i, want := range []string{"1", "2", "3"} {
		if got := entries[i].DescendantText("id"); got != want {
			t.Errorf("entries[%d].id = %q, want %q", i, got, want)
		}
	}
}

func TestAttr_ReturnsValueOrEmpty(t *testing.T) {
	root, _ := Parse(strings.NewReader(sampleDoc))

	link := root.FindDescendant("link")
	if link == nil {
		t.Fatal("link が見つからない")
	}

	if got := link.Attr("rel"); got != "next" {
		t.Errorf("rel = %q, want %q", got, "next")
	}
	if got := link.Attr("hreflang"); got != "" {
		t.Errorf("存在しない属性 = %q, want 空文字", got)
	}
}

func TestText_ConcatenatesSubtree(t *testing.T) {
	doc := `<PartyName><Name>Ayuntamiento</Name><Sub> de Madrid</Sub></PartyName>`
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse がエラーを返した: %v", err)
	}

	got := root.Text()
	if got != "Ayuntamiento de Madrid" {
		t.Errorf("Text = %q, want %q", got, "Ayuntamiento de Madrid")
	}
}

func TestText_TrimsSurroundingWhitespace(t *testing.T) {
	doc := "<title>\n    Servicio de limpieza\n  </title>"
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse がエラーを返した: %v", err)
	}

	if got := root.Text(); got != "Servicio de limpieza" {
		t.Errorf("Text = %q, want %q", got, "Servicio de limpieza")
	}
}

func TestParse_MalformedXML_ReturnsError(t *testing.T) {
	_, err := Parse(strings.NewReader("<feed><entry></feed>"))
	if err == nil {
		t.Fatal("不正なXMLでエラーが返らなかった")
	}
}

func TestParse_EmptyDocument_ReturnsError(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	if err == nil {
		t.Fatal("空ドキュメントでエラーが返らなかった")
	}
}

// ISO-8859-1宣言付きドキュメントをcharset変換込みで読めることを検証
func TestParse_NonUTF8Charset(t *testing.T) {
	// "Órgano" のISO-8859-1バイト表現（Ó = 0xD3）
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><title>\xd3rgano</title>"
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse がエラーを返した: %v", err)
	}

	if got := root.Text(); got != "Órgano" {
		t.Errorf("Text = %q, want %q", got, "Órgano")
	}
}
