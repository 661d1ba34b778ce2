// Package xmlnav は名前空間プレフィックスに依存しないXML要素ナビゲーションを提供する。
//
// PLACSPのフィードはバリアントごとに名前空間プレフィックス（cac, cbc,
// cac-place-ext など）の使い方が一貫しないため、修飾名でのマッチングでは
// フィールドを取りこぼす。本パッケージはローカル名のみで要素を探索する
// 軽量な要素ツリーを構築する。
package xmlnav

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Attr は属性のローカル名と値を保持する。
type Attr struct {
	Local string
	Value string
}

// Element はパース済みXML要素。ローカル名・属性・子要素・直下のテキストを保持する。
type Element struct {
	// Local はタグ名のローカル部（名前空間プレフィックスを除いた部分）。
	Local    string
	Attrs    []Attr
	Children []*Element
	// CharData はこの要素直下の文字データ（子要素内のテキストは含まない）。
	CharData string
}

// Parse はXMLドキュメントを読み取り、ルート要素を返す。
// 整形式でないドキュメントはエラーを返す。呼び出し側はこれを
// 空のエントリリストとして扱い、例外として伝播させない（§7 パース失敗）。
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return charset.NewReaderLabel(label, input)
	}

	var root *Element
	var stack []*Element

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("XMLのパースに失敗しました: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Local: t.Name.Local}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Local: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].CharData += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("XMLドキュメントが空です")
	}
	return root, nil
}

// FindDescendant はサブツリー内でローカル名が一致する最初の要素を
// ドキュメント順（深さ優先）で返す。自分自身は対象に含まない。
// 見つからない場合はnilを返す。
func (e *Element) FindDescendant(local string) *Element {
	for _, child := range e.Children {
		if child.Local == local {
			return child
		}
		if found := child.FindDescendant(local); found != nil {
			return found
		}
	}
	return nil
}

// FindAll はサブツリー内でローカル名が一致するすべての要素を
// ドキュメント順で返す。自分自身は対象に含まない。
func (e *Element) FindAll(local string) []*Element {
	var result []*Element
	for _, child := range e.Children {
		if child.Local == local {
			result = append(result, child)
		}
		result = append(result, child.FindAll(local)...)
	}
	return result
}

// Attr はローカル名が一致する属性の値を返す。存在しない場合は空文字を返す。
func (e *Element) Attr(local string) string {
	for _, a := range e.Attrs {
		if a.Local == local {
			return a.Value
		}
	}
	return ""
}

// Text は要素のサブツリー全体のテキスト内容を連結し、前後の空白を除いて返す。
// 各要素では直下のテキストを先に、子要素のテキストをその後に連結する。
func (e *Element) Text() string {
	var b strings.Builder
	e.collectText(&b)
	return strings.TrimSpace(b.String())
}

func (e *Element) collectText(b *strings.Builder) {
	b.WriteString(e.CharData)
	for _, child := range e.Children {
		child.collectText(b)
	}
}

// DescendantText はローカル名で子孫要素を探し、そのテキスト内容を返す。
// 要素が見つからない場合は空文字を返す。
func (e *Element) DescendantText(local string) string {
	found := e.FindDescendant(local)
	if found == nil {
		return ""
	}
	return found.Text()
}
