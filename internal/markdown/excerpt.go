package markdown

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PlainText flattens a markdown body to its visible text, one space between
// blocks. Code blocks are skipped so an excerpt never opens with a snippet.
func PlainText(body string) string {
	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		if t, ok := n.(*ast.Text); ok {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt derives a short summary from a markdown body, truncated to at most
// max runes on a word boundary.
func Excerpt(body string, max int) string {
	plain := PlainText(body)
	runes := []rune(plain)
	if len(runes) <= max {
		return plain
	}

	cut := max
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "…"
}
