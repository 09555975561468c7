// Package issuebody turns raw Markdown issue bodies into the structured
// blocks the changelog renderer consumes. Only GitHub-flavored tables are
// extracted; everything else in the body is ignored.
package issuebody

import (
	"strings"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Parse returns one table block per GFM table found in body, in document
// order. Cell text has inline formatting removed and surrounding space
// trimmed. A body without tables yields nil.
func Parse(body string) []changelog.Block {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	source := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var blocks []changelog.Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		table, ok := n.(*extast.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		blocks = append(blocks, tableBlock(table, source))
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// tableBlock converts a goldmark table node into a changelog block.
func tableBlock(table *extast.Table, source []byte) changelog.Block {
	var header []string
	var cells [][]string

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *extast.TableHeader:
			header = rowText(row, source)
		case *extast.TableRow:
			cells = append(cells, rowText(row, source))
		}
	}

	return changelog.NewTableBlock(header, cells)
}

// rowText returns the text of every cell in a header or body row.
func rowText(row ast.Node, source []byte) []string {
	var values []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*extast.TableCell); ok {
			values = append(values, strings.TrimSpace(inlineText(c, source)))
		}
	}
	return values
}

// inlineText concatenates the literal text below n.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
