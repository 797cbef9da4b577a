package slides

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	xhtml "golang.org/x/net/html"

	"github.com/deckforge/doc2slides/internal/document"
)

// BodyLines converts a section's content into plain lines suitable for a
// slide body. Bullet sections are rendered with a leading glyph; markup left
// over from extraction is flattened to its text.
func BodyLines(sec document.Section) []string {
	content := strings.TrimSpace(sec.Content)
	if content == "" {
		return nil
	}

	if looksLikeMarkup(content) {
		content = flattenMarkup(content)
	}

	if sec.Type == document.SectionBullets {
		if items := listItems(content); len(items) > 0 {
			lines := make([]string, 0, len(items))
			for _, item := range items {
				lines = append(lines, "• "+item)
			}
			return lines
		}
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, stripBulletGlyph(line, sec.Type))
	}
	return lines
}

// listItems parses content as Markdown and returns the text of each list
// item, in document order. It returns nil when the content has no lists.
func listItems(content string) []string {
	src := []byte(content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var items []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.ListItem); ok {
			if t := nodeText(n, src); t != "" {
				items = append(items, t)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return items
}

// nodeText gets the text content of a goldmark AST node from its inline
// text leaves.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func looksLikeMarkup(content string) bool {
	return strings.Contains(content, "</") || strings.Contains(content, "/>")
}

// flattenMarkup renders markup to its visible text, one line per block.
func flattenMarkup(content string) string {
	node, err := xhtml.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var buf bytes.Buffer
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		switch n.Type {
		case xhtml.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				if buf.Len() > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(t)
			}
		case xhtml.ElementNode:
			switch n.Data {
			case "p", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "br":
				if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
					buf.WriteByte('\n')
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.TrimSpace(buf.String())
}

// stripBulletGlyph removes a leading bullet marker from a line that already
// carries one, so the glyph is not doubled when the slide theme adds its own.
func stripBulletGlyph(line string, typ document.SectionType) string {
	if typ != document.SectionBullets {
		return line
	}
	for _, prefix := range []string{"• ", "- ", "* "} {
		if strings.HasPrefix(line, prefix) {
			return "• " + strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}
