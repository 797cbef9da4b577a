package parser

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/deckforge/doc2slides/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor converts DOCX bytes into an HTML-like markup string. Heading
// paragraph styles become <h1>..<h6> tags, list paragraphs become <ul><li>
// runs, everything else becomes <p>. Conversion is bounded by a timeout so a
// corrupt archive cannot hang the pipeline.
type DOCXExtractor struct {
	Timeout time.Duration // default 60s
}

func (p *DOCXExtractor) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return 60 * time.Second
}

func (p *DOCXExtractor) Extract(ctx context.Context, data []byte) (*DOCXExtraction, error) {
	if len(data) == 0 {
		return nil, &ExtractionError{Format: document.TypeDOCX, Err: fmt.Errorf("empty data stream")}
	}

	type convResult struct {
		markup string
		err    error
	}
	done := make(chan convResult, 1)
	go func() {
		markup, err := convertToMarkup(data)
		done <- convResult{markup: markup, err: err}
	}()

	timer := time.NewTimer(p.timeout())
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, &ExtractionError{Format: document.TypeDOCX, Err: r.err}
		}
		return &DOCXExtraction{Markup: r.markup}, nil
	case <-timer.C:
		return nil, &ExtractionError{Format: document.TypeDOCX, Err: fmt.Errorf("conversion timeout after %s", p.timeout())}
	case <-ctx.Done():
		return nil, &ExtractionError{Format: document.TypeDOCX, Err: ctx.Err()}
	}
}

func convertToMarkup(data []byte) (markup string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse docx: panic: %v", r)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var buf strings.Builder
	inList := false

	closeList := func() {
		if inList {
			buf.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		escaped := html.EscapeString(text)

		if level := headingLevel(para); level > 0 {
			closeList()
			fmt.Fprintf(&buf, "<h%d>%s</h%d>\n", level, escaped, level)
			continue
		}
		if isListParagraph(para) {
			if !inList {
				buf.WriteString("<ul>\n")
				inList = true
			}
			fmt.Fprintf(&buf, "<li>%s</li>\n", escaped)
			continue
		}
		closeList()
		fmt.Fprintf(&buf, "<p>%s</p>\n", escaped)
	}
	closeList()

	return buf.String(), nil
}

func headingLevel(para *docx.Paragraph) int {
	style := paragraphStyle(para)
	if style == "" {
		return 0
	}
	for level := 1; level <= 6; level++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", level)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", level)) {
			return level
		}
	}
	return 0
}

func isListParagraph(para *docx.Paragraph) bool {
	return strings.EqualFold(paragraphStyle(para), "ListParagraph")
}

func paragraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
