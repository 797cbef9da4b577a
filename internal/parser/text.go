package parser

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/deckforge/doc2slides/internal/document"
)

// TXTExtractor reads plain-text bytes as UTF-8 lines. No conversion step.
type TXTExtractor struct{}

func (p *TXTExtractor) Extract(ctx context.Context, data []byte) (*TXTExtraction, error) {
	if !utf8.Valid(data) {
		return nil, &ExtractionError{Format: document.TypeTXT, Err: fmt.Errorf("invalid utf-8 encoding")}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &ExtractionError{Format: document.TypeTXT, Err: err}
	}

	return &TXTExtraction{Lines: lines}, nil
}
