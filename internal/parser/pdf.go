package parser

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deckforge/doc2slides/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor extracts page text from PDF bytes. Pages are processed in
// fixed-size batches to bound peak memory on large documents: within a batch
// pages are read concurrently, then results are serialized back into page
// order before the next batch starts.
type PDFExtractor struct {
	BatchSize  int           // pages per batch, default 10
	BatchPause time.Duration // pause between batches, default 100ms
	Log        *slog.Logger
}

func (p *PDFExtractor) batchSize() int {
	if p.BatchSize > 0 {
		return p.BatchSize
	}
	return 10
}

func (p *PDFExtractor) batchPause() time.Duration {
	if p.BatchPause > 0 {
		return p.BatchPause
	}
	return 100 * time.Millisecond
}

// Extract reads all pages of the PDF. A page that fails individually is
// substituted with a placeholder rather than aborting the whole document.
func (p *PDFExtractor) Extract(ctx context.Context, data []byte) (*PDFExtraction, error) {
	if len(data) == 0 {
		return nil, &ExtractionError{Format: document.TypePDF, Err: fmt.Errorf("empty data stream")}
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Format: document.TypePDF, Err: fmt.Errorf("open pdf: %w", err)}
	}

	numPages := reader.NumPage()
	pages := make([]string, numPages)
	batchSize := p.batchSize()

	for batchStart := 1; batchStart <= numPages; batchStart += batchSize {
		batchEnd := batchStart + batchSize - 1
		if batchEnd > numPages {
			batchEnd = numPages
		}

		type pageResult struct {
			num  int
			text string
		}
		results := make(chan pageResult, batchEnd-batchStart+1)
		for n := batchStart; n <= batchEnd; n++ {
			go func(n int) {
				results <- pageResult{num: n, text: p.extractPage(reader, n)}
			}(n)
		}
		for i := batchStart; i <= batchEnd; i++ {
			r := <-results
			pages[r.num-1] = r.text
		}

		// Short yield between batches so a large document does not
		// monopolize the scheduler.
		if batchEnd < numPages {
			select {
			case <-time.After(p.batchPause()):
			case <-ctx.Done():
				return nil, &ExtractionError{Format: document.TypePDF, Err: ctx.Err()}
			}
		}
	}

	return &PDFExtraction{Pages: pages}, nil
}

// extractPage reads a single page, converting any failure (including a
// library panic on malformed content streams) into a placeholder string.
func (p *PDFExtractor) extractPage(reader *pdflib.Reader, pageNum int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			if p.Log != nil {
				p.Log.Warn("pdf page extraction panicked", "page", pageNum, "panic", r)
			}
			text = fmt.Sprintf("[Error extracting page %d]", pageNum)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return fmt.Sprintf("[Error extracting page %d]", pageNum)
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		if p.Log != nil {
			p.Log.Warn("pdf page extraction failed", "page", pageNum, "error", err)
		}
		return fmt.Sprintf("[Error extracting page %d]", pageNum)
	}
	return content
}
