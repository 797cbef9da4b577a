package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/deckforge/doc2slides/internal/document"
	"github.com/deckforge/doc2slides/internal/enhance"
	"github.com/deckforge/doc2slides/internal/parser"
	"github.com/deckforge/doc2slides/internal/progress"
	"github.com/deckforge/doc2slides/internal/segment"
)

// Worker processes a single document: extract, segment, enhance, store.
type Worker struct {
	pdf      *parser.PDFExtractor
	docx     *parser.DOCXExtractor
	txt      *parser.TXTExtractor
	enhancer *enhance.Enhancer
	tracker  *progress.Tracker
	log      *slog.Logger
}

func NewWorker(pdf *parser.PDFExtractor, docx *parser.DOCXExtractor, enhancer *enhance.Enhancer, tracker *progress.Tracker, log *slog.Logger) *Worker {
	return &Worker{
		pdf:      pdf,
		docx:     docx,
		txt:      &parser.TXTExtractor{},
		enhancer: enhancer,
		tracker:  tracker,
		log:      log,
	}
}

// Process runs the full pipeline for one document. Extraction failure is
// fatal to the document; enhancement failure is not — the enhancer degrades
// per section and the document still completes as processed.
func (w *Worker) Process(ctx context.Context, doc *document.Document) {
	log := w.log.With("doc_id", doc.ID, "name", doc.OriginalName)

	doc.SetStatus(document.StatusProcessing)
	w.tracker.SetStage(doc.ID, progress.StageExtracting)

	content, err := w.extract(ctx, doc)
	if err != nil {
		log.Error("extraction failed", "error", err)
		doc.SetFailed(err.Error())
		w.tracker.Delete(doc.ID)
		return
	}
	log.Info("document extracted", "sections", len(content.Sections), "title", content.Title)

	enhanced := w.enhancer.Enhance(ctx, content, doc.ID)
	doc.SetProcessed(enhanced)
	log.Info("document processed", "sections", len(enhanced.Sections))
}

// extract dispatches on the declared MIME type and converts the raw result
// to the common document shape at the segmenter boundary.
func (w *Worker) extract(ctx context.Context, doc *document.Document) (*document.Content, error) {
	typ, err := parser.TypeForMIME(doc.MIMEType)
	if err != nil {
		return nil, err
	}

	data := doc.Data()
	switch typ {
	case document.TypePDF:
		res, err := w.pdf.Extract(ctx, data)
		if err != nil {
			return nil, err
		}
		var titleLines []string
		if len(res.Pages) > 0 {
			titleLines = strings.Split(res.Pages[0], "\n")
		}
		return &document.Content{
			Type:       document.TypePDF,
			Title:      segment.TitleFromLines(titleLines),
			Sections:   segment.PDF(res.Pages),
			RawContent: strings.Join(res.Pages, "\n"),
		}, nil

	case document.TypeDOCX:
		res, err := w.docx.Extract(ctx, data)
		if err != nil {
			return nil, err
		}
		return &document.Content{
			Type:       document.TypeDOCX,
			Title:      segment.TitleFromMarkup(res.Markup),
			Sections:   segment.Markup(res.Markup),
			RawContent: res.Markup,
		}, nil

	case document.TypeTXT:
		res, err := w.txt.Extract(ctx, data)
		if err != nil {
			return nil, err
		}
		return &document.Content{
			Type:       document.TypeTXT,
			Title:      segment.TitleFromLines(res.Lines),
			Sections:   segment.TXT(res.Lines),
			RawContent: strings.Join(res.Lines, "\n"),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported document type: %s", typ)
	}
}
