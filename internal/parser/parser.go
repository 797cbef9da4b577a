package parser

import (
	"fmt"

	"github.com/deckforge/doc2slides/internal/document"
)

// ExtractionError reports a document that could not be parsed: corrupt data,
// wrong encoding, empty stream, or a conversion timeout. It is fatal to the
// document's processing.
type ExtractionError struct {
	Format document.Type
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// PDFExtraction is the raw result of PDF extraction: one text blob per page,
// in page order. Pages that failed individually hold a placeholder string.
type PDFExtraction struct {
	Pages []string
}

// DOCXExtraction is the raw result of DOCX extraction: an HTML-like markup
// string in which heading tags carry the section-boundary signal.
type DOCXExtraction struct {
	Markup string
}

// TXTExtraction is the raw result of plain-text extraction: the file split
// into lines, blank lines included.
type TXTExtraction struct {
	Lines []string
}

// TypeForMIME maps a declared MIME type to the document type, rejecting
// anything outside the recognized set.
func TypeForMIME(mimeType string) (document.Type, error) {
	t, ok := document.RecognizedMIMETypes[mimeType]
	if !ok {
		return "", fmt.Errorf("unsupported mime type: %s", mimeType)
	}
	return t, nil
}

// IsSupportedMIME checks whether a declared MIME type is recognized.
func IsSupportedMIME(mimeType string) bool {
	_, ok := document.RecognizedMIMETypes[mimeType]
	return ok
}
