package document

// Type identifies the source document format.
type Type string

const (
	TypePDF  Type = "pdf"
	TypeDOCX Type = "docx"
	TypeTXT  Type = "txt"
)

// SectionType classifies a section's content.
type SectionType string

const (
	SectionText    SectionType = "text"
	SectionBullets SectionType = "bullet_points"
	SectionTable   SectionType = "table"
	SectionImage   SectionType = "image"
	SectionGeneric SectionType = "generic"
)

// Section is one titled unit of extracted content destined for one slide.
type Section struct {
	Title   string      `json:"title"`
	Level   int         `json:"level"`
	Content string      `json:"content"`
	Type    SectionType `json:"type"`
}

// Content is the whole-document extraction result. Sections preserve source
// order; every document has at least one section.
type Content struct {
	Type       Type      `json:"type"`
	Title      string    `json:"title"`
	Sections   []Section `json:"sections"`
	RawContent string    `json:"rawContent"`
}

// Status is the lifecycle state of an uploaded document.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusConverted  Status = "converted"
	StatusError      Status = "error"
)

// RecognizedMIMETypes maps accepted upload MIME types to the document type.
var RecognizedMIMETypes = map[string]Type{
	"application/pdf": TypePDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": TypeDOCX,
	"text/plain": TypeTXT,
}
