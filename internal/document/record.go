package document

import (
	"sync"
	"time"
)

// Document tracks the state of a single uploaded document through the
// upload -> processing -> {processed|error} -> converted lifecycle.
type Document struct {
	mu sync.Mutex

	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	MIMEType     string `json:"mimeType"`

	Status Status `json:"status"`

	UploadedAt  time.Time  `json:"uploadedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ConvertedAt *time.Time `json:"convertedAt,omitempty"`

	Content        *Content `json:"content,omitempty"`
	PresentationID string   `json:"slidePresentationId,omitempty"`
	Error          string   `json:"error,omitempty"`

	// Raw upload bytes, not serialized. Released once processing finishes.
	data []byte

	updatedAt time.Time
}

// SetData sets the raw file bytes for processing.
func (d *Document) SetData(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = data
	d.updatedAt = time.Now()
}

// Data returns the raw file bytes.
func (d *Document) Data() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data
}

// SetStatus updates the lifecycle status.
func (d *Document) SetStatus(status Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Status = status
	d.updatedAt = time.Now()
}

// SetProcessed records the processed content and releases the raw bytes.
func (d *Document) SetProcessed(content *Content) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	d.Content = content
	d.Status = StatusProcessed
	d.ProcessedAt = &now
	d.data = nil
	d.updatedAt = now
}

// SetFailed marks processing as failed.
func (d *Document) SetFailed(errMsg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Status = StatusError
	d.Error = errMsg
	d.data = nil
	d.updatedAt = time.Now()
}

// SetConverted records the presentation produced by the slide sink.
func (d *Document) SetConverted(presentationID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	d.Status = StatusConverted
	d.PresentationID = presentationID
	d.ConvertedAt = &now
	d.updatedAt = now
}

// Snapshot is a read-only, JSON-safe copy of document state.
type Snapshot struct {
	ID             string     `json:"id"`
	OriginalName   string     `json:"originalName"`
	MIMEType       string     `json:"mimeType"`
	Status         Status     `json:"status"`
	UploadedAt     time.Time  `json:"uploadedAt"`
	ProcessedAt    *time.Time `json:"processedAt,omitempty"`
	ConvertedAt    *time.Time `json:"convertedAt,omitempty"`
	Content        *Content   `json:"content,omitempty"`
	PresentationID string     `json:"slidePresentationId,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// Snapshot returns a copy of the document state safe to serialize while the
// pipeline keeps mutating the original.
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		ID:             d.ID,
		OriginalName:   d.OriginalName,
		MIMEType:       d.MIMEType,
		Status:         d.Status,
		UploadedAt:     d.UploadedAt,
		ProcessedAt:    d.ProcessedAt,
		ConvertedAt:    d.ConvertedAt,
		Content:        d.Content,
		PresentationID: d.PresentationID,
		Error:          d.Error,
	}
}
