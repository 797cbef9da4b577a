package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deckforge/doc2slides/internal/document"
)

// BuildError reports a failed conversion to a slide deck. It is fatal to the
// conversion step only; the processed document content is unaffected.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string { return fmt.Sprintf("build slides: %v", e.Err) }

func (e *BuildError) Unwrap() error { return e.Err }

// Client is the slide-deck sink: it accepts processed document content plus
// an OAuth access credential and produces a presentation via the Google
// Slides REST API.
type Client struct {
	slidesURL  string
	driveURL   string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		slidesURL: "https://slides.googleapis.com/v1",
		driveURL:  "https://www.googleapis.com/drive/v3",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewClientWithBase overrides the API endpoints, for tests.
func NewClientWithBase(slidesURL, driveURL string) *Client {
	c := NewClient()
	c.slidesURL = slidesURL
	c.driveURL = driveURL
	return c
}

// CreatePresentation builds a deck from the document content and returns the
// opaque presentation identifier. When templateID is set the template file is
// copied first and slides are appended to the copy.
func (c *Client) CreatePresentation(ctx context.Context, content *document.Content, accessToken, templateID, subtitle string) (string, error) {
	name := content.Title
	if name == "" {
		name = "Untitled"
	}
	name += " - Generated Presentation"

	var presentationID string
	var err error
	if templateID != "" {
		presentationID, err = c.copyTemplate(ctx, accessToken, templateID, name)
	} else {
		presentationID, err = c.createBlank(ctx, accessToken, name)
	}
	if err != nil {
		return "", &BuildError{Err: err}
	}

	requests := buildRequests(content, subtitle)
	if err := c.batchUpdate(ctx, accessToken, presentationID, requests); err != nil {
		return "", &BuildError{Err: err}
	}

	return presentationID, nil
}

func (c *Client) createBlank(ctx context.Context, accessToken, name string) (string, error) {
	var resp struct {
		PresentationID string `json:"presentationId"`
	}
	err := c.do(ctx, accessToken, c.slidesURL+"/presentations", map[string]any{"title": name}, &resp)
	if err != nil {
		return "", fmt.Errorf("create presentation: %w", err)
	}
	if resp.PresentationID == "" {
		return "", fmt.Errorf("create presentation: empty presentation id")
	}
	return resp.PresentationID, nil
}

func (c *Client) copyTemplate(ctx context.Context, accessToken, templateID, name string) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	u := c.driveURL + "/files/" + templateID + "/copy"
	err := c.do(ctx, accessToken, u, map[string]any{"name": name}, &resp)
	if err != nil {
		return "", fmt.Errorf("copy template: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("copy template: empty file id")
	}
	return resp.ID, nil
}

func (c *Client) batchUpdate(ctx context.Context, accessToken, presentationID string, requests []map[string]any) error {
	u := c.slidesURL + "/presentations/" + presentationID + ":batchUpdate"
	if err := c.do(ctx, accessToken, u, map[string]any{"requests": requests}, nil); err != nil {
		return fmt.Errorf("batch update: %w", err)
	}
	return nil
}

// do posts a JSON body with bearer auth and decodes the JSON response.
func (c *Client) do(ctx context.Context, accessToken, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(respBody), 300))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
