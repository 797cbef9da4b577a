package slides

import (
	"fmt"
	"strings"

	"github.com/deckforge/doc2slides/internal/document"
)

// maxBodyChars caps the text inserted into a single body placeholder so a
// dense section cannot overflow the slide.
const maxBodyChars = 2000

// buildRequests assembles the batchUpdate request list: one title slide
// followed by one TITLE_AND_BODY slide per section.
func buildRequests(content *document.Content, subtitle string) []map[string]any {
	requests := make([]map[string]any, 0, 2+len(content.Sections)*3)

	requests = append(requests,
		map[string]any{
			"createSlide": map[string]any{
				"objectId": "titleSlide",
				"slideLayoutReference": map[string]any{
					"predefinedLayout": "TITLE",
				},
				"placeholderIdMappings": []map[string]any{
					{
						"layoutPlaceholder": map[string]any{"type": "CENTERED_TITLE"},
						"objectId":          "titleText",
					},
					{
						"layoutPlaceholder": map[string]any{"type": "SUBTITLE"},
						"objectId":          "subtitleText",
					},
				},
			},
		},
		insertText("titleText", content.Title),
	)
	if subtitle != "" {
		requests = append(requests, insertText("subtitleText", subtitle))
	}

	for i, sec := range content.Sections {
		titleID := fmt.Sprintf("slide%dTitle", i)
		bodyID := fmt.Sprintf("slide%dBody", i)

		requests = append(requests, map[string]any{
			"createSlide": map[string]any{
				"objectId": fmt.Sprintf("slide%d", i),
				"slideLayoutReference": map[string]any{
					"predefinedLayout": "TITLE_AND_BODY",
				},
				"placeholderIdMappings": []map[string]any{
					{
						"layoutPlaceholder": map[string]any{"type": "TITLE"},
						"objectId":          titleID,
					},
					{
						"layoutPlaceholder": map[string]any{"type": "BODY"},
						"objectId":          bodyID,
					},
				},
			},
		})

		title := sec.Title
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}
		requests = append(requests, insertText(titleID, title))

		if body := bodyText(sec); body != "" {
			requests = append(requests, insertText(bodyID, body))
		}
	}

	return requests
}

func insertText(objectID, text string) map[string]any {
	return map[string]any{
		"insertText": map[string]any{
			"objectId":       objectID,
			"insertionIndex": 0,
			"text":           text,
		},
	}
}

// bodyText renders a section's content as the plain text for one slide body.
func bodyText(sec document.Section) string {
	lines := BodyLines(sec)
	body := strings.Join(lines, "\n")
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars] + "..."
	}
	return body
}
