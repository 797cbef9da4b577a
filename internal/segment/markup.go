package segment

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/deckforge/doc2slides/internal/document"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripTags removes all markup from a fragment, returning trimmed plain text.
func StripTags(fragment string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(fragment)))
}

// Markup segments an HTML-like markup string (the DOCX extraction result) on
// heading tags of rank 1-3. The heading rank is the section level and the
// tag-stripped heading text is the title. Content before the first heading is
// not segmented; it remains only in the document's raw content.
func Markup(markup string) []document.Section {
	fallback := []document.Section{{
		Title:   "Main Content",
		Level:   1,
		Content: markup,
		Type:    document.SectionGeneric,
	}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return fallback
	}

	var sections []document.Section
	var current *document.Section
	var body strings.Builder

	flush := func() {
		if current == nil {
			body.Reset()
			return
		}
		current.Content = strings.TrimSpace(body.String())
		current.Type = ClassifyMarkup(current.Content)
		sections = append(sections, *current)
		current = nil
		body.Reset()
	}

	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "h1", "h2", "h3":
			flush()
			level := int(goquery.NodeName(sel)[1] - '0')
			frag, _ := goquery.OuterHtml(sel)
			current = &document.Section{
				Title: StripTags(frag),
				Level: level,
			}
		default:
			if current == nil {
				return // before the first heading
			}
			frag, err := goquery.OuterHtml(sel)
			if err != nil {
				return
			}
			if body.Len() > 0 {
				body.WriteString("\n")
			}
			body.WriteString(frag)
		}
	})
	flush()

	if len(sections) == 0 {
		return fallback
	}
	return sections
}
