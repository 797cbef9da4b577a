package segment

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const untitled = "Untitled Document"

// TitleFromLines picks the document title from line-oriented content: the
// first non-empty line longer than 3 characters.
func TitleFromLines(lines []string) string {
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if len(t) > 3 {
			return t
		}
	}
	return untitled
}

// TitleFromMarkup picks the document title from markup: the first h1, else
// the first paragraph, tag-stripped.
func TitleFromMarkup(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return untitled
	}
	for _, selector := range []string{"h1", "p"} {
		if t := strings.TrimSpace(doc.Find(selector).First().Text()); t != "" {
			return t
		}
	}
	return untitled
}
