package segment

import (
	"strings"
	"testing"

	"github.com/deckforge/doc2slides/internal/document"
)

func TestMarkup_HeadingsSplitSections(t *testing.T) {
	markup := "<h1>First</h1><p>alpha</p><p>beta</p><h2>Second</h2><ul><li>one</li><li>two</li></ul>"
	sections := Markup(markup)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(sections), sections)
	}

	if sections[0].Title != "First" {
		t.Errorf("expected title First, got %q", sections[0].Title)
	}
	if sections[0].Level != 1 {
		t.Errorf("expected level 1, got %d", sections[0].Level)
	}
	if !strings.Contains(sections[0].Content, "<p>alpha</p>") {
		t.Errorf("expected paragraph markup preserved, got %q", sections[0].Content)
	}
	if sections[0].Type != document.SectionText {
		t.Errorf("expected text type, got %q", sections[0].Type)
	}

	if sections[1].Title != "Second" {
		t.Errorf("expected title Second, got %q", sections[1].Title)
	}
	if sections[1].Level != 2 {
		t.Errorf("expected level 2, got %d", sections[1].Level)
	}
	if sections[1].Type != document.SectionBullets {
		t.Errorf("expected bullet type, got %q", sections[1].Type)
	}
}

func TestMarkup_ContentBeforeFirstHeadingDropped(t *testing.T) {
	markup := "<p>preamble</p><h1>Start</h1><p>body</p>"
	sections := Markup(markup)

	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if strings.Contains(sections[0].Content, "preamble") {
		t.Errorf("pre-heading content leaked into section: %q", sections[0].Content)
	}
}

func TestMarkup_NoHeadingsFallsBack(t *testing.T) {
	markup := "<p>just a paragraph</p><p>and another</p>"
	sections := Markup(markup)

	if len(sections) != 1 {
		t.Fatalf("expected fallback section, got %d", len(sections))
	}
	if sections[0].Title != "Main Content" {
		t.Errorf("expected Main Content, got %q", sections[0].Title)
	}
	if sections[0].Type != document.SectionGeneric {
		t.Errorf("expected generic type, got %q", sections[0].Type)
	}
	if sections[0].Content != markup {
		t.Errorf("expected raw markup as content, got %q", sections[0].Content)
	}
}

func TestMarkup_EmptyHeadingSection(t *testing.T) {
	markup := "<h1>Lonely</h1><h1>Busy</h1><p>text</p>"
	sections := Markup(markup)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Content != "" {
		t.Errorf("expected empty content for heading-only section, got %q", sections[0].Content)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<h1>Hello</h1>", "Hello"},
		{"<p>a <b>bold</b> move</p>", "a bold move"},
		{"plain", "plain"},
		{"<p>&amp; escaped</p>", "& escaped"},
	}
	for _, tt := range tests {
		if got := StripTags(tt.in); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleFromLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"first long line", []string{"", "My Document", "body"}, "My Document"},
		{"skips short lines", []string{"ab", "A Real Title"}, "A Real Title"},
		{"all short", []string{"ab", "cd"}, "Untitled Document"},
		{"empty", nil, "Untitled Document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromLines(tt.lines); got != tt.want {
				t.Errorf("TitleFromLines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleFromMarkup(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"h1 wins", "<p>intro</p><h1>Heading Title</h1>", "Heading Title"},
		{"first paragraph fallback", "<p>Paragraph Title</p><p>second</p>", "Paragraph Title"},
		{"nothing usable", "<div></div>", "Untitled Document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromMarkup(tt.markup); got != tt.want {
				t.Errorf("TitleFromMarkup = %q, want %q", got, tt.want)
			}
		})
	}
}
