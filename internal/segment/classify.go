package segment

import (
	"regexp"
	"strings"

	"github.com/deckforge/doc2slides/internal/document"
)

var (
	bulletRe   = regexp.MustCompile(`^[•\-*]\s`)
	numberedRe = regexp.MustCompile(`^\d+[.)]\s`)
)

// Classify inspects a line-oriented content blob and yields its section type.
// Checks are ordered: table strictly precedes bullets. The classifier is
// stateless; identical input always yields the identical type.
func Classify(content string) document.SectionType {
	return classifyLines(content, false)
}

// ClassifyTXT is the plain-text variant: bullet lines must make up more than
// 30% of the block, so a single stray dashed line does not flip a prose block
// to bullets.
func ClassifyTXT(content string) document.SectionType {
	return classifyLines(content, true)
}

func classifyLines(content string, requireRatio bool) document.SectionType {
	lines := strings.Split(content, "\n")

	if strings.Contains(content, "|") {
		pipeLines := 0
		for _, line := range lines {
			if strings.Contains(line, "|") {
				pipeLines++
			}
		}
		if pipeLines > 2 {
			return document.SectionTable
		}
	}

	bulletLines := 0
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if bulletRe.MatchString(t) || numberedRe.MatchString(t) {
			bulletLines++
		}
	}
	if bulletLines > 0 {
		if !requireRatio {
			return document.SectionBullets
		}
		if float64(bulletLines)/float64(len(lines)) > 0.3 {
			return document.SectionBullets
		}
	}

	return document.SectionText
}

// ClassifyMarkup is the markup variant used for DOCX section bodies.
func ClassifyMarkup(markup string) document.SectionType {
	lower := strings.ToLower(markup)
	switch {
	case strings.Contains(lower, "<table"):
		return document.SectionTable
	case strings.Contains(lower, "<ul") || strings.Contains(lower, "<ol") || strings.Contains(lower, "<li"):
		return document.SectionBullets
	case strings.Contains(lower, "<img"):
		return document.SectionImage
	default:
		return document.SectionText
	}
}
