package segment

import (
	"regexp"
	"strings"

	"github.com/deckforge/doc2slides/internal/document"
)

var (
	// 1-7 capitalized words, nothing else.
	titleCaseRe = regexp.MustCompile(`^([A-Z][a-z]*\s*){1,7}$`)
	// Pure separator line: 3+ of -_=* or whitespace.
	separatorRe = regexp.MustCompile(`^[\s\-_=*]{3,}$`)
)

// lineRules selects the per-format heading heuristics for the shared
// line-oriented segmenter.
type lineRules struct {
	titleCase      bool // short Title-Case lines are headings
	colonSuffix    bool // short lines ending in ':' are headings
	blankNeighbors bool // short lines surrounded by blank lines are headings
	upperMinLen    int  // minimum length for the all-caps rule
	defaultLevel2  bool // non-all-caps headings default to level 2
	classify       func(string) document.SectionType
}

// PDF segments batched page texts using the line-oriented heuristic. Lines
// feed through page by page in reading order.
func PDF(pages []string) []document.Section {
	rules := lineRules{
		titleCase: true,
		classify:  Classify,
	}
	var lines []string
	for _, page := range pages {
		lines = append(lines, strings.Split(page, "\n")...)
	}
	return segmentLines(lines, rules)
}

// TXT segments plain-text lines. Beyond the shared rules, a short line ending
// in ':' or a short line surrounded by blank lines counts as a heading.
func TXT(lines []string) []document.Section {
	rules := lineRules{
		colonSuffix:    true,
		blankNeighbors: true,
		upperMinLen:    4,
		defaultLevel2:  true,
		classify:       ClassifyTXT,
	}
	return segmentLines(lines, rules)
}

// segmentLines runs the shared heading state machine. The first section,
// accumulated before any heading is seen, is titled "Introduction". A line
// that qualifies as a heading is always a heading, even when it reads like
// content; short emphatic sentences can misclassify, which is accepted.
func segmentLines(lines []string, rules lineRules) []document.Section {
	var sections []document.Section

	title := "Introduction"
	level := 1
	var content []string

	flush := func() {
		if len(content) == 0 {
			return
		}
		body := strings.Join(content, "\n")
		sections = append(sections, document.Section{
			Title:   title,
			Level:   level,
			Content: body,
			Type:    rules.classify(body),
		})
		content = nil
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		// Separator lines are never content and never headings.
		if separatorRe.MatchString(line) {
			continue
		}

		if isHeading(line, i, lines, rules) {
			flush()
			title = line
			level = headingLevelFor(raw, line, rules)
			continue
		}

		content = append(content, line)
	}
	flush()

	if len(sections) == 0 {
		sections = append(sections, document.Section{
			Title:   "Main Content",
			Level:   1,
			Content: strings.Join(lines, "\n"),
			Type:    document.SectionGeneric,
		})
	}

	return sections
}

func isHeading(line string, idx int, lines []string, rules lineRules) bool {
	short := len(line) < 50

	if rules.titleCase && titleCaseRe.MatchString(line) {
		return true
	}
	if short && len(line) >= rules.upperMinLen && line == strings.ToUpper(line) {
		return true
	}
	if rules.colonSuffix && short && strings.HasSuffix(line, ":") {
		return true
	}
	if rules.blankNeighbors && short &&
		idx > 0 && idx < len(lines)-1 &&
		strings.TrimSpace(lines[idx-1]) == "" && strings.TrimSpace(lines[idx+1]) == "" {
		return true
	}
	return false
}

// headingLevelFor infers nesting from leading indentation on the raw line; a
// 4-space indent overrides the 2-space rule. For plain text, an all-caps
// heading stays level 1 and any other qualifying heading defaults to level 2.
func headingLevelFor(raw, trimmed string, rules lineRules) int {
	level := 1
	switch {
	case strings.HasPrefix(raw, "    "):
		level = 3
	case strings.HasPrefix(raw, "  "):
		level = 2
	case rules.defaultLevel2 && trimmed != strings.ToUpper(trimmed):
		level = 2
	}
	return level
}
