package chunker

import (
	"regexp"
	"strings"
)

// DefaultMaxTokens leaves room for prompt and completion within a typical
// model context window.
const DefaultMaxTokens = 4000

var paragraphRe = regexp.MustCompile(`\n\s*\n`)

// Split breaks text into ordered chunks whose estimated token counts stay
// within maxTokens, cascading paragraph -> sentence -> word splitting. Chunks
// rejoin to the original content: paragraphs within a chunk are separated by
// a blank line, sentences and words by a single space. The only chunk that
// may exceed the budget is a single irreducible word.
func Split(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if EstimateTokens(text) <= maxTokens {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, para := range splitParagraphs(text) {
		if EstimateTokens(para) > maxTokens {
			flush()
			chunks = append(chunks, splitBySentences(para, maxTokens)...)
			continue
		}
		if current.Len() > 0 && tokensForLen(current.Len()+2+len(para)) > maxTokens {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}

// splitParagraphs splits on blank-line boundaries, dropping empty parts.
func splitParagraphs(text string) []string {
	parts := paragraphRe.Split(text, -1)
	result := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func splitBySentences(text string, maxTokens int) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, sent := range splitSentences(text) {
		if EstimateTokens(sent) > maxTokens {
			flush()
			chunks = append(chunks, splitByWords(sent, maxTokens)...)
			continue
		}
		if current.Len() > 0 && tokensForLen(current.Len()+1+len(sent)) > maxTokens {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
	}
	flush()

	return chunks
}

// splitSentences scans for sentence-ending punctuation followed by
// whitespace. Go's regexp has no lookbehind, so this is a manual pass.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && isSpaceByte(text[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// splitByWords is the last-resort cascade level. A single word over budget is
// emitted whole rather than corrupted.
func splitByWords(text string, maxTokens int) []string {
	var chunks []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if EstimateTokens(word) > maxTokens && current.Len() == 0 {
			chunks = append(chunks, word)
			continue
		}
		if current.Len() > 0 && tokensForLen(current.Len()+1+len(word)) > maxTokens {
			chunks = append(chunks, current.String())
			current.Reset()
			if EstimateTokens(word) > maxTokens {
				chunks = append(chunks, word)
				continue
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
