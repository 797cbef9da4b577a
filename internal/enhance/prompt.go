package enhance

import (
	"fmt"
	"strings"

	"github.com/deckforge/doc2slides/internal/document"
)

const systemSlideExpert = `You are an expert at converting detailed documents into engaging and informative slide presentations. Carefully read the provided content to grasp its main ideas, arguments, and key insights, then present it as a single slide:

1. A concise, informative heading (use the provided title unless you can improve it)
2. 3-6 key bullet points that capture the essential information
3. Each bullet point brief but meaningful (1-2 lines maximum)
4. Logical flow and coherence between points
5. Focus on the most important insights, data, or concepts

Your output should be ONLY the slide content, without any additional commentary, explanations, or formatting instructions.`

const systemChunkExtract = `You are an expert at analyzing documents and extracting key information for presentation slides. Your task is to:

1. Carefully read the provided content (which is part of a larger document)
2. Identify the 2-3 most important points that should appear on a presentation slide
3. Convert these points into concise, well-formatted bullet points (1-2 lines each)
4. Focus on insights, conclusions, data points, or concepts that provide the most value
5. Ensure bullet points are clear, specific, and meaningful even without the surrounding context

Your output should be ONLY the bullet points, without any additional commentary, explanations, or formatting instructions.`

const systemSummarize = `You are an expert at creating focused, impactful presentation slides. Your task is to:

1. Review the provided bullet points (which come from different parts of the same document section)
2. Identify the most important 4-6 points that should appear on a single slide
3. Eliminate redundancies, consolidate similar points, and ensure variety of insights
4. Restructure the points in a logical order that tells a coherent story
5. Refine the language to be concise, clear, and impactful
6. Ensure each bullet point is brief (1-2 lines maximum)

Your output should be ONLY the final bullet points for the slide, without any additional commentary, explanations, or formatting instructions.`

const systemConclusion = `You are an expert at creating impactful conclusion slides for presentations. Your task is to:

1. Analyze the provided presentation title and section information
2. Create 3-5 bullet points that summarize the key takeaways, reinforce the main message, highlight actionable insights, and end with a strong, memorable final point
3. Keep each point concise and impactful (1-2 lines each)

Your output should be ONLY the bullet points for the conclusion slide, without any additional commentary, explanations, or formatting instructions.`

const systemSubtitle = `You are an expert at creating compelling presentation titles and subtitles. Create a brief, engaging subtitle that captures the essence of the presentation, is concise (10-15 words maximum), and complements rather than repeats the main title.

Your output should be ONLY the subtitle text, without any additional commentary, explanations, or formatting instructions.`

// sectionPrompt builds the whole-section transform prompt, varied by the
// section's content type.
func sectionPrompt(title, content string, typ document.SectionType) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Transform this content into an engaging slide titled %q following best presentation practices.\n\n", title)
	switch typ {
	case document.SectionBullets:
		sb.WriteString("The content is already in list form; refine and consolidate the existing points.\n\n")
	case document.SectionTable:
		sb.WriteString("The content is tabular; surface the most significant rows or comparisons as points.\n\n")
	}
	sb.WriteString("Content to transform:\n\n")
	sb.WriteString(content)
	return sb.String()
}

// chunkPrompt tells the model which part of the section it is seeing so it
// can reason about partial context.
func chunkPrompt(title, content string, part, total int) string {
	kind := "the key points"
	if part > 1 {
		kind = "additional key points"
	}
	return fmt.Sprintf("This is part %d of %d from a section titled %q. Extract %s that would be most valuable for a presentation slide:\n\n%s",
		part, total, title, kind, content)
}

func summaryPrompt(title, combined string) string {
	return fmt.Sprintf("Create a focused presentation slide titled %q by refining these extracted bullet points into 4-6 key takeaways:\n\n%s",
		title, combined)
}

// conclusionPrompt samples section titles (first 5 + last 5 when there are
// more than 10) and a short excerpt from the first sections.
func conclusionPrompt(content *document.Content) string {
	titles := make([]string, 0, len(content.Sections))
	for _, sec := range content.Sections {
		titles = append(titles, sec.Title)
	}
	if len(titles) > 10 {
		titles = append(titles[:5:5], titles[len(titles)-5:]...)
	}

	var sample strings.Builder
	for _, sec := range content.Sections[:min(3, len(content.Sections))] {
		excerpt := sec.Content
		if len(excerpt) > 200 {
			excerpt = excerpt[:200]
		}
		fmt.Fprintf(&sample, "%s:\n%s...\n\n", sec.Title, excerpt)
	}

	return fmt.Sprintf(`Create 3-5 impactful bullet points for a conclusion slide for a presentation titled %q.

The presentation covers these sections: %s

Here's a sample of some content from the presentation:
%s
Focus on synthesizing key takeaways and providing a strong conclusion.`,
		content.Title, strings.Join(titles, ", "), sample.String())
}

func subtitlePrompt(title string) string {
	return fmt.Sprintf("Create an engaging, professional subtitle for a presentation titled %q. Keep it concise and compelling.", title)
}
