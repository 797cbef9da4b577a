package enhance

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/deckforge/doc2slides/internal/chunker"
	"github.com/deckforge/doc2slides/internal/document"
	"github.com/deckforge/doc2slides/internal/progress"
)

// minSectionLen is the shortest section content worth transforming.
const minSectionLen = 20

// Enhancer drives document sections through the transform capability,
// concurrently per section, and reassembles them preserving source order. A
// failed transform leaves the affected section unchanged; the document as a
// whole never fails here.
type Enhancer struct {
	transformer   Transformer
	progress      *progress.Tracker
	log           *slog.Logger
	maxTokens     int
	maxConcurrent int
}

func New(transformer Transformer, tracker *progress.Tracker, log *slog.Logger, maxTokens, maxConcurrent int) *Enhancer {
	if maxTokens <= 0 {
		maxTokens = chunker.DefaultMaxTokens
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	return &Enhancer{
		transformer:   transformer,
		progress:      tracker,
		log:           log,
		maxTokens:     maxTokens,
		maxConcurrent: maxConcurrent,
	}
}

// Enhance transforms every section and appends a synthesized conclusion
// section. The returned content replaces the input's sections wholesale.
func (e *Enhancer) Enhance(ctx context.Context, content *document.Content, docID string) *document.Content {
	log := e.log.With("doc_id", docID)

	// Pre-compute the unit count for the whole document so the percentage
	// cannot bounce: one unit per under-budget section, one per chunk of an
	// over-budget section.
	prepared := make([]string, len(content.Sections))
	total := 0
	for i, sec := range content.Sections {
		prepared[i] = prepareText(content.Type, sec.Content)
		if len(prepared[i]) < minSectionLen {
			continue
		}
		if tokens := chunker.EstimateTokens(prepared[i]); tokens > e.maxTokens {
			total += len(chunker.Split(prepared[i], e.maxTokens))
		} else {
			total++
		}
	}
	e.progress.SetTotalChunks(docID, total)
	e.progress.SetStage(docID, progress.StageEnhancing)

	enhanced := make([]document.Section, len(content.Sections))
	sem := make(chan struct{}, e.maxConcurrent)
	done := make(chan int, len(content.Sections))

	for i := range content.Sections {
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem }()
			enhanced[i] = e.processSection(ctx, log, docID, content.Sections[i], prepared[i])
			done <- i
		}(i)
	}
	for range content.Sections {
		<-done
	}

	e.progress.SetStage(docID, progress.StageConclusion)
	conclusion := e.conclusionSection(ctx, log, &document.Content{
		Type:     content.Type,
		Title:    content.Title,
		Sections: enhanced,
	})
	enhanced = append(enhanced, conclusion)
	e.progress.SetStage(docID, progress.StageComplete)

	return &document.Content{
		Type:       content.Type,
		Title:      content.Title,
		Sections:   enhanced,
		RawContent: content.RawContent,
	}
}

func (e *Enhancer) processSection(ctx context.Context, log *slog.Logger, docID string, sec document.Section, text string) document.Section {
	if len(text) < minSectionLen {
		return sec
	}

	if chunker.EstimateTokens(text) <= e.maxTokens {
		result, err := e.call(ctx, Request{
			System:    systemSlideExpert,
			Prompt:    sectionPrompt(sec.Title, text, sec.Type),
			MaxTokens: 700,
		})
		if err != nil {
			if !errors.Is(err, ErrUnavailable) {
				log.Warn("section transform failed", "section", sec.Title, "error", err)
			}
			return sec
		}
		e.progress.IncrProcessed(docID)
		sec.Content = result
		sec.Type = document.SectionBullets
		return sec
	}

	return e.processChunked(ctx, log, docID, sec, text)
}

// processChunked splits an over-budget section and transforms its chunks
// sequentially; later prompts reference "part i of N" and progress must
// advance per chunk. A failed chunk contributes best-effort fallback bullets
// instead of dropping its content.
func (e *Enhancer) processChunked(ctx context.Context, log *slog.Logger, docID string, sec document.Section, text string) document.Section {
	chunks := chunker.Split(text, e.maxTokens)
	log.Info("section over budget, chunking", "section", sec.Title, "chunks", len(chunks))

	var parts []string
	for i, chunk := range chunks {
		result, err := e.call(ctx, Request{
			System:    systemChunkExtract,
			Prompt:    chunkPrompt(sec.Title, chunk, i+1, len(chunks)),
			MaxTokens: 350,
		})
		switch {
		case errors.Is(err, ErrUnavailable):
			return sec
		case err != nil:
			log.Warn("chunk transform failed", "section", sec.Title, "chunk", i+1, "error", err)
			if fb := fallbackBullets(chunk); fb != "" {
				parts = append(parts, fb)
			}
		case result != "":
			parts = append(parts, result)
		}
		e.progress.IncrProcessed(docID)
	}

	combined := strings.Join(parts, "\n\n")
	if combined == "" {
		return sec
	}

	if len(parts) > 2 {
		e.progress.SetStage(docID, progress.StageSummarizing)
		final, err := e.call(ctx, Request{
			System:    systemSummarize,
			Prompt:    summaryPrompt(sec.Title, combined),
			MaxTokens: 700,
		})
		if err == nil && final != "" {
			combined = final
		} else if err != nil {
			log.Warn("summarization failed, keeping joined chunks", "section", sec.Title, "error", err)
		}
	}

	sec.Content = combined
	sec.Type = document.SectionBullets
	return sec
}

// conclusionSection synthesizes the final slide from the document title, a
// sample of section titles, and short content excerpts.
func (e *Enhancer) conclusionSection(ctx context.Context, log *slog.Logger, content *document.Content) document.Section {
	result, err := e.call(ctx, Request{
		System:    systemConclusion,
		Prompt:    conclusionPrompt(content),
		MaxTokens: 400,
	})
	if err != nil || result == "" {
		if err != nil && !errors.Is(err, ErrUnavailable) {
			log.Warn("conclusion transform failed", "error", err)
		}
		return document.Section{
			Title:   "Conclusion",
			Level:   1,
			Content: "Thank you for your attention!",
			Type:    document.SectionBullets,
		}
	}
	return document.Section{
		Title:   "Key Takeaways",
		Level:   1,
		Content: result,
		Type:    document.SectionBullets,
	}
}

// GenerateSubtitle produces a subtitle for the title slide.
func (e *Enhancer) GenerateSubtitle(ctx context.Context, title string) string {
	result, err := e.call(ctx, Request{
		System:    systemSubtitle,
		Prompt:    subtitlePrompt(title),
		MaxTokens: 100,
	})
	if err != nil || result == "" {
		return "Presentation generated with Doc2Slides"
	}
	return result
}

// call invokes the transformer with backoff on retryable failures.
func (e *Enhancer) call(ctx context.Context, req Request) (string, error) {
	var result string
	var err error
	for attempt := range MaxRetries {
		result, err = e.transformer.Transform(ctx, req)
		if err == nil || !IsRetryable(err) {
			break
		}
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return result, err
}

var lineBreakRe = regexp.MustCompile(`\n+`)

// fallbackBullets fabricates bullets from a chunk's raw text when its
// transform call failed: substantial lines only, up to 3, truncated.
func fallbackBullets(chunk string) string {
	var bullets []string
	for _, line := range lineBreakRe.Split(chunk, -1) {
		if len(line) > 30 {
			bullets = append(bullets, "• "+truncate(line, 100))
			if len(bullets) == 3 {
				break
			}
		}
	}
	return strings.Join(bullets, "\n")
}

// prepareText converts DOCX markup to markdown so the transform sees list and
// table structure as text; other formats pass through.
func prepareText(docType document.Type, content string) string {
	if docType != document.TypeDOCX {
		return content
	}
	md, err := htmltomarkdown.ConvertString(content)
	if err != nil || strings.TrimSpace(md) == "" {
		return content
	}
	return strings.TrimSpace(md)
}
