package enhance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/deckforge/doc2slides/internal/document"
	"github.com/deckforge/doc2slides/internal/progress"
)

type transformerFunc func(ctx context.Context, req Request) (string, error)

func (f transformerFunc) Transform(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sectionContent(n int) string {
	return strings.Repeat("A reasonably long content line. ", n)
}

func TestEnhance_Success(t *testing.T) {
	fake := transformerFunc(func(ctx context.Context, req Request) (string, error) {
		return "• enhanced point", nil
	})
	tracker := progress.NewTracker()
	e := New(fake, tracker, testLogger(), 4000, 5)

	content := &document.Content{
		Type:  document.TypeTXT,
		Title: "Report",
		Sections: []document.Section{
			{Title: "One", Level: 1, Content: sectionContent(3), Type: document.SectionText},
			{Title: "Two", Level: 1, Content: sectionContent(3), Type: document.SectionText},
		},
	}

	out := e.Enhance(context.Background(), content, "doc1")

	if len(out.Sections) != 3 {
		t.Fatalf("expected 2 sections + conclusion, got %d", len(out.Sections))
	}
	for i := 0; i < 2; i++ {
		if out.Sections[i].Content != "• enhanced point" {
			t.Errorf("section %d not enhanced: %q", i, out.Sections[i].Content)
		}
		if out.Sections[i].Type != document.SectionBullets {
			t.Errorf("section %d: expected bullet type, got %q", i, out.Sections[i].Type)
		}
	}
	if out.Sections[0].Title != "One" || out.Sections[1].Title != "Two" {
		t.Errorf("section order changed: %q, %q", out.Sections[0].Title, out.Sections[1].Title)
	}

	last := out.Sections[2]
	if last.Title != "Key Takeaways" {
		t.Errorf("expected Key Takeaways conclusion, got %q", last.Title)
	}

	rec, ok := tracker.Get("doc1")
	if !ok {
		t.Fatal("expected progress record")
	}
	if rec.Stage != progress.StageComplete || rec.Progress != 100 {
		t.Errorf("expected complete/100, got %s/%d", rec.Stage, rec.Progress)
	}
}

func TestEnhance_UnavailableKeepsOriginalContent(t *testing.T) {
	tracker := progress.NewTracker()
	e := New(Unavailable{}, tracker, testLogger(), 4000, 5)

	original := sectionContent(3)
	content := &document.Content{
		Type:  document.TypeTXT,
		Title: "Report",
		Sections: []document.Section{
			{Title: "One", Level: 1, Content: original, Type: document.SectionText},
		},
	}

	out := e.Enhance(context.Background(), content, "doc1")

	if len(out.Sections) != 2 {
		t.Fatalf("expected original section + conclusion, got %d", len(out.Sections))
	}
	if out.Sections[0].Content != original {
		t.Errorf("section content changed: %q", out.Sections[0].Content)
	}
	if out.Sections[0].Type != document.SectionText {
		t.Errorf("section type changed: %q", out.Sections[0].Type)
	}

	last := out.Sections[1]
	if last.Title != "Conclusion" {
		t.Errorf("expected fallback Conclusion, got %q", last.Title)
	}
	if last.Content != "Thank you for your attention!" {
		t.Errorf("unexpected fallback content: %q", last.Content)
	}
}

func TestEnhance_ShortSectionSkipped(t *testing.T) {
	var calls atomic.Int32
	fake := transformerFunc(func(ctx context.Context, req Request) (string, error) {
		calls.Add(1)
		return "• point", nil
	})
	e := New(fake, progress.NewTracker(), testLogger(), 4000, 5)

	content := &document.Content{
		Type:  document.TypeTXT,
		Title: "Report",
		Sections: []document.Section{
			{Title: "Tiny", Level: 1, Content: "short", Type: document.SectionText},
		},
	}

	out := e.Enhance(context.Background(), content, "doc1")

	if out.Sections[0].Content != "short" {
		t.Errorf("short section was transformed: %q", out.Sections[0].Content)
	}
	// Only the conclusion call should have happened.
	if calls.Load() != 1 {
		t.Errorf("expected 1 transform call, got %d", calls.Load())
	}
}

func TestEnhance_ChunkedSectionJoinsParts(t *testing.T) {
	var chunkCalls atomic.Int32
	fake := transformerFunc(func(ctx context.Context, req Request) (string, error) {
		if strings.Contains(req.Prompt, "part ") {
			n := chunkCalls.Add(1)
			return "• chunk " + string(rune('0'+n)), nil
		}
		if req.System == systemSummarize {
			return "• summarized", nil
		}
		return "• conclusion", nil
	})
	tracker := progress.NewTracker()
	e := New(fake, tracker, testLogger(), 50, 5)

	// Three paragraphs, each ~40 tokens, against a 50-token budget: three
	// chunks, then a summarization pass because more than two parts survive.
	para := strings.TrimSpace(strings.Repeat("alpha beta gamma delta epsilon zeta eta. ", 4))
	text := para + "\n\n" + para + "\n\n" + para

	content := &document.Content{
		Type:  document.TypeTXT,
		Title: "Report",
		Sections: []document.Section{
			{Title: "Big", Level: 1, Content: text, Type: document.SectionText},
		},
	}

	out := e.Enhance(context.Background(), content, "doc1")

	if chunkCalls.Load() < 3 {
		t.Fatalf("expected at least 3 chunk calls, got %d", chunkCalls.Load())
	}
	if out.Sections[0].Content != "• summarized" {
		t.Errorf("expected summarized content, got %q", out.Sections[0].Content)
	}
	if out.Sections[0].Type != document.SectionBullets {
		t.Errorf("expected bullet type, got %q", out.Sections[0].Type)
	}
}

func TestEnhance_FailedChunksFallBackToBullets(t *testing.T) {
	fail := errors.New("model exploded")
	fake := transformerFunc(func(ctx context.Context, req Request) (string, error) {
		if req.System == systemConclusion {
			return "• conclusion", nil
		}
		if req.System == systemSummarize {
			return "", fail
		}
		return "", fail
	})
	e := New(fake, progress.NewTracker(), testLogger(), 50, 5)

	line := "this line is comfortably longer than thirty characters"
	para := line + "\n" + line + "\n" + line
	text := para + "\n\n" + para + "\n\n" + para

	content := &document.Content{
		Type:  document.TypeTXT,
		Title: "Report",
		Sections: []document.Section{
			{Title: "Big", Level: 1, Content: text, Type: document.SectionText},
		},
	}

	out := e.Enhance(context.Background(), content, "doc1")

	sec := out.Sections[0]
	if !strings.HasPrefix(sec.Content, "• ") {
		t.Fatalf("expected fallback bullets, got %q", sec.Content)
	}
	if sec.Type != document.SectionBullets {
		t.Errorf("expected bullet type, got %q", sec.Type)
	}
	if !strings.Contains(sec.Content, line) {
		t.Errorf("fallback bullets lost source text: %q", sec.Content)
	}
}

func TestGenerateSubtitle_Fallback(t *testing.T) {
	e := New(Unavailable{}, progress.NewTracker(), testLogger(), 4000, 5)

	got := e.GenerateSubtitle(context.Background(), "Report")
	if got != "Presentation generated with Doc2Slides" {
		t.Errorf("unexpected fallback subtitle: %q", got)
	}
}

func TestFallbackBullets(t *testing.T) {
	long := strings.Repeat("x", 120)
	chunk := "short\n" + long + "\nanother line exceeding thirty characters easily\nthird line exceeding thirty characters easily\nfourth line exceeding thirty characters easily"

	got := fallbackBullets(chunk)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 bullets, got %d: %q", len(lines), got)
	}
	if lines[0] != "• "+long[:100]+"..." {
		t.Errorf("expected truncated first bullet, got %q", lines[0])
	}
	for i, l := range lines {
		if !strings.HasPrefix(l, "• ") {
			t.Errorf("bullet %d missing prefix: %q", i, l)
		}
	}
}
