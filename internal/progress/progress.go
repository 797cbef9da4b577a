package progress

import (
	"math"
	"sync"
)

// Stage is one phase of the enhancement state machine. Stages advance in
// strict order and never move backwards.
type Stage string

const (
	StageExtracting  Stage = "extracting"
	StageEnhancing   Stage = "enhancing"
	StageSummarizing Stage = "summarizing"
	StageConclusion  Stage = "conclusion"
	StageComplete    Stage = "complete"
)

// Record is the pollable progress state for one document. Progress is a
// deterministic function of stage and chunk ratio, clamped to an integer and
// monotonically non-decreasing.
type Record struct {
	TotalChunks     int   `json:"totalChunks"`
	ProcessedChunks int   `json:"processedChunks"`
	Stage           Stage `json:"stage"`
	Progress        int   `json:"progress"`
}

// Tracker is a thread-safe per-document progress registry. Records are
// retained after completion for later polling; callers evict them alongside
// the document registry.
type Tracker struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewTracker() *Tracker {
	return &Tracker{records: make(map[string]*Record)}
}

// SetStage advances the document to a new stage.
func (t *Tracker) SetStage(docID string, stage Stage) {
	t.update(docID, func(r *Record) { r.Stage = stage })
}

// SetTotalChunks records the total number of enhancement work units.
func (t *Tracker) SetTotalChunks(docID string, total int) {
	t.update(docID, func(r *Record) { r.TotalChunks = total })
}

// IncrProcessed counts one completed unit of enhancement work.
func (t *Tracker) IncrProcessed(docID string) {
	t.update(docID, func(r *Record) { r.ProcessedChunks++ })
}

// Get returns a copy of the record for a document.
func (t *Tracker) Get(docID string) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[docID]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Delete removes a document's record.
func (t *Tracker) Delete(docID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, docID)
}

func (t *Tracker) update(docID string, apply func(*Record)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.records[docID]
	if !ok {
		r = &Record{Stage: StageExtracting}
		t.records[docID] = r
	}
	apply(r)

	if pct := percentFor(r); pct > r.Progress {
		r.Progress = pct
	}
}

// percentFor maps stage and chunk ratio to a percentage: extracting 10,
// enhancing 10 + 70 * processed/total (50 flat when totals are unknown),
// summarizing 80, conclusion 90, complete 100.
func percentFor(r *Record) int {
	var pct float64
	switch r.Stage {
	case StageExtracting:
		pct = 10
	case StageEnhancing:
		if r.TotalChunks > 0 {
			pct = 10 + float64(r.ProcessedChunks)/float64(r.TotalChunks)*70
		} else {
			pct = 50
		}
	case StageSummarizing:
		pct = 80
	case StageConclusion:
		pct = 90
	case StageComplete:
		pct = 100
	}
	return int(math.Round(pct))
}
