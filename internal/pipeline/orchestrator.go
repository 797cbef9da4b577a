package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/deckforge/doc2slides/internal/document"
	"github.com/deckforge/doc2slides/internal/progress"
)

// Orchestrator owns the background processing queue. Processing is
// fire-and-forget from the caller's perspective: submit returns immediately
// and progress is pollable via the tracker.
type Orchestrator struct {
	docs    document.Store
	tracker *progress.Tracker
	worker  *Worker
	queue   chan *document.Document
	log     *slog.Logger

	workerCount int
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewOrchestrator(docs document.Store, tracker *progress.Tracker, worker *Worker, log *slog.Logger, workerCount, queueSize int) *Orchestrator {
	if workerCount <= 0 {
		workerCount = 4
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &Orchestrator{
		docs:        docs,
		tracker:     tracker,
		worker:      worker,
		queue:       make(chan *document.Document, queueSize),
		log:         log,
		workerCount: workerCount,
	}
}

// Start launches worker goroutines and the registry cleanup ticker.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.workerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case doc, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, doc)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				for _, id := range o.docs.Cleanup() {
					o.tracker.Delete(id)
				}
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a document for background processing.
func (o *Orchestrator) Submit(doc *document.Document) error {
	select {
	case o.queue <- doc:
		return nil
	default:
		doc.SetFailed("processing queue is full")
		return fmt.Errorf("processing queue is full (%d)", cap(o.queue))
	}
}

// QueueDepth returns the current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
