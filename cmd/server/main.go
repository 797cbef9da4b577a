package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deckforge/doc2slides/internal/api"
	"github.com/deckforge/doc2slides/internal/config"
	"github.com/deckforge/doc2slides/internal/document"
	"github.com/deckforge/doc2slides/internal/enhance"
	"github.com/deckforge/doc2slides/internal/parser"
	"github.com/deckforge/doc2slides/internal/pipeline"
	"github.com/deckforge/doc2slides/internal/progress"
	"github.com/deckforge/doc2slides/internal/slides"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize state.
	docs := document.NewMemStore(cfg.DocumentTTL)
	tracker := progress.NewTracker()

	// Initialize clients. Without an API key the pipeline still runs; the
	// enhancer falls back to original section content.
	var transformer enhance.Transformer
	var openai *enhance.Client
	if cfg.OpenAIAPIKey != "" {
		openai = enhance.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIEndpoint)
		transformer = openai
	} else {
		log.Warn("no OpenAI API key configured, content enhancement disabled")
		transformer = enhance.Unavailable{}
	}
	slidesClient := slides.NewClient()

	// Initialize pipeline.
	pdf := &parser.PDFExtractor{BatchSize: cfg.PDFBatchSize, Log: log}
	docx := &parser.DOCXExtractor{Timeout: cfg.DOCXTimeout}
	enhancer := enhance.New(transformer, tracker, log, cfg.MaxTokensPerChunk, cfg.MaxConcurrentEnhance)
	worker := pipeline.NewWorker(pdf, docx, enhancer, tracker, log)

	orch := pipeline.NewOrchestrator(docs, tracker, worker, log, cfg.WorkerCount, cfg.MaxQueueSize)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(docs, tracker, orch, enhancer, openai, slidesClient, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if openai != nil {
			openai.Close()
		}
		slidesClient.Close()
	}()

	log.Info("starting doc2slides", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
