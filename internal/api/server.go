package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deckforge/doc2slides/internal/config"
	"github.com/deckforge/doc2slides/internal/document"
	"github.com/deckforge/doc2slides/internal/enhance"
	"github.com/deckforge/doc2slides/internal/pipeline"
	"github.com/deckforge/doc2slides/internal/progress"
	"github.com/deckforge/doc2slides/internal/slides"
)

// Server is the HTTP API server for doc2slides.
type Server struct {
	router       chi.Router
	docs         document.Store
	tracker      *progress.Tracker
	orchestrator *pipeline.Orchestrator
	enhancer     *enhance.Enhancer
	transformer  *enhance.Client
	slides       *slides.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. transformer may be nil
// when no enhancement backend is configured.
func NewServer(docs document.Store, tracker *progress.Tracker, orch *pipeline.Orchestrator, enhancer *enhance.Enhancer, transformer *enhance.Client, slidesClient *slides.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		docs:         docs,
		tracker:      tracker,
		orchestrator: orch,
		enhancer:     enhancer,
		transformer:  transformer,
		slides:       slidesClient,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Post("/api/documents/{docID}/process", s.handleProcess)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Get("/api/documents/{docID}/progress", s.handleProgress)
		r.Post("/api/documents/{docID}/convert", s.handleConvert)

		r.Get("/api/stats/transform", s.handleTransformStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
