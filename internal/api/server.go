package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/jobnexus/jobnexus/internal/core"
	"github.com/jobnexus/jobnexus/internal/store"
)

// ShortlistStore is the durable per-user shortlist boundary, satisfied by
// *store.Store and by fakes in tests.
type ShortlistStore interface {
	CreateUser(ctx context.Context, name, email string) (store.User, error)
	AddShortlist(ctx context.Context, userID uuid.UUID, entry store.ShortlistEntry) error
	ListShortlisted(ctx context.Context, userID uuid.UUID) ([]json.RawMessage, error)
	RemoveShortlisted(ctx context.Context, userID uuid.UUID, jobID string) error
}

// ResumeProcessor runs the resume-to-job-listings pipeline.
type ResumeProcessor interface {
	Process(ctx context.Context, filename string, data []byte) (*core.UploadResult, error)
}

// ATSAnalyzer scores a resume for ATS friendliness.
type ATSAnalyzer interface {
	Analyze(ctx context.Context, filename string, data []byte) (*core.ATSReport, error)
}

// HealthConfig reports which external APIs have credentials configured.
type HealthConfig struct {
	GeminiConfigured  bool
	JSearchConfigured bool
}

type Server struct {
	router   *chi.Mux
	store    ShortlistStore
	pipeline ResumeProcessor
	ats      ATSAnalyzer
	health   HealthConfig
}

func NewServer(store ShortlistStore, pipeline ResumeProcessor, ats ATSAnalyzer, health HealthConfig, corsOrigins []string) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		store:    store,
		pipeline: pipeline,
		ats:      ats,
		health:   health,
	}

	s.setupRoutes(corsOrigins)
	return s
}

func (s *Server) setupRoutes(corsOrigins []string) {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
	}))

	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/stats", s.handleStats)

	s.router.Post("/api/upload-resume", s.handleUploadResume)
	s.router.Post("/api/ats-score", s.handleATSScore)
	s.router.Post("/api/users", s.handleCreateUser)
	s.router.Post("/api/shortlist-job", s.handleShortlistJob)
	s.router.Get("/api/shortlisted-jobs/{user_id}", s.handleListShortlisted)
	s.router.Delete("/api/remove-shortlisted-job", s.handleRemoveShortlisted)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
