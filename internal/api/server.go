// Package api serves the adaptiq HTTP interface.
package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/adaptiq/internal/auth"
	"github.com/abhisek/adaptiq/internal/ingest"
	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/store"
)

// Fetcher downloads the visible text of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// OCR extracts text from an image.
type OCR interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
}

// GitImporter reads notes from a git repository.
type GitImporter func(ctx context.Context, url, ref string) ([]ingest.Document, error)

// Deps are the services behind the API.
type Deps struct {
	Store   *store.Store
	Quiz    *quiz.Service
	Auth    *auth.Service
	Fetcher Fetcher
	OCR     OCR
	Git     GitImporter
}

// Options tune the HTTP surface.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	BcryptCost     int
	Version        string
}

// Server holds the handler dependencies.
type Server struct {
	deps     Deps
	opts     Options
	validate *validator.Validate
}

// New creates a Server.
func New(deps Deps, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 20 << 20
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if deps.Fetcher == nil {
		deps.Fetcher = ingest.NewFetcher()
	}
	if deps.OCR == nil {
		deps.OCR = ingest.NewTesseractOCR()
	}
	if deps.Git == nil {
		deps.Git = ingest.ImportGit
	}
	return &Server{
		deps:     deps,
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", s.handleRegister)
		ar.Post("/login", s.handleLogin)
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.Middleware(s.deps.Auth))
			pr.Get("/profile", s.handleGetProfile)
			pr.Put("/profile", s.handleUpdateProfile)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(s.deps.Auth))

		pr.Route("/content", func(cr chi.Router) {
			cr.Post("/upload/text", s.handleUploadText)
			cr.Post("/upload/url", s.handleUploadURL)
			cr.Post("/upload/pdf", s.handleUploadPDF)
			cr.Post("/upload/image", s.handleUploadImage)
			cr.Post("/import/git", s.handleImportGit)
			cr.Get("/list", s.handleListContent)
			cr.Get("/{id}", s.handleGetContent)
			cr.Delete("/{id}", s.handleDeleteContent)
			cr.Get("/{id}/study", s.handleStudy)
		})

		pr.Route("/quiz", func(qr chi.Router) {
			qr.Post("/generate", s.handleGenerate)
			qr.Post("/submit", s.handleSubmit)
			qr.Get("/history", s.handleHistory)
			qr.Get("/attempt/{id}", s.handleAttempt)
			qr.Get("/attempt/{id}/insight", s.handleInsight)
			qr.Get("/recommend", s.handleRecommend)
			qr.Get("/progress", s.handleProgress)
			qr.Get("/mistakes", s.handleMistakes)
			qr.Delete("/mistakes/{questionID}", s.handleRemoveMistake)
			qr.Post("/review", s.handleReview)
		})

		pr.Route("/admin", func(adm chi.Router) {
			// Any signed-in user may report a question or leave feedback.
			adm.Post("/questions/{id}/flag", s.handleFlag(true))
			adm.Post("/feedback", s.handleCreateFeedback)

			adm.Group(func(ar chi.Router) {
				ar.Use(s.requireAdmin)
				ar.Get("/stats", s.handleStats)
				ar.Get("/users", s.handleListUsers)
				ar.Get("/feedback", s.handleListFeedback)
				ar.Get("/questions", s.handleListQuestions)
				ar.Post("/questions/{id}/unflag", s.handleFlag(false))
				ar.Delete("/questions/{id}", s.handleDeleteQuestion)
				ar.Post("/promote/{id}", s.handleSetAdmin(true))
				ar.Post("/demote/{id}", s.handleSetAdmin(false))
			})
		})
	})

	return r
}

// requireAdmin checks the stored admin flag so promotions apply without
// a fresh token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := s.deps.Store.Users().Get(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !u.IsAdmin {
			writeMsg(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
