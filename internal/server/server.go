// Package server owns Inkwell's HTTP surface: the chi router, middleware
// chain, and process lifecycle.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkwellcms/inkwell/internal/handler"
	"github.com/inkwellcms/inkwell/internal/server/middleware"
	"github.com/inkwellcms/inkwell/internal/service"
	"github.com/inkwellcms/inkwell/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host             string
	Port             int
	ShutdownTimeout  time.Duration
	CORSOrigins      []string
	MediaDir         string
	AuthRatePerMin   int // per-IP limit on credential endpoints
	LeadRatePerMin   int // per-IP limit on lead capture
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8000,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigins:     []string{"*"},
		MediaDir:        "uploads",
		AuthRatePerMin:  20,
		LeadRatePerMin:  10,
	}
}

// Server is the top-level HTTP server. It owns the router, the document
// store, and the authentication service.
type Server struct {
	cfg        Config
	router     chi.Router
	store      store.Store
	authSvc    *service.AuthService
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server with all routes and middleware wired, ready for
// ListenAndServe.
func New(cfg Config, st store.Store, authSvc *service.AuthService, logger *slog.Logger) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		logger:  logger,
	}
	if err := s.setupRouter(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupRouter() error {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))

	authHandler := handler.NewAuthHandler(s.authSvc)
	contentHandler := handler.NewContentHandler(s.store)
	leadHandler := handler.NewLeadHandler(s.store)
	systemHandler := handler.NewSystemHandler()

	mediaHandler, err := handler.NewMediaHandler(s.cfg.MediaDir)
	if err != nil {
		return err
	}

	requireAuth := middleware.Authenticate(s.authSvc)

	// --- Health and system (no auth) ---
	r.Get("/", systemHandler.Root)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Get("/schema", systemHandler.Schema)

	// --- Authentication ---
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(s.cfg.AuthRatePerMin))
			r.Post("/register", authHandler.Register)
			r.Post("/token", authHandler.Token)
		})
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authHandler.Me)
		})
	})

	// --- Blog posts ---
	r.Route("/blog", func(r chi.Router) {
		r.Get("/", contentHandler.ListBlogPosts)
		r.Get("/{id}", contentHandler.GetBlogPost)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", contentHandler.CreateBlogPost)
			r.Put("/{id}", contentHandler.UpdateBlogPost)
			r.Delete("/{id}", contentHandler.DeleteBlogPost)
		})
	})

	// --- Partner logos ---
	r.Route("/partners", func(r chi.Router) {
		r.Get("/", contentHandler.ListPartnerLogos)
		r.Get("/{id}", contentHandler.GetPartnerLogo)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", contentHandler.CreatePartnerLogo)
			r.Put("/{id}", contentHandler.UpdatePartnerLogo)
			r.Delete("/{id}", contentHandler.DeletePartnerLogo)
		})
	})

	// --- Case studies ---
	r.Route("/cases", func(r chi.Router) {
		r.Get("/", contentHandler.ListCaseStudies)
		r.Get("/{id}", contentHandler.GetCaseStudy)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", contentHandler.CreateCaseStudy)
			r.Put("/{id}", contentHandler.UpdateCaseStudy)
			r.Delete("/{id}", contentHandler.DeleteCaseStudy)
		})
	})

	// --- Leads ---
	r.Route("/leads", func(r chi.Router) {
		r.With(middleware.RateLimit(s.cfg.LeadRatePerMin)).Post("/", leadHandler.CreateLead)
		r.With(requireAuth).Get("/", leadHandler.ListLeads)
	})

	// --- Media ---
	r.Route("/media", func(r chi.Router) {
		r.With(requireAuth).Post("/upload", mediaHandler.Upload)
		r.Get("/{name}", mediaHandler.Serve)
	})

	s.router = r
	return nil
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when the document store is
// reachable, 503 otherwise.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := map[string]string{"store": "ok"}

	if err := s.store.Ping(r.Context()); err != nil {
		checks["store"] = "error: " + err.Error()
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests and closes the store.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := s.store.Close(shutdownCtx); err != nil {
		s.logger.Warn("store close", "error", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
