package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elonfeng/prodradar/internal/pipeline"
	"github.com/elonfeng/prodradar/internal/quota"
	"github.com/elonfeng/prodradar/internal/store"
	"github.com/elonfeng/prodradar/pkg/tier"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options configures the HTTP server.
type Options struct {
	Port           int
	AllowedOrigins []string
}

// Server provides the HTTP API.
type Server struct {
	store   store.Store
	engine  *pipeline.Engine
	policy  *tier.Policy
	quota   *quota.Counter
	opts    Options
	log     *zap.SugaredLogger
	now     func() time.Time
	handler http.Handler
}

// New creates a new HTTP server. A nil quota counter disables detail-view limits.
func New(s store.Store, engine *pipeline.Engine, policy *tier.Policy, q *quota.Counter, opts Options, log *zap.SugaredLogger) *Server {
	if opts.Port == 0 {
		opts.Port = 8080
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:3000"}
	}
	srv := &Server{
		store:  s,
		engine: engine,
		policy: policy,
		quota:  q,
		opts:   opts,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
	srv.handler = srv.routes()
	return srv
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", headerTier, headerUser},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(subscriber)

		r.Get("/products", s.handleProducts)
		r.Get("/products/saved", s.handleSavedProducts)
		r.Get("/products/{id}", s.handleProduct)
		r.Get("/products/{id}/creatives", s.handleCreatives)
		r.Get("/products/{id}/history", s.handleHistory)
		r.Post("/products/{id}/save", s.handleSaveProduct)
		r.Delete("/products/{id}/save", s.handleUnsaveProduct)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/categories", s.handleCategories)
		r.Get("/trends", s.handleTrends)
		r.Post("/score", s.handleScore)
		r.Get("/tiers", s.handleTiers)
	})

	return r
}

// ListenAndServe starts the HTTP server and shuts it down when ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
