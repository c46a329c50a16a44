// Package server exposes the board service over HTTP.
//
// # Routes
//
//	POST   /api/v1/pack                     stateless placement
//	POST   /api/v1/clamp                    stateless drag clamp
//	POST   /api/v1/boards                   create a board
//	GET    /api/v1/boards/{id}              board view
//	DELETE /api/v1/boards/{id}              delete a board
//	POST   /api/v1/boards/{id}/drag/start   begin a drag
//	POST   /api/v1/boards/{id}/drag/end     drop and commit
//	POST   /api/v1/boards/{id}/drag/cancel  abandon a drag
//	GET    /api/v1/boards/{id}/preview      live preview offsets
//	POST   /api/v1/boards/{id}/modify       per-frame drag modifier
//	GET    /api/v1/boards/{id}/render       rendered board (?format=svg|dot|neato|png|pdf)
//	GET    /api/v1/boards/{id}/svg          rendered board as SVG
//	GET    /healthz                         liveness
//
// Errors are returned as {"error": {"code": ..., "message": ...}} with the
// HTTP status derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridboard/pkg/service"
)

// DefaultTimeout bounds the handling time of a single request.
const DefaultTimeout = 30 * time.Second

// Server serves the HTTP API.
type Server struct {
	svc     *service.Service
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithTimeout sets the per-request timeout (default [DefaultTimeout]).
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a server for svc.
func New(svc *service.Service, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{svc: svc, logger: logger, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/pack", s.handlePack)
		r.Post("/clamp", s.handleClamp)

		r.Route("/boards", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Post("/drag/start", s.handleDragStart)
				r.Post("/drag/end", s.handleDragEnd)
				r.Post("/drag/cancel", s.handleDragCancel)
				r.Get("/preview", s.handlePreview)
				r.Post("/modify", s.handleModify)
				r.Get("/render", s.handleRender)
				r.Get("/svg", s.handleSVG)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	return r
}
