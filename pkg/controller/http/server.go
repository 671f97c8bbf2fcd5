package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/argus/pkg/usecase"
	"github.com/secmon-lab/argus/pkg/utils/async"
	"github.com/secmon-lab/argus/pkg/utils/logging"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	triggerSecret string
	sweepAfterRun bool
}

type Options func(*Server)

// WithTriggerSecret sets the shared secret required on the trigger
// endpoint. Without one the endpoint is disabled entirely.
func WithTriggerSecret(secret string) Options {
	return func(s *Server) {
		s.triggerSecret = secret
	}
}

// WithSweepAfterRun enables an asynchronous retention sweep after each
// trigger pass.
func WithSweepAfterRun(enabled bool) Options {
	return func(s *Server) {
		s.sweepAfterRun = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/preferences", s.getPreferences)
		r.Post("/preferences", s.upsertPreferences)
		r.Post("/notify/test", s.testDelivery)

		// The external scheduler's entry point. Disabled unless a secret
		// is configured; an unauthenticated trigger would let anyone
		// burn the provider rate limit.
		if s.triggerSecret != "" {
			r.With(bearerAuth(s.triggerSecret)).Get("/cron/check", s.triggerCheck)
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// triggerCheck runs one orchestrator pass and reports the per-user
// results. The optional retention sweep runs detached so a slow delete
// never delays the scheduler's response.
func (s *Server) triggerCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := s.uc.RunCheck(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	if s.sweepAfterRun {
		async.Dispatch(ctx, func(ctx context.Context) error {
			_, err := s.uc.Sweep(ctx)
			return err
		})
	}

	respondJSON(ctx, w, http.StatusOK, summary)
}
