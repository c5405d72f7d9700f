// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"summagraph/guideline"
	"summagraph/pipeline"
)

// maxBodyBytes caps request bodies on the generate routes.
const maxBodyBytes = 2 << 20

// Generator runs one pipeline job.
type Generator interface {
	Generate(ctx context.Context, req pipeline.Request, obs pipeline.Observer) (pipeline.Result, error)
}

// Catalog lists selectable layouts and styles.
type Catalog interface {
	Catalog() guideline.Catalog
}

// Options configure a Server. Zero values disable the rate limit, the generate timeout and
// the /metrics route.
type Options struct {
	OutputRoot         string
	RateLimitPerMinute int
	GenerateTimeout    time.Duration
	Gatherer           prometheus.Gatherer
	Logger             zerolog.Logger
}

type Server struct {
	gen     Generator
	catalog Catalog
	opts    Options
	limiter *ipLimiter
	logger  zerolog.Logger
}

func New(gen Generator, catalog Catalog, opts Options) (*Server, error) {
	if gen == nil {
		return nil, errors.New("generator required")
	}
	if catalog == nil {
		return nil, errors.New("catalog required")
	}
	return &Server{
		gen:     gen,
		catalog: catalog,
		opts:    opts,
		limiter: newIPLimiter(opts.RateLimitPerMinute),
		logger:  opts.Logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, requestLogger(s.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/options", s.handleOptions)

		r.Group(func(r chi.Router) {
			r.Use(s.limiter.middleware, limitBody)
			r.Post("/generate", s.handleGenerate)
			r.Post("/generate-stream", s.handleGenerateStream)
		})
	})

	if s.opts.OutputRoot != "" {
		r.Handle(pipeline.OutputsPrefix+"*", http.StripPrefix(pipeline.OutputsPrefix, fileServer(s.opts.OutputRoot)))
	}
	if s.opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// generateContext applies the configured generate timeout.
func (s *Server) generateContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.opts.GenerateTimeout > 0 {
		return context.WithTimeout(parent, s.opts.GenerateTimeout)
	}
	return context.WithCancel(parent)
}

// --- Helpers ---

type envelope struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, envelope{OK: false, Error: err.Error()})
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pipeline.ErrEmptyText), errors.Is(err, pipeline.ErrInvalidImageCount), errors.Is(err, errBadJSON):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
