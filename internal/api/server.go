// Package api exposes topic search and community resolution over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"topic-communities/internal/common/database"
	"topic-communities/internal/common/logger"
	"topic-communities/internal/models"
)

// SessionHeader identifies the client session whose older requests a new one
// supersedes.
const SessionHeader = "X-Session-ID"

// Resolver is the flow the API serves.
type Resolver interface {
	SearchTopicsForSession(ctx context.Context, session, query string) ([]models.Topic, error)
	ResolveForSession(ctx context.Context, session, topicID string) (*models.ResolutionResult, error)
}

type Options struct {
	CORSOrigins     []string
	RateLimit       int // requests per window per IP, 0 disables
	RateLimitWindow time.Duration
	// Checks are pinged by /ready.
	Checks map[string]database.Pinger
}

type Server struct {
	resolver Resolver
	opts     Options
	logger   logger.Logger
}

func NewServer(resolver Resolver, opts Options, log logger.Logger) *Server {
	if opts.RateLimitWindow == 0 {
		opts.RateLimitWindow = time.Minute
	}
	return &Server{resolver: resolver, opts: opts, logger: log}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(AccessLog(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", SessionHeader, RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         86400,
	}))

	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimit, s.opts.RateLimitWindow))
		}
		r.Get("/topics", s.searchTopics)
		r.Get("/topics/{topicID}/communities", s.topicCommunities)
	})

	return r
}
