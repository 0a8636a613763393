// Package api exposes the catalog over HTTP: public browse and rating
// endpoints plus the admin write endpoints, all under /api/v1.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/reelhouse/catalog-server/internal/http/response"
	"github.com/reelhouse/catalog-server/internal/ratelimit"
	"github.com/reelhouse/catalog-server/internal/store"
)

// Options tune the HTTP layer.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration

	// RatingLimiter limits rating submissions per viewer id.
	RatingLimiter *ratelimit.KeyedRateLimiter
	// WriteLimiter limits write requests per client IP. Nil disables it.
	WriteLimiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	opts     Options
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates the HTTP handler with every route registered.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.RatingLimiter == nil {
		opts.RatingLimiter = ratelimit.New(30, 10)
	}

	s := &Server{
		store:    st,
		services: services,
		opts:     opts,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Catalog API", "1.0.0")
	humaConfig.Info.Description = "Short film and series catalog"
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler(logger)

	s.registerHealthRoutes()
	s.registerBrowseRoutes()
	s.registerMovieRoutes()
	s.registerRatingRoutes()
	s.registerCreatorRoutes()
	s.registerGenreRoutes()
	s.registerSeriesRoutes()
	s.registerViewerRoutes()
	s.registerAdminRoutes()

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, s.logger)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(Recoverer(s.logger))
	s.router.Use(middleware.Timeout(s.opts.RequestTimeout))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if s.opts.WriteLimiter != nil {
		s.router.Use(WriteRateLimitMiddleware(s.opts.WriteLimiter, s.logger))
	}
}
