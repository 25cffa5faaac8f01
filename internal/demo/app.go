// Package demo is a small users API documented and validated with apispec.
package demo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Gobd/apispec"
	"github.com/Gobd/apispec/internal/logging"
)

// App is the demo router with its document.
type App struct {
	Router chi.Router
	Spec   *apispec.Spec
	Store  *Store
}

// DefaultConfig serves the viewer at /docs with assets under /static.
func DefaultConfig() apispec.Config {
	cfg := apispec.DefaultConfig()
	cfg.Title = "Users API"
	cfg.Description = "Toy users database"
	cfg.SwaggerPath = "/docs"
	cfg.StaticPath = "/static"
	cfg.Tags = []apispec.Tag{{Name: "users", Description: "User management"}}
	return cfg
}

// Option tunes the demo router.
type Option func(*options)

type options struct {
	rate  float64
	burst int
}

// WithRateLimit limits each client IP to rps requests per second. A
// non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.rate, o.burst = rps, max(burst, 1)
	}
}

// New wires the users routes, the middleware stack and the document.
func New(cfg apispec.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cat := apispec.NewCatalog()
	spec := apispec.NewFromConfig(cfg, apispec.WithCatalog(cat), apispec.WithLogger(logger))
	store := NewStore()
	v := &views{store: store, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logging.Requests(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if o.rate > 0 {
		r.Use(rateLimit(o.rate, o.burst))
	}
	r.Use(spec.Middleware)

	r.Route("/users", func(r chi.Router) {
		r.Method(http.MethodGet, "/", v.listUsers(cat))
		r.Method(http.MethodPost, "/", v.createUser(cat))
		r.Method(http.MethodGet, "/{id:[0-9]+}/", v.getUser(cat))
	})

	if err := spec.Register(r, cfg.InPlace); err != nil {
		return nil, err
	}
	return &App{Router: r, Spec: spec, Store: store}, nil
}
