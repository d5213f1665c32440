package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/smartsched/leadbridge/internal/clients"
	httpmiddleware "github.com/smartsched/leadbridge/internal/http/middleware"
	"github.com/smartsched/leadbridge/internal/redirect"
	"github.com/smartsched/leadbridge/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ClientsHandler     *clients.Handler
	RedirectHandler    *redirect.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Webhook is running..."))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Client management
	if cfg.ClientsHandler != nil {
		r.Post("/client", cfg.ClientsHandler.Create)
		r.Put("/client", cfg.ClientsHandler.Update)
		r.Delete("/client/{email}", cfg.ClientsHandler.Delete)
	}

	// Webhook redirect. Static routes above win over the wildcards, so
	// /client and /metrics never fall through to the resolver.
	if cfg.RedirectHandler != nil {
		r.Get("/{param1}/{param2}", cfg.RedirectHandler.Redirect)
	}

	return r
}
