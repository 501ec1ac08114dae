package app

import (
	"io/fs"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jobboard/jobboard/internal/auth"
	"github.com/jobboard/jobboard/internal/observability"
	"github.com/jobboard/jobboard/internal/portal"
	"github.com/jobboard/jobboard/internal/postings"
	"github.com/jobboard/jobboard/internal/shared"
	"github.com/jobboard/jobboard/tasks"
	"github.com/jobboard/jobboard/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	SessionManager  *shared.SessionManager
	CSRFManager     *shared.CSRFManager
	AuthHandler     *auth.Handler
	PostingsHandler *postings.Handler
	PortalHandler   *portal.Handler
	TasksHandler    *tasks.Handler
	Metrics         *observability.Metrics
	HealthCheck     func(r *http.Request) error
}

// NewRouter constructs the chi.Router with the job board defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if params.HealthCheck != nil {
			if err := params.HealthCheck(r); err != nil {
				logger.Warn("health check", slog.Any("error", err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.AuthHandler != nil {
		r.Route("/auth", params.AuthHandler.MountRoutes)
	}
	if params.PostingsHandler != nil {
		r.Route("/jobs", params.PostingsHandler.MountRoutes)
	}
	if params.TasksHandler != nil {
		r.Route("/tasks", params.TasksHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	if params.PortalHandler != nil {
		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(params.SessionManager, logger))
			r.Use(CSRFMiddleware(params.CSRFManager, logger))
			params.PortalHandler.MountRoutes(r)
		})
	}

	return r
}

func init() {
	// Minimal containers ship without /etc/mime.types.
	if mime.TypeByExtension(".css") == "" {
		_ = mime.AddExtensionType(".css", "text/css; charset=utf-8")
	}
}

// staticCacheHandler lets browsers cache static assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
