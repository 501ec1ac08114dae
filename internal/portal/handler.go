// Package portal serves the server-rendered pages of the job board. The
// bearer token issued at login is held in the server-side session and
// presented to the postings service on every gated call.
package portal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jobboard/jobboard/internal/auth"
	"github.com/jobboard/jobboard/internal/platform/httpx"
	"github.com/jobboard/jobboard/internal/postings"
	"github.com/jobboard/jobboard/internal/shared"
	"github.com/jobboard/jobboard/internal/view"
)

const genericError = "Something went wrong, please try again."

// Handler wires HTTP endpoints for the portal pages.
type Handler struct {
	logger         *slog.Logger
	auth           *auth.Service
	postings       *postings.Service
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, authService *auth.Service, postingsService *postings.Service, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		auth:           authService,
		postings:       postingsService,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		validator:      validator.New(),
	}
}

// MountRoutes registers portal routes on provided router. The router must
// already carry the session and CSRF middlewares.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showHome)
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Get("/register", h.showRegister)
	r.Post("/register", h.handleRegister)
	r.Post("/logout", h.handleLogout)
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(h.requireToken)
		r.Get("/", h.showDashboard)
		r.Post("/jobs", h.handleCreateJob)
		r.Post("/jobs/{jobId}/delete", h.handleDeleteJob)
	})
}

// State derives the navigation state from the session's bearer token.
func State(sess *shared.Session) view.SessionState {
	_, email, expiresAt, ok := sess.Bearer()
	if !ok {
		return view.SessionState{}
	}
	return view.SessionState{Authenticated: true, Email: email, ExpiresAt: expiresAt}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, err := h.csrfManager.EnsureToken(r.Context(), sess)
	if err != nil {
		h.logger.Warn("ensure csrf token", slog.Any("error", err))
	}
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Session:     State(sess),
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, page, viewData); err != nil {
		h.logger.Error("render page", slog.String("page", page), slog.Any("error", err))
		if status == http.StatusOK {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, path string, flash *shared.FlashMessage) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil && flash != nil {
		sess.AddFlash(*flash)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// failure turns a service error into a status and a message fit for the page.
func (h *Handler) failure(r *http.Request, err error, msg string) (int, string) {
	status := httpx.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, slog.String("path", r.URL.Path), slog.Any("error", err))
		return status, genericError
	}
	h.logger.Warn(msg, slog.String("path", r.URL.Path), slog.Any("error", err))
	return status, shared.UserMessage(err, genericError)
}

func isUnauthenticated(err error) bool {
	return errors.Is(err, shared.ErrUnauthenticated)
}
