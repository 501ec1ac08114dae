package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jobboard/jobboard/internal/platform/httpx"
	"github.com/jobboard/jobboard/internal/shared"
)

// Handler wires the JSON endpoints for registration and login.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeCredentials(w, r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	acc, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	h.logger.Info("account registered", slog.Int64("account_id", acc.ID))
	httpx.JSON(w, http.StatusCreated, registerResponse{
		Message: "user registered",
		User:    userResponse{ID: acc.ID, Email: acc.Email},
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeCredentials(w, r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	tok, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{
		Message:   "login successful",
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt,
	})
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		return req, err
	}
	if err := h.validator.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Tag() == "max" {
					return req, shared.Validation("email is too long")
				}
			}
		}
		return req, ErrMissingCredentials
	}
	return req, nil
}
