package postings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobboard/jobboard/internal/platform/httpx"
	"github.com/jobboard/jobboard/internal/token"
)

// Handler exposes the job listing and the token-gated admin endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers posting routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Route("/admin", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Delete("/", h.handleDelete)
		r.Delete("/{jobId}", h.handleDelete)
	})
}

type listResponse struct {
	Jobs []Job `json:"jobs"`
}

type jobResponse struct {
	Message string `json:"message"`
	Job     Job    `json:"job"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		JobType:  r.URL.Query().Get("job_type"),
		Location: r.URL.Query().Get("location"),
	}
	jobs, err := h.service.ListJobs(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Jobs: jobs})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := token.FromHeader(r.Header.Get("Authorization"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	var input NewJob
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		if _, authErr := h.service.Authorize(raw); authErr != nil {
			err = authErr
		}
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	job, err := h.service.CreateJob(r.Context(), raw, input)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	h.logger.Info("job created", slog.Int64("job_id", job.ID))
	httpx.JSON(w, http.StatusCreated, jobResponse{Message: "job created", Job: job})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	raw, err := token.FromHeader(r.Header.Get("Authorization"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	job, err := h.service.DeleteJob(r.Context(), raw, chi.URLParam(r, "jobId"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	h.logger.Info("job deleted", slog.Int64("job_id", job.ID))
	httpx.JSON(w, http.StatusOK, jobResponse{Message: "job deleted", Job: job})
}
