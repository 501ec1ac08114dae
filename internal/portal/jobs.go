package portal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobboard/jobboard/internal/postings"
	"github.com/jobboard/jobboard/internal/shared"
)

type homePageData struct {
	Jobs   []postings.Job
	Facets postings.Facets
	Filter postings.Filter
}

type dashboardPageData struct {
	Jobs  []postings.Job
	Form  postings.NewJob
	Error string
}

func (h *Handler) showHome(w http.ResponseWriter, r *http.Request) {
	filter := postings.Filter{
		JobType:  r.URL.Query().Get("job_type"),
		Location: r.URL.Query().Get("location"),
	}
	jobs, err := h.postings.ListJobs(r.Context(), filter)
	if err != nil {
		h.logger.Error("list jobs", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	facets, err := h.postings.Facets(r.Context())
	if err != nil {
		h.logger.Error("job facets", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "pages/home.html", "Jobs", homePageData{Jobs: jobs, Facets: facets, Filter: filter})
}

// requireToken sends visitors without a session token to the login page.
// Expiry is left to the gated calls themselves.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if _, _, _, ok := sess.Bearer(); !ok {
			h.redirect(w, r, "/login", &shared.FlashMessage{Kind: "info", Message: "Please log in to continue."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, http.StatusOK, postings.NewJob{}, "")
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, status int, form postings.NewJob, errMsg string) {
	jobs, err := h.postings.ListJobs(r.Context(), postings.Filter{})
	if err != nil {
		h.logger.Error("list jobs", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, status, "pages/dashboard.html", "Dashboard", dashboardPageData{Jobs: jobs, Form: form, Error: errMsg})
}

func (h *Handler) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	input := postings.NewJob{
		Title:       r.PostFormValue("title"),
		Company:     r.PostFormValue("company"),
		Location:    r.PostFormValue("location"),
		JobType:     r.PostFormValue("job_type"),
		Description: r.PostFormValue("description"),
	}
	sess := shared.SessionFromContext(r.Context())
	raw, _, _, _ := sess.Bearer()

	job, err := h.postings.CreateJob(r.Context(), raw, input)
	if err != nil {
		if isUnauthenticated(err) {
			h.expire(w, r, sess, err)
			return
		}
		status, msg := h.failure(r, err, "portal create job")
		h.renderDashboard(w, r, status, input, msg)
		return
	}
	h.redirect(w, r, "/dashboard", &shared.FlashMessage{Kind: "success", Message: "Job \"" + job.Title + "\" created."})
}

func (h *Handler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	raw, _, _, _ := sess.Bearer()

	job, err := h.postings.DeleteJob(r.Context(), raw, chi.URLParam(r, "jobId"))
	if err != nil {
		if isUnauthenticated(err) {
			h.expire(w, r, sess, err)
			return
		}
		_, msg := h.failure(r, err, "portal delete job")
		h.redirect(w, r, "/dashboard", &shared.FlashMessage{Kind: "error", Message: msg})
		return
	}
	h.redirect(w, r, "/dashboard", &shared.FlashMessage{Kind: "success", Message: "Job \"" + job.Title + "\" deleted."})
}

// expire drops a token the postings service rejected and asks for a new login.
func (h *Handler) expire(w http.ResponseWriter, r *http.Request, sess *shared.Session, err error) {
	h.logger.Info("session token rejected", slog.Any("error", err))
	if sess != nil {
		sess.ClearBearer()
	}
	h.redirect(w, r, "/login", &shared.FlashMessage{Kind: "error", Message: "Your session has expired, please log in again."})
}
