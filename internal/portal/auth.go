package portal

import (
	"net/http"

	"github.com/jobboard/jobboard/internal/auth"
	"github.com/jobboard/jobboard/internal/shared"
)

type credentialsForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type authPageData struct {
	Email string
	Error string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/login.html", "Login", authPageData{})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := credentialsForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validator.Struct(form); err != nil {
		h.render(w, r, http.StatusBadRequest, "pages/login.html", "Login", authPageData{
			Email: form.Email,
			Error: auth.ErrMissingCredentials.Error(),
		})
		return
	}

	tok, err := h.auth.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		status, msg := h.failure(r, err, "portal login")
		h.render(w, r, status, "pages/login.html", "Login", authPageData{Email: form.Email, Error: msg})
		return
	}

	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.sessionManager.Renew(sess)
		sess.SetBearer(tok.Value, form.Email, tok.ExpiresAt)
	} else {
		h.logger.Error("session missing during login")
	}
	h.redirect(w, r, "/dashboard", &shared.FlashMessage{Kind: "success", Message: "Welcome back, " + form.Email + "."})
}

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/register.html", "Register", authPageData{})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := credentialsForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validator.Struct(form); err != nil {
		h.render(w, r, http.StatusBadRequest, "pages/register.html", "Register", authPageData{
			Email: form.Email,
			Error: auth.ErrMissingCredentials.Error(),
		})
		return
	}

	if _, err := h.auth.Register(r.Context(), form.Email, form.Password); err != nil {
		status, msg := h.failure(r, err, "portal register")
		h.render(w, r, status, "pages/register.html", "Register", authPageData{Email: form.Email, Error: msg})
		return
	}
	h.redirect(w, r, "/login", &shared.FlashMessage{Kind: "success", Message: "Account created, please log in."})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.ClearBearer()
	}
	h.redirect(w, r, "/", &shared.FlashMessage{Kind: "info", Message: "You have been logged out."})
}
