package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/jobboard/jobboard/internal/shared"
	"github.com/jobboard/jobboard/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// SessionState is the authentication state shown by the navigation. It is
// computed once per request from the session's bearer token.
type SessionState struct {
	Authenticated bool
	Email         string
	ExpiresAt     time.Time
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Session     SessionState
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": formatDate,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}
