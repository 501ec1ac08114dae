package view

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderNavFollowsSessionState(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "pages/login.html", TemplateData{Title: "Login"}))
	assert.Contains(t, rec.Body.String(), `href="/register"`)
	assert.NotContains(t, rec.Body.String(), `action="/logout"`)

	rec = httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "pages/login.html", TemplateData{
		Title:   "Login",
		Session: SessionState{Authenticated: true, Email: "a@x.com"},
	}))
	assert.Contains(t, rec.Body.String(), `action="/logout"`)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", formatDate(time.Time{}))
	assert.Equal(t, "01 Mar 2025", formatDate(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)))
}
