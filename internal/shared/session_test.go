package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "sid", "secret", time.Hour, false), mr
}

func commitSession(t *testing.T, sm *SessionManager, sess *Session) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, sm.Commit(context.Background(), rec, req, sess))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func loadWithCookie(t *testing.T, sm *SessionManager, cookie *http.Cookie) *Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	return sess
}

func TestSessionRoundTrip(t *testing.T) {
	sm, mr := newTestSessionManager(t)

	sess := loadWithCookie(t, sm, nil)
	sess.Set("theme", "dark")
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	sess.SetBearer("tok", "a@x.com", expires)
	sess.AddFlash(FlashMessage{Kind: "info", Message: "hi"})
	cookie := commitSession(t, sm, sess)

	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, sm.CookieValue(sess.ID), cookie.Value)
	assert.True(t, mr.Exists("jobboard:session:"+sess.ID))

	loaded := loadWithCookie(t, sm, cookie)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, "dark", loaded.Get("theme"))
	tok, email, exp, ok := loaded.Bearer()
	require.True(t, ok)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, "a@x.com", email)
	assert.True(t, exp.Equal(expires))

	flash := loaded.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "hi", flash.Message)
	assert.Nil(t, loaded.PopFlash())
}

func TestSessionRejectsForgedCookie(t *testing.T) {
	sm, _ := newTestSessionManager(t)

	sess := loadWithCookie(t, sm, nil)
	sess.Set("k", "v")
	commitSession(t, sm, sess)

	forged := &http.Cookie{Name: "sid", Value: sess.ID + ".bogus"}
	loaded := loadWithCookie(t, sm, forged)
	assert.NotEqual(t, sess.ID, loaded.ID)
	assert.Empty(t, loaded.Get("k"))

	bare := &http.Cookie{Name: "sid", Value: sess.ID}
	assert.NotEqual(t, sess.ID, loadWithCookie(t, sm, bare).ID)
}

func TestSessionRenewDropsOldID(t *testing.T) {
	sm, mr := newTestSessionManager(t)

	sess := loadWithCookie(t, sm, nil)
	sess.Set("k", "v")
	cookie := commitSession(t, sm, sess)
	oldID := sess.ID

	loaded := loadWithCookie(t, sm, cookie)
	sm.Renew(loaded)
	require.NotEqual(t, oldID, loaded.ID)
	renewed := commitSession(t, sm, loaded)

	assert.False(t, mr.Exists("jobboard:session:"+oldID))
	assert.True(t, mr.Exists("jobboard:session:"+loaded.ID))
	assert.Equal(t, "v", loadWithCookie(t, sm, renewed).Get("k"))
	assert.NotEqual(t, oldID, loadWithCookie(t, sm, cookie).ID)
}

func TestSessionClearBearer(t *testing.T) {
	var nilSession *Session
	_, _, _, ok := nilSession.Bearer()
	assert.False(t, ok)

	sess := &Session{}
	sess.SetBearer("tok", "a@x.com", time.Now())
	sess.ClearBearer()
	_, _, _, ok = sess.Bearer()
	assert.False(t, ok)
}
