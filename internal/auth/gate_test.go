package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginToken(t *testing.T, m *Manager) string {
	t.Helper()
	token, err := m.Login("admin@example.com", "correct-password")
	require.NoError(t, err)
	return token
}

func TestSessionFromRequest(t *testing.T) {
	m := newTestManager(t)
	token := loginToken(t, m)

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   bool
	}{
		{"valid cookie", &http.Cookie{Name: CookieName, Value: token}, true},
		{"no cookie", nil, false},
		{"wrong cookie name", &http.Cookie{Name: "session", Value: token}, false},
		{"garbage value", &http.Cookie{Name: CookieName, Value: "garbage"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/motos", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}

			claims := m.SessionFromRequest(r)
			assert.Equal(t, tt.want, claims != nil)
			assert.Equal(t, tt.want, m.IsAuthorized(r))
		})
	}
}

func TestSetSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-value", true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, CookiePath, cookie.Path)
	assert.Equal(t, int(SessionTTL.Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestSetSessionCookie_DevelopmentNotSecure(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-value", false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.False(t, cookies[0].Secure)
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
