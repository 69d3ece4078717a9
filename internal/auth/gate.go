package auth

import "net/http"

// SessionFromRequest extracts the session cookie from the request and
// verifies it. Returns nil when the cookie is absent or the token does not
// verify.
//
// This is the access gate every admin operation consults before touching the
// database, the image store or the filesystem. It is pure with respect to
// the request cookies, the configured secret and the current time, so
// handlers can be tested with synthetic requests and tokens.
func (m *Manager) SessionFromRequest(r *http.Request) *Claims {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	return m.Verify(cookie.Value)
}

// IsAuthorized reports whether the request carries a valid admin session.
func (m *Manager) IsAuthorized(r *http.Request) bool {
	return m.SessionFromRequest(r) != nil
}

// SetSessionCookie writes the session token to the response.
//
// HttpOnly blocks script access, SameSite=Strict stops the cookie riding on
// cross-site navigation, and max-age matches the token TTL so the browser
// drops the cookie when the token would expire anyway.
func SetSessionCookie(w http.ResponseWriter, token string, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     CookiePath,
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie tells the client to discard the session cookie. The
// server keeps no session state, so this is the whole of logout.
func ClearSessionCookie(w http.ResponseWriter, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     CookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
