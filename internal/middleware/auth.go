// Package middleware contains HTTP middleware for the catalog server.
//
// Middleware functions follow the standard Go pattern of wrapping
// http.Handler and are composed with Stack.
package middleware

import (
	"net/http"
	"strings"

	"github.com/multimark/motos/internal/auth"
)

const (
	loginPath     = "/admin/login"
	dashboardPath = "/admin/dashboard"
)

// AdminPages routes traffic on /admin/* pages based on cookie presence:
//
//   - a request to an admin page without a session cookie is redirected to
//     the login page
//   - a request to the login page that already carries a cookie is
//     redirected to the dashboard
//
// This is deliberately shallow: only presence is checked, the token is not
// verified here. Forged or expired cookies pass the redirect layer and are
// rejected by the per-handler session check, which is the authoritative
// one. Keeping the edge check cheap means no crypto on every page load.
func AdminPages(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if !strings.HasPrefix(path, "/admin") {
			next.ServeHTTP(w, r)
			return
		}

		_, err := r.Cookie(auth.CookieName)
		hasCookie := err == nil

		if path == loginPath {
			if hasCookie {
				http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if !hasCookie {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WithSession loads and verifies the session cookie, storing the claims in
// the request context when valid. It never rejects the request; handlers
// that require auth check the context themselves.
func WithSession(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := manager.SessionFromRequest(r); claims != nil {
				r = r.WithContext(auth.WithSession(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Stack composes multiple middleware functions into a single middleware.
// The first middleware in the list is the outermost.
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
