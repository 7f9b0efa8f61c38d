package middleware

import (
	"net/http"

	"github.com/aidsync/aidsync/internal/models"
	"github.com/aidsync/aidsync/internal/session"
	pkghttp "github.com/aidsync/aidsync/pkg/http"
)

// RequireSession rejects requests when no live session is held, and
// counts each request as user activity.
func RequireSession(guard *session.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.IsLoggedIn() {
				pkghttp.WriteUnauthorized(w, "not logged in")
				return
			}
			guard.UpdateActivity()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireFeature gates a route on the capability table: the current
// role must be permitted the feature.
func RequireFeature(guard *session.Guard, feature models.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := guard.CurrentUser()
			if user == nil {
				pkghttp.WriteUnauthorized(w, "not logged in")
				return
			}
			if !user.Role.Can(feature) {
				pkghttp.WriteForbidden(w, "role not permitted")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
