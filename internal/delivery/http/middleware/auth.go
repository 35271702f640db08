package middleware

import "net/http"

// SessionChecker reports whether a session token is currently held; the
// session store satisfies it.
type SessionChecker interface {
	Token() string
}

// RequireSession guards a protected page: without a token the request is
// redirected to the login page and the page never renders. No backend
// validation happens here; a stale token surfaces later as an API error on
// the page itself.
func RequireSession(sessions SessionChecker) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if sessions.Token() == "" {
				http.Redirect(w, r, "/admin/connection", http.StatusFound)
				return
			}
			next(w, r)
		}
	}
}

// RedirectIfAuthenticated sends an already signed-in admin from the login
// page straight to the dashboard.
func RedirectIfAuthenticated(sessions SessionChecker) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if sessions.Token() != "" {
				http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
				return
			}
			next(w, r)
		}
	}
}
