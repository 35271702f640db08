package middleware

import "net/http"

// NoStore marks a page uncacheable. Everything under /admin/ is personal to
// the signed-in admin and must not end up in shared caches.
func NoStore(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next(w, r)
	}
}
