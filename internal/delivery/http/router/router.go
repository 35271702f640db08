package router

import (
	"net/http"

	"galleryadmin/internal/delivery/http/handler"
	"galleryadmin/internal/delivery/http/middleware"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Account   *handler.AccountHandler
	Event     *handler.EventHandler
	Photo     *handler.PhotoHandler
}

// Setup configures all routes for the panel
func Setup(handlers Handlers, sessions middleware.SessionChecker) *http.ServeMux {
	mux := http.NewServeMux()

	// Middleware helpers
	noStore := middleware.NoStore
	guarded := middleware.RequireSession(sessions)
	loginOnly := middleware.RedirectIfAuthenticated(sessions)

	// Chain helper
	chain := func(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}

	mux.HandleFunc("/", handler.Root)

	// ==================
	// Auth routes
	// ==================
	mux.HandleFunc("/admin/connection", chain(handlers.Auth.Connection, noStore, loginOnly))
	mux.HandleFunc("/admin/logout", chain(handlers.Auth.Logout, noStore))

	// ==================
	// Panel routes (session required)
	// ==================
	mux.HandleFunc("/admin/dashboard", chain(handlers.Dashboard.Show, noStore, guarded))
	mux.HandleFunc("/admin/account", chain(handlers.Account.Account, noStore, guarded))

	mux.HandleFunc("/admin/events", chain(handlers.Event.List, noStore, guarded))
	mux.HandleFunc("/admin/events/new", chain(handlers.Event.New, noStore, guarded))
	mux.HandleFunc("/admin/events/save", chain(handlers.Event.Save, noStore, guarded))
	mux.HandleFunc("/admin/events/", chain(handlers.Event.EventByID, noStore, guarded))
	mux.HandleFunc("/admin/previews/", chain(handlers.Event.Preview, noStore, guarded))

	mux.HandleFunc("/admin/photos", chain(handlers.Photo.Gallery, noStore, guarded))
	mux.HandleFunc("/admin/photos/upload", chain(handlers.Photo.Upload, noStore, guarded))
	mux.HandleFunc("/admin/photos/", chain(handlers.Photo.PhotoByID, noStore, guarded))

	return mux
}
