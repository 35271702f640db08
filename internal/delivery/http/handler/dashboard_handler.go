package handler

import (
	"log"
	"net/http"

	authService "galleryadmin/internal/application/auth"
)

type DashboardHandler struct {
	service authService.Service
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service authService.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardPage struct {
	Active string
	Email  string
}

// Show renders the landing page with a greeting for the signed-in admin.
// The greeting degrades to a generic one when the profile fetch fails.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := dashboardPage{Active: "dashboard"}
	if u, err := h.service.CurrentUser(r.Context()); err != nil {
		log.Printf("Error fetching current user: %v", err)
	} else {
		page.Email = u.Email
	}
	Render(w, http.StatusOK, "dashboard", page)
}
