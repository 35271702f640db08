package handler

import (
	"fmt"
	"net/http"

	authService "galleryadmin/internal/application/auth"
	"galleryadmin/internal/domain/user"
)

type AccountHandler struct {
	service authService.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service authService.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

type accountPage struct {
	Active  string
	Email   string
	Error   string
	Message string
}

// Account serves the profile page: GET shows the current email, POST
// updates email and/or password.
func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.show(w, r)
	case http.MethodPost:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AccountHandler) show(w http.ResponseWriter, r *http.Request) {
	page := accountPage{Active: "account"}
	if u, err := h.service.CurrentUser(r.Context()); err != nil {
		page.Error = fmt.Sprintf("Failed to load account: %v", err)
	} else {
		page.Email = u.Email
	}
	Render(w, http.StatusOK, "account", page)
}

func (h *AccountHandler) update(w http.ResponseWriter, r *http.Request) {
	page := accountPage{Active: "account"}
	if err := r.ParseForm(); err != nil {
		page.Error = "Invalid form submission"
		Render(w, http.StatusBadRequest, "account", page)
		return
	}

	update := user.UpdateRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	page.Email = update.Email

	u, err := h.service.UpdateAccount(r.Context(), update)
	if err != nil {
		page.Error = fmt.Sprintf("Failed to update account: %v", err)
		if cu, cerr := h.service.CurrentUser(r.Context()); cerr == nil {
			page.Email = cu.Email
		}
		Render(w, http.StatusOK, "account", page)
		return
	}

	page.Email = u.Email
	page.Message = "Account updated"
	Render(w, http.StatusOK, "account", page)
}
