package handler

import (
	"errors"
	"log"
	"net/http"

	authService "galleryadmin/internal/application/auth"
	"galleryadmin/internal/domain/auth"
	"galleryadmin/internal/infrastructure/apiclient"
)

const wrongCredentialsMessage = "Email or password is incorrect"

type AuthHandler struct {
	service authService.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service authService.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginPage struct {
	Email string
	Error string
}

// Connection serves the login page: GET renders the form, POST submits it.
func (h *AuthHandler) Connection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		Render(w, http.StatusOK, "login", loginPage{})
	case http.MethodPost:
		h.login(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Render(w, http.StatusBadRequest, "login", loginPage{Error: "Invalid form submission"})
		return
	}

	creds := auth.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.service.Login(r.Context(), creds); err != nil {
		log.Printf("Login failed for %s: %v", creds.Email, err)
		Render(w, http.StatusOK, "login", loginPage{Email: creds.Email, Error: loginErrorMessage(err)})
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Logout clears the stored session and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.service.Logout(); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	http.Redirect(w, r, "/admin/connection", http.StatusSeeOther)
}

// loginErrorMessage keeps credential rejections generic so the form never
// reveals whether the email exists. Anything else passes through as-is.
func loginErrorMessage(err error) string {
	if errors.Is(err, auth.ErrMissingCredentials) {
		return wrongCredentialsMessage
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return wrongCredentialsMessage
	}
	return err.Error()
}
