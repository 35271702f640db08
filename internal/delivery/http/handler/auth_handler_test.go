package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"galleryadmin/internal/domain/auth"
	"galleryadmin/internal/domain/user"
	"galleryadmin/internal/infrastructure/apiclient"
)

type fakeAuthService struct {
	loginErr  error
	loggedIn  bool
	loggedOut bool
}

func (f *fakeAuthService) Login(ctx context.Context, creds auth.Credentials) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}

func (f *fakeAuthService) Logout() error {
	f.loggedOut = true
	return nil
}

func (f *fakeAuthService) Authenticated() bool { return f.loggedIn }

func (f *fakeAuthService) CurrentUser(ctx context.Context) (*user.User, error) {
	return &user.User{ID: 1, Email: "admin@example.com"}, nil
}

func (f *fakeAuthService) UpdateAccount(ctx context.Context, update user.UpdateRequest) (*user.User, error) {
	return &user.User{ID: 1, Email: update.Email}, nil
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestConnectionRendersLoginForm(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})

	w := httptest.NewRecorder()
	h.Connection(w, httptest.NewRequest(http.MethodGet, "/admin/connection", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Administrator Login") {
		t.Error("Login page should carry its heading")
	}
	if !strings.Contains(body, `name="password"`) {
		t.Error("Login page should carry a password field")
	}
}

func TestLoginSuccessRedirects(t *testing.T) {
	svc := &fakeAuthService{}
	h := NewAuthHandler(svc)

	w := httptest.NewRecorder()
	h.Connection(w, postForm("/admin/connection", url.Values{
		"email":    {"admin@example.com"},
		"password": {"hunter2"},
	}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Status = %d, want 303", w.Code)
	}
	if got := w.Result().Header.Get("Location"); got != "/admin/dashboard" {
		t.Errorf("Location = %q, want /admin/dashboard", got)
	}
	if !svc.loggedIn {
		t.Error("Expected the service login to run")
	}
}

func TestLoginRejectionRendersGenericMessage(t *testing.T) {
	svc := &fakeAuthService{loginErr: &apiclient.APIError{Status: http.StatusUnauthorized, StatusText: "Unauthorized"}}
	h := NewAuthHandler(svc)

	w := httptest.NewRecorder()
	h.Connection(w, postForm("/admin/connection", url.Values{
		"email":    {"admin@example.com"},
		"password": {"wrong"},
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, wrongCredentialsMessage) {
		t.Error("Rejection should show the generic credentials message")
	}
	if !strings.Contains(body, `value="admin@example.com"`) {
		t.Error("Entered email should survive the failed submit")
	}
}

func TestLogout(t *testing.T) {
	svc := &fakeAuthService{loggedIn: true}
	h := NewAuthHandler(svc)

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodPost, "/admin/logout", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Status = %d, want 303", w.Code)
	}
	if got := w.Result().Header.Get("Location"); got != "/admin/connection" {
		t.Errorf("Location = %q, want /admin/connection", got)
	}
	if !svc.loggedOut {
		t.Error("Expected the session to be cleared")
	}
}

func TestLogoutRejectsGet(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodGet, "/admin/logout", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want 405", w.Code)
	}
}
