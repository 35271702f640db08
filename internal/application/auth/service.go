package auth

import (
	"context"

	"galleryadmin/internal/domain/auth"
	"galleryadmin/internal/domain/user"
)

// Service drives the login/logout flow and the account page.
type Service interface {
	Login(ctx context.Context, creds auth.Credentials) error
	Logout() error
	Authenticated() bool
	CurrentUser(ctx context.Context) (*user.User, error)
	UpdateAccount(ctx context.Context, update user.UpdateRequest) (*user.User, error)
}

// Client is the slice of the API client the auth flow needs.
type Client interface {
	Login(ctx context.Context, email, password string) (*auth.Token, error)
	CurrentUser(ctx context.Context) (*user.User, error)
	UpdateUser(ctx context.Context, update user.UpdateRequest) (*user.User, error)
}

// SessionStore persists the bearer token between requests.
type SessionStore interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

type service struct {
	client   Client
	sessions SessionStore
}

// NewService creates a new auth service
func NewService(client Client, sessions SessionStore) Service {
	return &service{client: client, sessions: sessions}
}

// Login exchanges credentials for a token and persists it. On any failure
// the session store is left untouched.
func (s *service) Login(ctx context.Context, creds auth.Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return auth.ErrMissingCredentials
	}

	tok, err := s.client.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}
	return s.sessions.SetToken(tok.AccessToken)
}

func (s *service) Logout() error {
	return s.sessions.Clear()
}

func (s *service) Authenticated() bool {
	return s.sessions.Token() != ""
}

func (s *service) CurrentUser(ctx context.Context) (*user.User, error) {
	return s.client.CurrentUser(ctx)
}

func (s *service) UpdateAccount(ctx context.Context, update user.UpdateRequest) (*user.User, error) {
	if update.Email == "" && update.Password == "" {
		return nil, user.ErrNothingToUpdate
	}
	return s.client.UpdateUser(ctx, update)
}
