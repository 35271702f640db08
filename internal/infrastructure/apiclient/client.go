package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"galleryadmin/internal/domain/auth"
	"galleryadmin/internal/domain/event"
	"galleryadmin/internal/domain/photo"
	"galleryadmin/internal/domain/user"
)

const maxErrorBody = 1 << 20

// TokenSource provides the current bearer token; the session store
// satisfies it.
type TokenSource interface {
	Token() string
}

// Client wraps every call the panel makes against the backend REST API.
// Nothing else in the codebase issues network requests.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	login   *oauth2.Config
}

func New(baseURL string, tokens TokenSource) *Client {
	base := strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		login: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  base + "/admin/login",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// Login exchanges credentials for a bearer token. The backend's
// /admin/login is an OAuth2 password-grant token endpoint, so the exchange
// goes through the oauth2 package; the returned access token stays opaque.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.login.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			return nil, newAPIError(rerr.Response, rerr.Body)
		}
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &auth.Token{AccessToken: tok.AccessToken, TokenType: tok.TokenType}, nil
}

// CurrentUser fetches the authenticated admin account.
func (c *Client) CurrentUser(ctx context.Context) (*user.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/admin/me", nil, "", true)
	if err != nil {
		return nil, err
	}
	var u user.User
	if err := c.do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser submits an email/password change for the admin account.
func (c *Client) UpdateUser(ctx context.Context, update user.UpdateRequest) (*user.User, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/admin/me", bytes.NewReader(body), "application/json", true)
	if err != nil {
		return nil, err
	}
	var u user.User
	if err := c.do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListEvents fetches all events. The listing endpoint is public.
func (c *Client) ListEvents(ctx context.Context) ([]event.Event, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/events/", nil, "", false)
	if err != nil {
		return nil, err
	}
	var events []event.Event
	if err := c.do(req, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent posts a new event as multipart: an "event" JSON field plus an
// optional "file" cover part. A nil cover means no file part is sent.
func (c *Client) CreateEvent(ctx context.Context, payload event.Payload, coverName string, cover io.Reader) (*event.Event, error) {
	return c.submitEvent(ctx, http.MethodPost, "/events/", payload, coverName, cover)
}

// UpdateEvent puts changed event data, same body shape as CreateEvent.
func (c *Client) UpdateEvent(ctx context.Context, id int, payload event.Payload, coverName string, cover io.Reader) (*event.Event, error) {
	return c.submitEvent(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), payload, coverName, cover)
}

// DeleteEvent removes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, "", true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// UploadPhoto sends one gallery photo to the event-scoped upload endpoint.
func (c *Client) UploadPhoto(ctx context.Context, eventID int, filename string, content io.Reader) (*photo.Photo, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/photos/upload/%d", eventID), &buf, mw.FormDataContentType(), true)
	if err != nil {
		return nil, err
	}
	var p photo.Photo
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListEventPhotos fetches the gallery of one event. Public endpoint.
func (c *Client) ListEventPhotos(ctx context.Context, eventID int) ([]photo.Photo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/photos/events/%d/photos", eventID), nil, "", false)
	if err != nil {
		return nil, err
	}
	var photos []photo.Photo
	if err := c.do(req, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// DeletePhoto removes a photo by id, independent of its event.
func (c *Client) DeletePhoto(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/photos/%d", id), nil, "", true)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) submitEvent(ctx context.Context, method, path string, payload event.Payload, coverName string, cover io.Reader) (*event.Event, error) {
	meta, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("event", string(meta)); err != nil {
		return nil, err
	}
	if cover != nil {
		part, err := mw.CreateFormFile("file", coverName)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, cover); err != nil {
			return nil, fmt.Errorf("failed to read cover file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, method, path, &buf, mw.FormDataContentType(), true)
	if err != nil {
		return nil, err
	}
	var ev event.Event
	if err := c.do(req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

// do executes the request and decodes a 2xx JSON body into out (out may be
// nil for deletes). Any other status becomes an *APIError.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp, body)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
