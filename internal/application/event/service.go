package event

import (
	"context"
	"io"
	"strings"
	"sync"

	"galleryadmin/internal/domain/event"
	"galleryadmin/internal/infrastructure/staging"
)

// Service drives the event management flow. It keeps the last fetched event
// list so that deletes can reconcile locally instead of round-tripping; the
// backend stays the source of truth and every page view or successful
// create/update re-fetches.
type Service interface {
	Events() []event.Event
	Refresh(ctx context.Context) error
	FormFor(id int) (event.Form, error)
	StageCover(filename string, r io.Reader) (*staging.File, error)
	DiscardCover(id string)
	PreviewPath(id string) (string, bool)
	Save(ctx context.Context, form event.Form) error
	Delete(ctx context.Context, id int) error
}

// Client is the slice of the API client the event flow needs.
type Client interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
	CreateEvent(ctx context.Context, payload event.Payload, coverName string, cover io.Reader) (*event.Event, error)
	UpdateEvent(ctx context.Context, id int, payload event.Payload, coverName string, cover io.Reader) (*event.Event, error)
	DeleteEvent(ctx context.Context, id int) error
}

type service struct {
	client  Client
	staging *staging.Store

	mu     sync.Mutex
	events []event.Event
}

// NewService creates a new event service
func NewService(client Client, staging *staging.Store) Service {
	return &service{client: client, staging: staging}
}

// Events returns a copy of the cached event list.
func (s *service) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Refresh re-fetches the full list from the backend.
func (s *service) Refresh(ctx context.Context) error {
	events, err := s.client.ListEvents(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	return nil
}

// FormFor builds an edit form pre-populated from the cached event. The file
// field starts empty; the existing cover URL is kept as the fallback.
func (s *service) FormFor(id int) (event.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return event.Form{
				ID:            ev.ID,
				Title:         ev.Title,
				Description:   ev.Description,
				Date:          ev.Date,
				Location:      ev.Location,
				CoverImageURL: ev.CoverImageURL,
			}, nil
		}
	}
	return event.Form{}, event.ErrNotFound
}

// StageCover parks a newly chosen cover file so a failed submit can be
// retried without re-choosing it.
func (s *service) StageCover(filename string, r io.Reader) (*staging.File, error) {
	return s.staging.Save(filename, r)
}

// DiscardCover drops a staged cover, used when the form is abandoned.
func (s *service) DiscardCover(id string) {
	s.staging.Remove(id)
}

// PreviewPath exposes the staged cover's thumbnail for serving.
func (s *service) PreviewPath(id string) (string, bool) {
	return s.staging.PreviewPath(id)
}

// Save submits the form as a create or update, depending on form.ID. A
// staged cover file supersedes any stored cover URL: when one is present
// the payload omits cover_image_url entirely and the file rides along as
// the binary part. On success the staged file is discarded and the list
// re-fetched; on failure the staged file is kept for the retry.
func (s *service) Save(ctx context.Context, form event.Form) error {
	if strings.TrimSpace(form.Title) == "" {
		return event.ErrTitleRequired
	}

	payload := event.Payload{
		Title:       form.Title,
		Description: form.Description,
		Date:        form.Date,
		Location:    form.Location,
	}

	var cover io.Reader
	coverName := ""
	if form.StagedCoverID != "" {
		f, rc, err := s.staging.Open(form.StagedCoverID)
		if err != nil {
			return err
		}
		defer rc.Close()
		coverName = f.Name
		cover = rc
	} else if form.CoverImageURL != "" {
		payload.CoverImageURL = form.CoverImageURL
	}

	var err error
	if form.ID != 0 {
		_, err = s.client.UpdateEvent(ctx, form.ID, payload, coverName, cover)
	} else {
		_, err = s.client.CreateEvent(ctx, payload, coverName, cover)
	}
	if err != nil {
		return err
	}

	if form.StagedCoverID != "" {
		s.staging.Remove(form.StagedCoverID)
	}
	return s.Refresh(ctx)
}

// Delete removes the event and filters it out of the cached list by id.
// Unlike create/update there is no re-fetch; the list shape after a delete
// is fully known locally.
func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := make([]event.Event, 0, len(s.events))
	for _, ev := range s.events {
		if ev.ID != id {
			filtered = append(filtered, ev)
		}
	}
	s.events = filtered
	return nil
}
