package photo

import (
	"context"
	"fmt"
	"io"

	"galleryadmin/internal/domain/event"
	"galleryadmin/internal/domain/photo"
)

// Upload is one file chosen in the gallery upload form.
type Upload struct {
	Name    string
	Content io.Reader
}

// Service drives the gallery flow: pick an event, upload photos to it,
// list and delete them.
type Service interface {
	EventOptions(ctx context.Context) ([]event.Event, error)
	Photos(ctx context.Context, eventID int) ([]photo.Photo, error)
	Upload(ctx context.Context, eventID int, files []Upload) error
	Delete(ctx context.Context, photoID, eventID int) ([]photo.Photo, error)
}

// Client is the slice of the API client the gallery flow needs.
type Client interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
	UploadPhoto(ctx context.Context, eventID int, filename string, content io.Reader) (*photo.Photo, error)
	ListEventPhotos(ctx context.Context, eventID int) ([]photo.Photo, error)
	DeletePhoto(ctx context.Context, id int) error
}

type service struct {
	client Client
}

// NewService creates a new gallery service
func NewService(client Client) Service {
	return &service{client: client}
}

// EventOptions lists events for the target-event selector.
func (s *service) EventOptions(ctx context.Context) ([]event.Event, error) {
	return s.client.ListEvents(ctx)
}

// Photos fetches the gallery of the selected event.
func (s *service) Photos(ctx context.Context, eventID int) ([]photo.Photo, error) {
	return s.client.ListEventPhotos(ctx, eventID)
}

// Upload forwards the files strictly sequentially: upload N+1 does not
// start until N has resolved, and the first failure aborts the remainder.
// The error names the failing file so the operator can tell where the
// batch stopped; earlier files may already have landed.
func (s *service) Upload(ctx context.Context, eventID int, files []Upload) error {
	if eventID == 0 {
		return photo.ErrNoEventSelected
	}
	if len(files) == 0 {
		return photo.ErrNoFiles
	}

	for _, f := range files {
		if _, err := s.client.UploadPhoto(ctx, eventID, f.Name, f.Content); err != nil {
			return fmt.Errorf("upload of %s failed: %w", f.Name, err)
		}
	}
	return nil
}

// Delete removes the photo, then re-fetches the event's gallery. This path
// always round-trips; photo ordering is backend-owned.
func (s *service) Delete(ctx context.Context, photoID, eventID int) ([]photo.Photo, error) {
	if err := s.client.DeletePhoto(ctx, photoID); err != nil {
		return nil, err
	}
	return s.client.ListEventPhotos(ctx, eventID)
}
