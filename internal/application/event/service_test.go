package event

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"galleryadmin/internal/domain/event"
	"galleryadmin/internal/infrastructure/staging"
)

type fakeClient struct {
	events    []event.Event
	listCalls int

	saveErr     error
	lastPayload event.Payload
	lastCover   bool
	deleted     []int
	deleteErr   error
}

func (f *fakeClient) ListEvents(ctx context.Context) ([]event.Event, error) {
	f.listCalls++
	return f.events, nil
}

func (f *fakeClient) CreateEvent(ctx context.Context, payload event.Payload, coverName string, cover io.Reader) (*event.Event, error) {
	return f.submit(payload, cover)
}

func (f *fakeClient) UpdateEvent(ctx context.Context, id int, payload event.Payload, coverName string, cover io.Reader) (*event.Event, error) {
	return f.submit(payload, cover)
}

func (f *fakeClient) submit(payload event.Payload, cover io.Reader) (*event.Event, error) {
	f.lastPayload = payload
	f.lastCover = cover != nil
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &event.Event{ID: 1, Title: payload.Title}, nil
}

func (f *fakeClient) DeleteEvent(ctx context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService(t *testing.T, client *fakeClient) (Service, *staging.Store) {
	t.Helper()
	staged, err := staging.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create staging store: %v", err)
	}
	return NewService(client, staged), staged
}

func TestDeleteFiltersLocally(t *testing.T) {
	client := &fakeClient{events: []event.Event{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}}}
	svc, _ := newTestService(t, client)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if err := svc.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	events := svc.Events()
	if len(events) != 2 || events[0].ID != 1 || events[1].ID != 3 {
		t.Errorf("Expected events [1 3] after delete, got %v", events)
	}
	if client.listCalls != 1 {
		t.Errorf("Delete must reconcile locally; ListEvents calls = %d, want 1", client.listCalls)
	}
}

func TestDeleteErrorKeepsList(t *testing.T) {
	client := &fakeClient{
		events:    []event.Event{{ID: 1, Title: "A"}},
		deleteErr: errors.New("404 Not Found"),
	}
	svc, _ := newTestService(t, client)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if err := svc.Delete(context.Background(), 1); err == nil {
		t.Fatal("Expected delete error")
	}
	if len(svc.Events()) != 1 {
		t.Error("Failed delete must not drop the event locally")
	}
}

func TestSaveRequiresTitle(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{})

	err := svc.Save(context.Background(), event.Form{Title: "   "})
	if !errors.Is(err, event.ErrTitleRequired) {
		t.Fatalf("Expected ErrTitleRequired, got %v", err)
	}
}

func TestSaveStagedCoverTakesPrecedence(t *testing.T) {
	client := &fakeClient{}
	svc, staged := newTestService(t, client)

	f, err := svc.StageCover("cover.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("StageCover() failed: %v", err)
	}

	form := event.Form{
		Title:         "Vernissage",
		CoverImageURL: "https://cdn/old.jpg",
		StagedCoverID: f.ID,
	}
	if err := svc.Save(context.Background(), form); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if !client.lastCover {
		t.Error("Expected the staged file to be sent as the cover part")
	}
	if client.lastPayload.CoverImageURL != "" {
		t.Errorf("Staged file must drop cover_image_url from the payload, got %q", client.lastPayload.CoverImageURL)
	}
	if _, _, err := staged.Open(f.ID); !errors.Is(err, staging.ErrNotStaged) {
		t.Error("Successful save must discard the staged file")
	}
	if client.listCalls != 1 {
		t.Errorf("Successful save must re-fetch the list; ListEvents calls = %d, want 1", client.listCalls)
	}
}

func TestSaveKeepsCoverURLWithoutFile(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	form := event.Form{Title: "Gala", CoverImageURL: "https://cdn/x.jpg"}
	if err := svc.Save(context.Background(), form); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if client.lastCover {
		t.Error("Expected no cover part")
	}
	if client.lastPayload.CoverImageURL != "https://cdn/x.jpg" {
		t.Errorf("Expected cover_image_url kept, got %q", client.lastPayload.CoverImageURL)
	}
}

func TestSaveFailureKeepsStagedCover(t *testing.T) {
	client := &fakeClient{saveErr: errors.New("422 Unprocessable Entity")}
	svc, staged := newTestService(t, client)

	f, err := svc.StageCover("cover.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("StageCover() failed: %v", err)
	}

	form := event.Form{Title: "Vernissage", StagedCoverID: f.ID}
	if err := svc.Save(context.Background(), form); err == nil {
		t.Fatal("Expected save error")
	}

	_, rc, err := staged.Open(f.ID)
	if err != nil {
		t.Fatalf("Staged file must survive a failed save: %v", err)
	}
	rc.Close()
}

func TestFormFor(t *testing.T) {
	client := &fakeClient{events: []event.Event{{
		ID: 5, Title: "Gala", Description: "Annual", Date: "2026-09-01T20:00", Location: "Hall", CoverImageURL: "https://cdn/x.jpg",
	}}}
	svc, _ := newTestService(t, client)

	if _, err := svc.FormFor(5); !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("Cold cache should miss, got %v", err)
	}

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	form, err := svc.FormFor(5)
	if err != nil {
		t.Fatalf("FormFor() failed: %v", err)
	}
	if form.Title != "Gala" || form.CoverImageURL != "https://cdn/x.jpg" || form.StagedCoverID != "" {
		t.Errorf("Unexpected form: %+v", form)
	}
}
