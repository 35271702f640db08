package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	eventService "galleryadmin/internal/application/event"
	"galleryadmin/internal/domain/event"
)

type EventHandler struct {
	service       eventService.Service
	maxUploadSize int64
}

// NewEventHandler creates a new event handler
func NewEventHandler(service eventService.Service, maxUploadSize int64) *EventHandler {
	return &EventHandler{service: service, maxUploadSize: maxUploadSize}
}

type eventsPage struct {
	Active string
	Events []event.Event
	Error  string
}

type eventFormPage struct {
	Active string
	Form   event.Form
	Error  string
}

// List fetches the events from the backend and renders the card grid. A
// fetch failure still renders the page, with whatever the cache holds and
// an error banner.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := eventsPage{Active: "events"}
	if err := h.service.Refresh(r.Context()); err != nil {
		log.Printf("Error fetching events: %v", err)
		page.Error = "Failed to fetch events"
	}
	page.Events = h.service.Events()
	Render(w, http.StatusOK, "events", page)
}

// New renders an empty creation form.
func (h *EventHandler) New(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.renderForm(w, event.Form{}, "")
}

// Save handles both create and update submits, keyed on the hidden id
// field. A newly chosen cover file is staged first so that a rejected
// submit re-renders the form with the file still attached.
func (h *EventHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.renderForm(w, event.Form{}, "Failed to read the submitted form")
		return
	}

	form := event.Form{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Date:          r.FormValue("date"),
		Location:      r.FormValue("location"),
		CoverImageURL: r.FormValue("cover_image_url"),
		StagedCoverID: r.FormValue("staged_cover_id"),
	}
	if id, err := strconv.Atoi(r.FormValue("id")); err == nil {
		form.ID = id
	}

	if file, header, err := r.FormFile("cover_image"); err == nil {
		staged, serr := h.service.StageCover(header.Filename, file)
		file.Close()
		if serr != nil {
			h.renderForm(w, form, fmt.Sprintf("Failed to stage cover image: %v", serr))
			return
		}
		// The freshly chosen file supersedes both a file staged by an
		// earlier failed submit and the stored cover URL.
		if form.StagedCoverID != "" {
			h.service.DiscardCover(form.StagedCoverID)
		}
		form.StagedCoverID = staged.ID
	}

	if err := h.service.Save(r.Context(), form); err != nil {
		verb := "create"
		if form.ID != 0 {
			verb = "update"
		}
		h.renderForm(w, form, fmt.Sprintf("Failed to %s event: %v", verb, err))
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// EventByID dispatches /admin/events/{id}/edit and /admin/events/{id}/delete.
func (h *EventHandler) EventByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/events/")
	idStr, action, _ := strings.Cut(rest, "/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "edit":
		h.edit(w, r, id)
	case "delete":
		h.delete(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventHandler) edit(w http.ResponseWriter, r *http.Request, id int) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	form, err := h.formByID(r, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.renderForm(w, form, "")
}

func (h *EventHandler) delete(w http.ResponseWriter, r *http.Request, id int) {
	switch r.Method {
	case http.MethodGet:
		form, err := h.formByID(r, id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		Render(w, http.StatusOK, "event_delete", eventFormPage{Active: "events", Form: form})
	case http.MethodPost:
		page := eventsPage{Active: "events"}
		if err := h.service.Delete(r.Context(), id); err != nil {
			log.Printf("Error deleting event %d: %v", id, err)
			page.Error = err.Error()
		}
		// The post-delete list comes from the locally reconciled cache.
		page.Events = h.service.Events()
		Render(w, http.StatusOK, "events", page)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Preview serves the thumbnail of a staged cover file.
func (h *EventHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := filepath.Base(strings.TrimPrefix(r.URL.Path, "/admin/previews/"))
	path, ok := h.service.PreviewPath(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// formByID resolves an event from the cache, warming it once for direct
// navigation to an edit or delete URL before the list page was visited.
func (h *EventHandler) formByID(r *http.Request, id int) (event.Form, error) {
	form, err := h.service.FormFor(id)
	if errors.Is(err, event.ErrNotFound) {
		if rerr := h.service.Refresh(r.Context()); rerr == nil {
			form, err = h.service.FormFor(id)
		}
	}
	return form, err
}

func (h *EventHandler) renderForm(w http.ResponseWriter, form event.Form, errMsg string) {
	form.PreviewURL = h.previewURL(form)
	Render(w, http.StatusOK, "event_form", eventFormPage{Active: "events", Form: form, Error: errMsg})
}

// previewURL picks what the form's cover preview shows: the staged file's
// thumbnail when one is held, otherwise the stored cover URL.
func (h *EventHandler) previewURL(form event.Form) string {
	if form.StagedCoverID != "" {
		if _, ok := h.service.PreviewPath(form.StagedCoverID); ok {
			return "/admin/previews/" + form.StagedCoverID
		}
		return ""
	}
	return form.CoverImageURL
}
