package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	photoService "galleryadmin/internal/application/photo"
	"galleryadmin/internal/domain/event"
	"galleryadmin/internal/domain/photo"
)

type PhotoHandler struct {
	service       photoService.Service
	maxUploadSize int64
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(service photoService.Service, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{service: service, maxUploadSize: maxUploadSize}
}

type galleryPage struct {
	Active     string
	Events     []event.Event
	SelectedID int
	Photos     []photo.Photo
	Error      string
	Message    string
}

// Gallery renders the photo manager. Without a selected event only the
// selector shows; with one, its photos and the upload form.
func (h *PhotoHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eventID, _ := strconv.Atoi(r.URL.Query().Get("event"))
	Render(w, http.StatusOK, "photos", h.loadGallery(r.Context(), eventID))
}

// Upload forwards the chosen files to the backend one at a time and
// re-renders the gallery. A mid-batch failure reports which file stopped
// it; files before that one have already landed and show in the grid.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		page := galleryPage{Active: "photos", Error: "Failed to read the upload form"}
		Render(w, http.StatusBadRequest, "photos", page)
		return
	}
	eventID, _ := strconv.Atoi(r.FormValue("event_id"))

	var uploads []photoService.Upload
	for _, fh := range r.MultipartForm.File["photos"] {
		f, err := fh.Open()
		if err != nil {
			page := h.loadGallery(r.Context(), eventID)
			page.Error = fmt.Sprintf("Failed to read %s: %v", fh.Filename, err)
			Render(w, http.StatusOK, "photos", page)
			return
		}
		defer f.Close()
		uploads = append(uploads, photoService.Upload{Name: fh.Filename, Content: f})
	}

	uploadErr := h.service.Upload(r.Context(), eventID, uploads)
	page := h.loadGallery(r.Context(), eventID)
	if uploadErr != nil {
		page.Error = fmt.Sprintf("Failed to upload photos: %v", uploadErr)
	} else if page.Error == "" {
		page.Message = fmt.Sprintf("%d photo(s) uploaded", len(uploads))
	}
	Render(w, http.StatusOK, "photos", page)
}

// PhotoByID dispatches /admin/photos/{id}/delete.
func (h *PhotoHandler) PhotoByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/photos/")
	idStr, action, _ := strings.Cut(rest, "/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 || action != "delete" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	eventID, _ := strconv.Atoi(r.PostFormValue("event_id"))

	photos, err := h.service.Delete(r.Context(), id, eventID)
	if err != nil {
		page := h.loadGallery(r.Context(), eventID)
		page.Error = fmt.Sprintf("Failed to delete photo: %v", err)
		Render(w, http.StatusOK, "photos", page)
		return
	}

	// The delete already re-fetched the gallery; only the selector list
	// still needs loading.
	page := galleryPage{Active: "photos", SelectedID: eventID, Photos: photos, Message: "Photo deleted"}
	events, eerr := h.service.EventOptions(r.Context())
	if eerr != nil {
		log.Printf("Error fetching events: %v", eerr)
		page.Error = "Failed to fetch events"
	}
	page.Events = events
	Render(w, http.StatusOK, "photos", page)
}

func (h *PhotoHandler) loadGallery(ctx context.Context, eventID int) galleryPage {
	page := galleryPage{Active: "photos", SelectedID: eventID}
	events, err := h.service.EventOptions(ctx)
	if err != nil {
		log.Printf("Error fetching events: %v", err)
		page.Error = "Failed to fetch events"
		return page
	}
	page.Events = events

	if eventID != 0 {
		photos, err := h.service.Photos(ctx, eventID)
		if err != nil {
			page.Error = fmt.Sprintf("Failed to fetch photos: %v", err)
			return page
		}
		page.Photos = photos
	}
	return page
}
