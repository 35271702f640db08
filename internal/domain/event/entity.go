package event

import "galleryadmin/internal/domain/photo"

// Event as the backend returns it. Date is an ISO-8601 date-time string;
// the panel displays it as-is and never parses it.
type Event struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Date          string        `json:"date,omitempty"`
	Location      string        `json:"location,omitempty"`
	CoverImageURL string        `json:"cover_image_url,omitempty"`
	VideoURL      string        `json:"video_url,omitempty"`
	Photos        []photo.Photo `json:"photos"`
}

// Payload is the JSON part of an event create/update submission. The cover
// URL is omitted whenever a new file accompanies the request: exactly one of
// {file part, cover_image_url} is authoritative.
type Payload struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Date          string `json:"date,omitempty"`
	Location      string `json:"location,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
}

// Form is the transient staging structure behind the create/edit page. It
// exists only while the form is open and is discarded on a successful
// submit. ID zero means create.
type Form struct {
	ID            int
	Title         string
	Description   string
	Date          string
	Location      string
	CoverImageURL string // existing cover, kept as fallback
	StagedCoverID string // staged replacement file, if one was chosen
	PreviewURL    string // derived preview of whichever cover applies
}
