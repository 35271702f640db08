package photo

// Photo is a gallery image belonging to exactly one event. The file itself
// lives on the backend's image host; the panel only handles the URL.
type Photo struct {
	ID      int    `json:"id"`
	FileURL string `json:"file_url"`
}
