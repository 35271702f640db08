package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is any non-2xx backend response. The message is derived from the
// HTTP status plus the backend's optional "detail" field; the panel does no
// further classification.
type APIError struct {
	Status     int
	StatusText string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s - %s", e.Status, e.StatusText, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Status, e.StatusText)
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	e := &APIError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}

	// Backend error bodies carry a "detail" field, either a plain string
	// or structured validation output.
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			e.Detail = s
		} else {
			e.Detail = string(payload.Detail)
		}
	}
	return e
}
