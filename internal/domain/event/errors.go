package event

import "errors"

var (
	ErrTitleRequired = errors.New("title is required")
	ErrNotFound      = errors.New("event not found")
)
