package photo

import "errors"

var (
	ErrNoEventSelected = errors.New("no event selected")
	ErrNoFiles         = errors.New("no files chosen")
)
