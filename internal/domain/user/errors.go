package user

import "errors"

var ErrNothingToUpdate = errors.New("no account changes submitted")
