package repository

import "errors"

// ErrNotFound is returned when a row lookup or targeted delete matches
// nothing. Callers translate it at their own boundary.
var ErrNotFound = errors.New("not found")
