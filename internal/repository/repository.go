package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
// Callers match it with errors.Is to map lookups to 404 responses.
var ErrNotFound = errors.New("not found")
