package api

import "errors"

// ErrNotFound is returned when a successful response lacks the expected
// object, e.g. me is null for an anonymous caller.
var ErrNotFound = errors.New("not found")
