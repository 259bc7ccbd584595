package domain

import "errors"

// ErrNotFound is reported when the API has no such resource
var ErrNotFound = errors.New("resource not found")
