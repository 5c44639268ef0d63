package errors

import "errors"

// requested entity is not found.
var ErrMissing = errors.New("missing")

// an entity with the same identity already exists.
var ErrAlreadyExists = errors.New("already exists")
