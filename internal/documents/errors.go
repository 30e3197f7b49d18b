package documents

import "errors"

var (
	// ErrNotFound indicates no document matched the given key.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateID indicates an insert with an id already present.
	ErrDuplicateID = errors.New("document id already exists")
)
