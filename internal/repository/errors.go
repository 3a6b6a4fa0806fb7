package repository

import "errors"

var (
	// ErrNotFound indicates the query returned no row. It is never used for
	// storage failures, which propagate as-is.
	ErrNotFound = errors.New("repository: not found")
)
