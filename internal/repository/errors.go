package repository

import "errors"

var (
	// ErrNotFound is returned when the addressed row or key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
	// ErrUnsupportedDocument is returned by text extractors for file types they cannot read.
	ErrUnsupportedDocument = errors.New("unsupported document type")
)
