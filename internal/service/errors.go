package service

import "errors"

var (
	// ErrValidation marks malformed or missing input, surfaced before any
	// write is attempted.
	ErrValidation = errors.New("invalid task input")

	// ErrNotFound means a single-record operation named an id that does not
	// exist for the caller. Series-wide operations never return it; they
	// report zero affected rows instead.
	ErrNotFound = errors.New("task not found")
)
