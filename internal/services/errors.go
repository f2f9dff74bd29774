package services

import "errors"

// Handlers map these to HTTP status codes; wrap them with detail via %w.
var (
	ErrInvalidID  = errors.New("invalid id")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
