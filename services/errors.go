package services

import "errors"

// Sentinel errors handlers map onto HTTP status codes. Services wrap
// them with fmt.Errorf("%w: ...") so the message reaches the client
// while errors.Is still matches.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
