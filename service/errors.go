package service

import "errors"

// Error taxonomy shared by the auth and booking services. Handlers translate
// these into HTTP statuses; anything unwrapped falls through to the central
// fiber error handler.
var (
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("not authorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrSoldOut      = errors.New("not enough tickets available")
	ErrUpstream     = errors.New("upstream gateway error")
)
