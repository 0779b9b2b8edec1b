package services

import "errors"

// Outcome classes shared by all services. Handlers translate these into
// HTTP statuses; any other error is a storage failure and surfaces as a
// generic 500 with the cause logged.
var (
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
