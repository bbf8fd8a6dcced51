package apperrors

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrAlreadyActive     = errors.New("active session already exists")
	ErrNoActiveSession   = errors.New("no active session")
	ErrFormat            = errors.New("invalid format")
	ErrNotFound          = errors.New("not found")
)
