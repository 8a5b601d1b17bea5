package repository

import "errors"

// Sentinel errors returned (wrapped) by the repository layer. Handlers map
// them to HTTP statuses: ErrNotFound -> 404, ErrDuplicate and ErrConflict ->
// 409, ErrInvalid -> 422.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrConflict  = errors.New("conflict")
	ErrInvalid   = errors.New("invalid")
)
