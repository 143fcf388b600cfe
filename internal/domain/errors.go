package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateTelefono = errors.New("telefono already registered")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStoreUnavailable  = errors.New("store not configured")
)
