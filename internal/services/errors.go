package services

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler layer.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked due to repeated failed logins")
	ErrAccessDenied       = errors.New("access denied")
)
