package application

import (
	"errors"
	"fmt"
)

// Error taxonomy. Handlers map these with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrUniversityNotFound  = fmt.Errorf("university %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrInvalidRefreshToken = fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	ErrInvalidToken        = fmt.Errorf("invalid access token: %w", ErrUnauthorized)
	ErrEmailTaken          = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrInvalidScore        = fmt.Errorf("score must be between 1 and 5: %w", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("unknown role: %w", ErrValidation)
	ErrEmptyFile           = fmt.Errorf("empty file: %w", ErrValidation)
)
