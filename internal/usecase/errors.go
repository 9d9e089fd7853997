package usecase

import "errors"

// Sentinel errors for the registration/verification/login workflow. Handlers
// translate these to HTTP statuses with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrAccountExists     = errors.New("account already exists")
	ErrIncorrectCode     = errors.New("incorrect code")
	ErrSessionExpired    = errors.New("session expired, register again")
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrNotActivated      = errors.New("account not activated")
	ErrInvalidToken      = errors.New("invalid token format")
	ErrInvalidID         = errors.New("invalid user ID")
)
