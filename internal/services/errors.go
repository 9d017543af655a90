package services

import "errors"

// Error taxonomy shared by the services; handlers translate these to HTTP
// statuses.
var (
	ErrNotFound           = errors.New("short link not found")
	ErrForbidden          = errors.New("requester does not own this short link")
	ErrValidation         = errors.New("email and password must not be empty")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
