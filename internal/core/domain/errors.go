package domain

import "errors"

// Sentinel errors returned by repositories and services. Handlers map these
// to the user-facing envelope; anything else is an internal error and is
// never shown to the client verbatim.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrMarkerNotFound = errors.New("marker not found")
	ErrEmailTaken     = errors.New("email already taken")
	ErrNameTaken      = errors.New("name already taken")
)
