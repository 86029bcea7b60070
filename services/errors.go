package services

import "errors"

// Sentinel errors returned by the service layer. Controllers translate these
// to HTTP status codes with errors.Is, so wrapped variants still match.
var (
	ErrUserNotFound   = errors.New("user profile not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrThreadNotFound = errors.New("chat thread not found")

	ErrNotAuthorized = errors.New("user is not a participant")
	ErrMatchExists   = errors.New("match already exists for this pair")
	ErrSameUser      = errors.New("cannot match a user with themselves")

	ErrInvalidStatus  = errors.New("invalid match status")
	ErrInvalidKind    = errors.New("invalid message kind")
	ErrThreadInactive = errors.New("chat thread is inactive")
)
