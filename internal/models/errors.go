package models

import "errors"

// Error taxonomy. Every remote-call failure is wrapped so handlers can map it
// to a short user-facing message without leaking storage details.
var (
	// ErrNotAuthorized means the email is not on the admin allow-list.
	ErrNotAuthorized = errors.New("not authorized as admin")

	// ErrInvalidCredentials means the credential sign-in step failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
)
