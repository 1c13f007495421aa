package domain

import "errors"

var (
	// ErrUserExists signals a duplicate username or email on registration.
	ErrUserExists = errors.New("username or email already exists")
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// logins; the message deliberately does not say which.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrPasswordMismatch signals a sign-up where the confirmation did not
	// match the password.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrUserNotFound signals a lookup or ledger write against a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidImage signals an upload that could not be decoded as an image.
	ErrInvalidImage = errors.New("file is not a valid image")
	// ErrModelUnavailable signals that the inference model failed to load at
	// startup; classification is degraded for the rest of the process life.
	ErrModelUnavailable = errors.New("classification model is not available")
)
