package service

import "errors"

var (
	// ErrConflict means the email is already registered.
	ErrConflict = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized means the requester does not own the post.
	ErrUnauthorized = errors.New("not the post author")

	// ErrNotFound means no post exists with the given id.
	ErrNotFound = errors.New("post not found")

	// ErrInvalidInput means a required field was empty after trimming.
	ErrInvalidInput = errors.New("missing required field")
)
