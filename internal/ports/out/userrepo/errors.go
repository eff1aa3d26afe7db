package userrepo

import "errors"

var (
	// ErrNotFound indicates no user exists for the given email.
	ErrNotFound = errors.New("user not found")

	// ErrAlreadyExists indicates a user already exists with the given email.
	ErrAlreadyExists = errors.New("user already exists")
)
