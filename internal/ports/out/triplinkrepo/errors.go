package triplinkrepo

import "errors"

var (
	ErrNotFound      = errors.New("trip participant not found")
	ErrAlreadyExists = errors.New("trip participant already exists")
)
