package expenserepo

import "errors"

var (
	ErrNotFound      = errors.New("expense not found")
	ErrAlreadyExists = errors.New("expense already exists")
)
