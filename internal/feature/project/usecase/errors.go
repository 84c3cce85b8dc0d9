package usecase

import "errors"

var (
	// ErrProjectNotFound is returned when a project does not exist or belongs to another user.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidInput is returned when a request is missing required fields.
	ErrInvalidInput = errors.New("invalid input")
)
