package domain

import "errors"

// Domain errors.
var (
	ErrTodoNotFound     = errors.New("todo not found")
	ErrEmptyText        = errors.New("text cannot be empty")
	ErrInvalidID        = errors.New("invalid todo id")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrNotInitialized   = errors.New("store not initialized")
	ErrConfigExists     = errors.New("config file already exists")
	ErrUnknownStore     = errors.New("unknown store type")
	ErrInvalidResponse  = errors.New("invalid response")
)
