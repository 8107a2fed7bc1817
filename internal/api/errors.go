package api

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching against the typed errors below
var (
	ErrAuthentication = errors.New("login failed")
	ErrFetch          = errors.New("failed to fetch")
	ErrShape          = errors.New("invalid response")
	ErrUpdate         = errors.New("failed to update task")
	ErrCreate         = errors.New("failed to create task")
)

// AuthenticationError is returned when the server rejects the login
type AuthenticationError struct {
	StatusCode int
	StatusText string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("login failed: %s", e.StatusText)
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// FetchError is returned when a required read gets a non-2xx response
type FetchError struct {
	Resource   string
	StatusCode int
	StatusText string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.Resource, e.StatusText)
}

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ShapeError is returned when a response parses but matches no known envelope
type ShapeError struct {
	Resource string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid %s response", e.Resource)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// UpdateError is returned when the server rejects a task update
type UpdateError struct {
	TaskID     int64
	StatusCode int
	StatusText string
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to update task #%d: %s", e.TaskID, e.StatusText)
}

func (e *UpdateError) Is(target error) bool { return target == ErrUpdate }

// CreateError is returned when the server rejects a new task
type CreateError struct {
	StatusCode int
	StatusText string
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create task: %s", e.StatusText)
}

func (e *CreateError) Is(target error) bool { return target == ErrCreate }
