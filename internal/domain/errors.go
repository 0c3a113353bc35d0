package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is implemented by errors that map onto an HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)

type NotFoundError struct {
	Doctype string
	Name    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Doctype, e.Name)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound builds a NotFoundError for the given document.
func NewNotFound(doctype, name string) error {
	return &NotFoundError{Doctype: doctype, Name: name}
}

type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) StatusCode() int { return http.StatusUnprocessableEntity }

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

// NewValidation wraps a user-facing validation message.
func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// wrapValidation turns an ozzo validation result into a ValidationError.
func wrapValidation(doctype string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Message: fmt.Sprintf("invalid %s: %v", doctype, err), Cause: err}
}

type ConflictError struct {
	Doctype string
	Name    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Doctype, e.Name)
}

func (e *ConflictError) StatusCode() int { return http.StatusConflict }

func (e *ConflictError) Unwrap() error { return ErrConflict }
