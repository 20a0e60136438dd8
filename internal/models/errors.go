package models

import (
	"errors"
	"fmt"
)

// FieldError carries one validation message for the error data payload.
type FieldError struct {
	Message string `json:"message"`
}

// AppError is the application error type. Status is the HTTP-equivalent code
// the centralized formatter reports; a zero Status formats as 500. Data carries
// the per-field messages for validation failures.
type AppError struct {
	Status  int
	Message string
	Data    []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError aggregates all collected validation messages into a
// single 422 error.
func NewInvalidInputError(fields []FieldError) *AppError {
	return &AppError{
		Status:  422,
		Message: "Invalid input.",
		Data:    fields,
	}
}

// NewUnauthenticatedError reports a missing or unusable identity on an
// operation that requires one.
func NewUnauthenticatedError() *AppError {
	return &AppError{
		Status:  401,
		Message: "Not authenticated!",
	}
}

// NewInvalidCredentialsError reports a failed login without revealing whether
// the user exists.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Status:  401,
		Message: "Email or password is incorrect!",
	}
}

// NewForbiddenError reports an authenticated caller acting on a resource they
// do not own.
func NewForbiddenError() *AppError {
	return &AppError{
		Status:  403,
		Message: "Not authorized!",
	}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Status:  404,
		Message: fmt.Sprintf("No %s found!", resource),
	}
}

// NewUserExistsError reports a duplicate registration. It carries no status
// and is reported through the formatter's 500 default.
func NewUserExistsError() *AppError {
	return &AppError{
		Message: "User exists already!",
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  500,
		Message: "An error occurred",
		Err:     err,
	}
}

// AsAppError unwraps err to an *AppError, or returns nil.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
