package apperrors

import (
	"errors"
	"fmt"
)

// Common error categories. Specific errors wrap one of these so the
// central handler can map them to a status code with errors.Is.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
)

// User errors
var (
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrResourceNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrInvalidRole        = fmt.Errorf("%w: invalid role", ErrValidationFailed)
)

// Event errors
var (
	ErrEventNotFound    = fmt.Errorf("%w: event", ErrResourceNotFound)
	ErrAlreadyAttending = fmt.Errorf("%w: already registered for this event", ErrConflict)
)

// Community help errors
var (
	ErrHelpRequestNotFound = fmt.Errorf("%w: help request", ErrResourceNotFound)
	ErrNotRequestCreator   = fmt.Errorf("%w: only the creator can update the status", ErrPermissionDenied)
)

// Team errors
var (
	ErrTeamNotFound       = fmt.Errorf("%w: team", ErrResourceNotFound)
	ErrTeamPrivate        = fmt.Errorf("%w: private team requires an invitation", ErrPermissionDenied)
	ErrAlreadyTeamMember  = fmt.Errorf("%w: already a member of this team", ErrConflict)
	ErrInvitationNotFound = fmt.Errorf("%w: invitation", ErrResourceNotFound)
	ErrInvitationPending  = fmt.Errorf("%w: a pending invitation already exists", ErrConflict)
	ErrNotTeamAdmin       = fmt.Errorf("%w: only team admins and moderators can send invitations", ErrPermissionDenied)
)

// CustomError carries a category error plus a human-readable message.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a not-found error with a message.
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error with a message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewBadRequestError creates a bad-request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
