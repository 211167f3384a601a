package service

import (
	"errors"
)

// Kind classifies a service failure for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

// Error is a service-level failure with a user-facing message. Handlers map
// the Kind to a status via httpx and surface Message verbatim.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func validationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func authenticationError(message string) error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func authorizationError(message string) error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func notFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflictError(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func internalError(cause error) error {
	return &Error{Kind: KindInternal, Message: "Internal server error", cause: cause}
}

// KindOf extracts the Kind from err, defaulting to KindInternal so that
// unclassified storage failures never leak as anything but a 500.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
