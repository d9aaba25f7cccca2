// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Common application errors.
var (
	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Inline messages shown when the backend gives nothing better.
const (
	MsgConnection     = "Connection failed. Please try again."
	MsgInvalidLogin   = "Incorrect email or password."
	MsgRequestDenied  = "The request could not be completed."
	MsgSessionMissing = "You must log in to continue."
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Inline is implemented by errors that carry a message fit for display
// next to a form: validation failures and backend rejections.
type Inline interface {
	error
	InlineMessage() string
}

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	error
	HTTPStatus() int
}

// ClientStatus reports whether code is one of the client errors whose
// backend message is shown to the user.
func ClientStatus(code int) bool {
	switch code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusConflict:
		return true
	}
	return false
}

// Describe maps err onto the message shown inline. Validation failures show
// their own text. Client errors (400/401/404/409) show the backend message,
// or fallback when the backend sent none. Anything else is reported as a
// connection failure.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue.UserMessage
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		if !ClientStatus(sc.HTTPStatus()) {
			return MsgConnection
		}
		var in Inline
		if errors.As(err, &in) && in.InlineMessage() != "" {
			return in.InlineMessage()
		}
		if fallback == "" {
			return MsgRequestDenied
		}
		return fallback
	}

	var in Inline
	if errors.As(err, &in) && in.InlineMessage() != "" {
		return in.InlineMessage()
	}

	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrSessionExpired) {
		return MsgSessionMissing
	}

	return MsgConnection
}
