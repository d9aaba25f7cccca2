// Package validate checks form input locally, before anything reaches the
// backend.
package validate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MinPasswordLength is the shortest password accepted on registration and
// password change.
const MinPasswordLength = 6

// Messages shown next to the offending field.
const (
	MsgRequiredFields   = "Complete all fields."
	MsgLoginRequired    = "Enter your email and password."
	MsgInvalidEmail     = "Enter a valid email address."
	MsgPasswordTooShort = "Password must be at least 6 characters."
	MsgPasswordMismatch = "Passwords do not match."
	MsgNameRequired     = "Name is required."
	MsgKindRequired     = "Choose a type."
	MsgCategoryRequired = "Select a category."
	MsgCategoryMismatch = "The selected category does not match the transaction type."
	MsgNoCategories     = "Create a category first to record movements."
	MsgInvalidAmount    = "Enter a valid amount greater than 0."
	MsgDateRequired     = "Select a date."
	MsgInvalidDate      = "Enter the date as YYYY-MM-DD."
)

// ErrValidation is matched by every *Error.
var ErrValidation = errors.New("validation failed")

// Error reports a rejected field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// InlineMessage returns the text displayed next to the form.
func (e *Error) InlineMessage() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) hold for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

func fail(field, msg string) error {
	return &Error{Field: field, Message: msg}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s has the basic shape of an address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Amount parses a positive decimal. A comma is accepted as the decimal
// separator.
func Amount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, fail("amount", MsgInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, fail("amount", MsgInvalidAmount)
	}
	return d, nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
