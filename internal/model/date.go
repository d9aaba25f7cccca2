package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of a calendar day.
const DateLayout = "2006-01-02"

// Date is a calendar day as sent by the backend ("YYYY-MM-DD"). It is kept
// as text so that malformed values survive decoding and can be rejected
// where they are used.
type Date string

// NewDate formats t as a Date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local day.
func Today() Date {
	return NewDate(time.Now())
}

// Time parses the date in UTC.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", string(d), err)
	}
	return t, nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return string(d)
}
