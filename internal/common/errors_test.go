package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr struct {
	msg  string
	code int
}

func (e statusErr) Error() string         { return fmt.Sprintf("status %d", e.code) }
func (e statusErr) HTTPStatus() int       { return e.code }
func (e statusErr) InlineMessage() string { return e.msg }

type fieldErr struct{ msg string }

func (e fieldErr) Error() string         { return "invalid: " + e.msg }
func (e fieldErr) InlineMessage() string { return e.msg }

func TestDescribe(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		fallback string
		want     string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: fieldErr{msg: "Name is required."}, want: "Name is required."},
		{name: "backend message", err: statusErr{code: 409, msg: "Email already registered"}, fallback: "Could not register.", want: "Email already registered"},
		{name: "backend without message", err: statusErr{code: 400}, fallback: "Could not register.", want: "Could not register."},
		{name: "no fallback", err: statusErr{code: 404}, want: MsgRequestDenied},
		{name: "wrapped client error", err: fmt.Errorf("create: %w", statusErr{code: 401, msg: "bad credentials"}), want: "bad credentials"},
		{name: "server error", err: statusErr{code: 500, msg: "NullPointerException"}, fallback: "x", want: MsgConnection},
		{name: "transport", err: errors.New("dial tcp: connection refused"), want: MsgConnection},
		{name: "canceled", err: context.Canceled, want: MsgConnection},
		{name: "no session", err: ErrNotAuthenticated, want: MsgSessionMissing},
		{name: "user error", err: NewUserError("Pick a category.", errors.New("missing id")), want: "Pick a category."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err, tt.fallback))
		})
	}
}

func TestUserError(t *testing.T) {
	inner := errors.New("boom")
	err := NewUserError("Something failed", inner)

	assert.Equal(t, "Something failed: boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "only message", NewUserError("only message", nil).Error())
}
