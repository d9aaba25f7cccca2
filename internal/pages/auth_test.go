package pages

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("stores token and user", func(t *testing.T) {
		fake := newFakeAPI()
		fake.loginResp = &api.LoginResponse{Token: "tok", User: testUser}
		deps, store := anonymous(fake)

		user, err := NewAuth(deps).Login(ctx, validate.LoginForm{Email: " ana@example.com ", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, testUser, *user)

		tok, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok", tok)
		stored, err := store.User(ctx)
		require.NoError(t, err)
		assert.Equal(t, testUser, *stored)
	})

	t.Run("empty fields never reach the backend", func(t *testing.T) {
		fake := newFakeAPI()
		deps, _ := anonymous(fake)
		auth := NewAuth(deps)

		_, err := auth.Login(ctx, validate.LoginForm{Email: "ana@example.com"})
		require.ErrorIs(t, err, validate.ErrValidation)
		assert.Equal(t, validate.MsgLoginRequired, auth.FormError())
		assert.Empty(t, fake.Calls())
	})

	t.Run("rejected credentials", func(t *testing.T) {
		fake := newFakeAPI()
		fake.errLogin = &api.Error{StatusCode: http.StatusUnauthorized}
		deps, store := anonymous(fake)
		auth := NewAuth(deps)

		_, err := auth.Login(ctx, validate.LoginForm{Email: "ana@example.com", Password: "nope"})
		require.Error(t, err)
		assert.Equal(t, common.MsgInvalidLogin, auth.FormError())

		tok, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, tok)
	})

	t.Run("backend message wins", func(t *testing.T) {
		fake := newFakeAPI()
		fake.errLogin = &api.Error{StatusCode: http.StatusBadRequest, Message: "Account locked"}
		deps, _ := anonymous(fake)
		auth := NewAuth(deps)

		_, err := auth.Login(ctx, validate.LoginForm{Email: "ana@example.com", Password: "x"})
		require.Error(t, err)
		assert.Equal(t, "Account locked", auth.FormError())
	})

	t.Run("server failure reads as connection failure", func(t *testing.T) {
		fake := newFakeAPI()
		fake.errLogin = &api.Error{StatusCode: http.StatusInternalServerError, Message: "NullPointerException"}
		deps, _ := anonymous(fake)
		auth := NewAuth(deps)

		_, err := auth.Login(ctx, validate.LoginForm{Email: "ana@example.com", Password: "x"})
		require.Error(t, err)
		assert.Equal(t, common.MsgConnection, auth.FormError())
	})
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		form    validate.RegisterForm
		wantMsg string
	}{
		{name: "missing field", form: validate.RegisterForm{Name: "Ana", Email: "ana@example.com", Password: "secret"}, wantMsg: validate.MsgRequiredFields},
		{name: "bad email", form: validate.RegisterForm{Name: "Ana", Email: "ana@example", Password: "secret", PasswordConfirm: "secret"}, wantMsg: validate.MsgInvalidEmail},
		{name: "short password", form: validate.RegisterForm{Name: "Ana", Email: "ana@example.com", Password: "12345", PasswordConfirm: "12345"}, wantMsg: validate.MsgPasswordTooShort},
		{name: "mismatch", form: validate.RegisterForm{Name: "Ana", Email: "ana@example.com", Password: "secret1", PasswordConfirm: "secret2"}, wantMsg: validate.MsgPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAPI()
			deps, _ := anonymous(fake)
			auth := NewAuth(deps)

			_, err := auth.Register(ctx, tt.form)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, auth.FormError())
			assert.Empty(t, fake.Calls())
		})
	}

	t.Run("created", func(t *testing.T) {
		fake := newFakeAPI()
		deps, store := anonymous(fake)
		auth := NewAuth(deps)

		user, err := auth.Register(ctx, validate.RegisterForm{Name: "Ana", Email: "ana@example.com", Password: "secret", PasswordConfirm: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.Name)
		assert.Equal(t, MsgRegistered, auth.Notice())

		tok, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, tok, "registering does not log in")
	})

	t.Run("duplicate email", func(t *testing.T) {
		fake := newFakeAPI()
		fake.errRegister = &api.Error{StatusCode: http.StatusConflict, Message: "Email already registered"}
		deps, _ := anonymous(fake)
		auth := NewAuth(deps)

		_, err := auth.Register(ctx, validate.RegisterForm{Name: "Ana", Email: "ana@example.com", Password: "secret", PasswordConfirm: "secret"})
		require.Error(t, err)
		assert.Equal(t, "Email already registered", auth.FormError())
	})
}

func TestAuth_Logout(t *testing.T) {
	ctx := context.Background()
	deps, store := loggedIn(t, newFakeAPI(), testUser)

	require.NoError(t, NewAuth(deps).Logout(ctx))
	user, err := store.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}
