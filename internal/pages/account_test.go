package pages

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_LoadRefreshesSession(t *testing.T) {
	ctx := context.Background()
	fake := newFakeAPI()
	fake.users[7] = model.User{ID: 7, Name: "Ana María", Email: "ana@example.com"}
	deps, store := loggedIn(t, fake, testUser)

	a := NewAccount(deps)
	require.NoError(t, a.Load(ctx))

	want := model.User{ID: 7, Name: "Ana María", Email: "ana@example.com", Plan: model.PlanFree, Role: model.RoleUser}
	assert.Equal(t, want, a.Profile())
	stored, err := store.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *stored, "plan and role survive a response without them")
}

func TestAccount_LoadFailure(t *testing.T) {
	fake := newFakeAPI()
	fake.errGetUser = errors.New("offline")
	deps, _ := loggedIn(t, fake, testUser)

	a := NewAccount(deps)
	require.Error(t, a.Load(context.Background()))
	assert.Equal(t, PhaseFailed, a.Status().Phase)
}

func TestAccount_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		form       validate.ProfileForm
		wantChange bool
	}{
		{name: "same email", form: validate.ProfileForm{Name: "Ana M", Email: "ana@example.com"}},
		{name: "new email", form: validate.ProfileForm{Name: "Ana", Email: "ana.m@example.com"}, wantChange: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAPI()
			fake.users[7] = testUser
			deps, store := loggedIn(t, fake, testUser)
			a := NewAccount(deps)
			require.NoError(t, a.Load(ctx))

			changed, err := a.UpdateProfile(ctx, tt.form)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChange, changed)
			assert.Equal(t, tt.wantChange, a.ReauthRequired())

			stored, err := store.User(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.form.Name, stored.Name)
			assert.Equal(t, tt.form.Email, stored.Email)
			assert.Equal(t, model.PlanFree, stored.Plan)
			if !tt.wantChange {
				assert.Equal(t, MsgProfileUpdated, a.Notice())
			}
		})
	}

	t.Run("invalid email", func(t *testing.T) {
		fake := newFakeAPI()
		deps, _ := loggedIn(t, fake, testUser)
		a := NewAccount(deps)

		_, err := a.UpdateProfile(ctx, validate.ProfileForm{Name: "Ana", Email: "not-an-email"})
		require.ErrorIs(t, err, validate.ErrValidation)
		assert.Equal(t, validate.MsgInvalidEmail, a.FormError())
		assert.Empty(t, fake.Calls())
	})

	t.Run("backend rejection", func(t *testing.T) {
		fake := newFakeAPI()
		fake.errUpdateUser = &api.Error{StatusCode: http.StatusConflict}
		deps, _ := loggedIn(t, fake, testUser)
		a := NewAccount(deps)

		_, err := a.UpdateProfile(ctx, validate.ProfileForm{Name: "Ana", Email: "ana@example.com"})
		require.Error(t, err)
		assert.Equal(t, MsgSaveProfile, a.FormError())
	})
}

func TestAccount_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatch", func(t *testing.T) {
		fake := newFakeAPI()
		deps, _ := loggedIn(t, fake, testUser)
		a := NewAccount(deps)

		require.Error(t, a.ChangePassword(ctx, validate.PasswordForm{Current: "old", New: "secret1", Confirm: "secret2"}))
		assert.Equal(t, validate.MsgPasswordMismatch, a.FormError())
		assert.Empty(t, fake.Calls())
	})

	t.Run("wrong current password", func(t *testing.T) {
		fake := newFakeAPI()
		fake.errPassword = &api.Error{StatusCode: http.StatusBadRequest}
		deps, _ := loggedIn(t, fake, testUser)
		a := NewAccount(deps)

		require.Error(t, a.ChangePassword(ctx, validate.PasswordForm{Current: "old", New: "secret1", Confirm: "secret1"}))
		assert.Equal(t, MsgChangePassword, a.FormError())
	})

	t.Run("changed", func(t *testing.T) {
		fake := newFakeAPI()
		deps, _ := loggedIn(t, fake, testUser)
		a := NewAccount(deps)

		require.NoError(t, a.ChangePassword(ctx, validate.PasswordForm{Current: "old", New: "secret1", Confirm: "secret1"}))
		assert.Equal(t, []api.ChangePasswordRequest{{CurrentPassword: "old", NewPassword: "secret1"}}, fake.passwordRequests)
		assert.Equal(t, MsgPasswordUpdated, a.Notice())
	})
}
