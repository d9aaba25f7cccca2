package pages

import (
	"context"
	"strings"

	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/validate"
)

// Confirmations shown on the account page.
const (
	MsgProfileUpdated  = "Details updated."
	MsgPasswordUpdated = "Password updated."
)

// Account backs the profile page.
type Account struct {
	page
	user   model.User
	reauth bool
}

// NewAccount creates an Account controller.
func NewAccount(deps Deps) *Account {
	a := &Account{}
	a.init(deps)
	return a
}

// Load fetches the full profile and refreshes the session's copy of it.
func (a *Account) Load(ctx context.Context) error {
	stored, err := a.sessionUser(ctx)
	if err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.failLoad(err, MsgLoadProfile)
		return err
	}

	a.beginLoad()
	ctx, done := a.life.Bind(ctx)
	defer done()

	fetched, err := a.deps.API.GetUser(ctx, stored.ID)
	if a.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.failLoad(err, MsgLoadProfile)
		return err
	}

	user := merge(*stored, *fetched)
	if err := a.deps.Session.SaveUser(ctx, user); err != nil {
		a.deps.logger().Warn("Failed to refresh stored user", "error", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
	a.status = Status{Phase: PhaseReady}
	return nil
}

// Profile returns the loaded profile.
func (a *Account) Profile() model.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// ReauthRequired reports whether the email changed and the user must log in
// again.
func (a *Account) ReauthRequired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reauth
}

// UpdateProfile saves name and email and writes the result to the session.
// It reports whether the email changed.
func (a *Account) UpdateProfile(ctx context.Context, form validate.ProfileForm) (bool, error) {
	a.beginSubmit()
	if err := form.Validate(); err != nil {
		return false, a.reject(err, "")
	}

	a.mu.Lock()
	current := a.user
	a.mu.Unlock()
	if current.ID == 0 {
		stored, err := a.sessionUser(ctx)
		if err != nil {
			return false, a.reject(err, "")
		}
		current = *stored
	}

	ctx, done := a.life.Bind(ctx)
	defer done()

	updated, err := a.deps.API.UpdateUser(ctx, current.ID, api.UpdateUserRequest{
		Name:  strings.TrimSpace(form.Name),
		Email: strings.TrimSpace(form.Email),
	})
	if a.life.Closed() {
		return false, ErrClosed
	}
	if err != nil {
		return false, a.reject(err, MsgSaveProfile)
	}

	user := merge(current, *updated)
	if err := a.deps.Session.SaveUser(ctx, user); err != nil {
		return false, a.reject(err, "")
	}

	changed := !strings.EqualFold(current.Email, user.Email)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
	a.reauth = changed
	if !changed {
		a.notice = MsgProfileUpdated
	}
	return changed, nil
}

// ChangePassword validates and submits a password change.
func (a *Account) ChangePassword(ctx context.Context, form validate.PasswordForm) error {
	a.beginSubmit()
	if err := form.Validate(); err != nil {
		return a.reject(err, "")
	}

	a.mu.Lock()
	id := a.user.ID
	a.mu.Unlock()
	if id == 0 {
		stored, err := a.sessionUser(ctx)
		if err != nil {
			return a.reject(err, "")
		}
		id = stored.ID
	}

	ctx, done := a.life.Bind(ctx)
	defer done()

	err := a.deps.API.ChangePassword(ctx, id, api.ChangePasswordRequest{
		CurrentPassword: form.Current,
		NewPassword:     form.New,
	})
	if a.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		return a.reject(err, MsgChangePassword)
	}

	a.mu.Lock()
	a.notice = MsgPasswordUpdated
	a.mu.Unlock()
	return nil
}

// Logout clears the session.
func (a *Account) Logout(ctx context.Context) error {
	return a.deps.Session.Clear(ctx)
}

// merge overlays the fields the backend returned on the stored user so that
// plan and role survive responses that omit them.
func merge(base, update model.User) model.User {
	out := base
	if update.ID != 0 {
		out.ID = update.ID
	}
	if update.Name != "" {
		out.Name = update.Name
	}
	if update.Email != "" {
		out.Email = update.Email
	}
	if update.Plan != "" {
		out.Plan = update.Plan
	}
	if update.Role != "" {
		out.Role = update.Role
	}
	return out
}
