package pages

import (
	"context"
	"strings"

	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/validate"
)

// MsgRegistered confirms a new account.
const MsgRegistered = "Account created. You can log in now."

// Auth backs the login and register pages.
type Auth struct {
	page
}

// NewAuth creates an Auth controller.
func NewAuth(deps Deps) *Auth {
	a := &Auth{}
	a.init(deps)
	return a
}

// Login authenticates and stores the token and user in the session.
func (a *Auth) Login(ctx context.Context, form validate.LoginForm) (*model.User, error) {
	a.beginSubmit()
	if err := form.Validate(); err != nil {
		return nil, a.reject(err, "")
	}

	ctx, done := a.life.Bind(ctx)
	defer done()

	resp, err := a.deps.API.Login(ctx, api.LoginRequest{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	})
	if a.life.Closed() {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, a.reject(err, common.MsgInvalidLogin)
	}

	if err := a.deps.Session.Save(ctx, resp.Token, resp.User); err != nil {
		return nil, a.reject(err, "")
	}
	common.LogInfo(ctx, "User logged in", common.Fields{"user_id": resp.User.ID})
	return &resp.User, nil
}

// Register creates an account. The user still has to log in afterwards.
func (a *Auth) Register(ctx context.Context, form validate.RegisterForm) (*model.User, error) {
	a.beginSubmit()
	if err := form.Validate(); err != nil {
		return nil, a.reject(err, "")
	}

	ctx, done := a.life.Bind(ctx)
	defer done()

	user, err := a.deps.API.Register(ctx, api.RegisterRequest{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	})
	if a.life.Closed() {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, a.reject(err, MsgRegister)
	}

	a.mu.Lock()
	a.notice = MsgRegistered
	a.mu.Unlock()
	return user, nil
}

// Logout clears the session.
func (a *Auth) Logout(ctx context.Context) error {
	return a.deps.Session.Clear(ctx)
}
