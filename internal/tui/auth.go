package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
)

// authScreen serves both /login and /register.
type authScreen struct {
	env      *env
	ctl      *pages.Auth
	form     *form
	register bool
	busy     bool
}

func newAuthScreen(e *env, register bool) *authScreen {
	s := &authScreen{env: e, ctl: pages.NewAuth(e.deps), register: register}
	if register {
		s.form = newForm("Create account", "Name", "Email", "Password", "Confirm").password(2).password(3)
	} else {
		s.form = newForm("Log in", "Email", "Password").password(1)
	}
	return s
}

func (s *authScreen) init() tea.Cmd   { return nil }
func (s *authScreen) capturing() bool { return true }
func (s *authScreen) close()          { s.ctl.Close() }

func (s *authScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case resultMsg:
		s.busy = false
		if msg.err != nil {
			return nil
		}
		if s.register {
			return navigate(string(pages.RouteLogin), pages.MsgRegistered)
		}
		return navigate(string(pages.RouteDashboard), "")

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.env.keys.Cancel):
			return navigate(string(pages.RouteLanding), "")
		case msg.String() == "ctrl+r":
			if s.register {
				return navigate(string(pages.RouteLogin), "")
			}
			return navigate(string(pages.RouteRegister), "")
		case key.Matches(msg, s.env.keys.Submit):
			if s.busy {
				return nil
			}
			s.busy = true
			return s.submit()
		}
		_, cmd := s.form.update(msg)
		return cmd
	}
	return nil
}

func (s *authScreen) submit() tea.Cmd {
	ctx, f := s.env.ctx, s.form
	if s.register {
		form := validate.RegisterForm{
			Name:            f.value(0),
			Email:           f.value(1),
			Password:        f.fields[2].input.Value(),
			PasswordConfirm: f.fields[3].input.Value(),
		}
		return run(s, "register", func() error {
			_, err := s.ctl.Register(ctx, form)
			return err
		})
	}
	form := validate.LoginForm{Email: f.value(0), Password: f.fields[1].input.Value()}
	return run(s, "login", func() error {
		_, err := s.ctl.Login(ctx, form)
		return err
	})
}

func (s *authScreen) view(f frame) string {
	out := s.form.view(f.theme)
	if s.busy {
		out += "\n" + f.spinner + " Sending…"
	}
	if msg := messages(f, s.ctl.FormError(), s.ctl.Notice()); msg != "" {
		out += "\n" + msg
	}
	other := "Ctrl+R create an account"
	if s.register {
		other = "Ctrl+R back to log in"
	}
	return out + "\n" + f.theme.Subtitle.Render(other)
}
