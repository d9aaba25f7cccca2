package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
)

const msgEmailChanged = "Your email changed. Log in again with the new address."

type accountScreen struct {
	env      *env
	ctl      *pages.Account
	form     *form
	password bool
}

func newAccountScreen(e *env) *accountScreen {
	return &accountScreen{env: e, ctl: pages.NewAccount(e.deps)}
}

func (s *accountScreen) init() tea.Cmd {
	ctx := s.env.ctx
	return run(s, "load", func() error { return s.ctl.Load(ctx) })
}

func (s *accountScreen) capturing() bool { return s.form != nil }
func (s *accountScreen) close()          { s.ctl.Close() }

func (s *accountScreen) update(msg tea.Msg) tea.Cmd {
	keys := s.env.keys
	switch msg := msg.(type) {
	case resultMsg:
		if msg.err != nil {
			return nil
		}
		switch msg.action {
		case "profile", "password":
			s.form = nil
			if s.ctl.ReauthRequired() {
				return s.logout(msgEmailChanged)
			}
		case "logout":
			return navigate(string(pages.RouteLogin), "")
		}
		return nil

	case tea.KeyMsg:
		if s.form != nil {
			switch {
			case key.Matches(msg, keys.Cancel):
				s.form = nil
				s.ctl.DismissError()
				return nil
			case key.Matches(msg, keys.Submit):
				return s.submit()
			}
			_, cmd := s.form.update(msg)
			return cmd
		}

		switch {
		case key.Matches(msg, keys.Edit):
			p := s.ctl.Profile()
			s.password = false
			s.form = newForm("Edit details", "Name", "Email").setValue(0, p.Name).setValue(1, p.Email)
		case msg.String() == "p":
			s.password = true
			s.form = newForm("Change password", "Current", "New", "Confirm").password(0).password(1).password(2)
		case msg.String() == "L":
			return s.logout("")
		case key.Matches(msg, keys.Refresh):
			return s.init()
		case key.Matches(msg, keys.Dismiss):
			s.ctl.DismissError()
		}
	}
	return nil
}

func (s *accountScreen) logout(notice string) tea.Cmd {
	ctx := s.env.ctx
	return func() tea.Msg {
		if err := s.ctl.Logout(ctx); err != nil {
			return resultMsg{owner: s, action: "logout", err: err}
		}
		return navigateMsg{path: string(pages.RouteLogin), notice: notice}
	}
}

func (s *accountScreen) submit() tea.Cmd {
	ctx, f := s.env.ctx, s.form
	if s.password {
		form := validate.PasswordForm{
			Current: f.fields[0].input.Value(),
			New:     f.fields[1].input.Value(),
			Confirm: f.fields[2].input.Value(),
		}
		return run(s, "password", func() error { return s.ctl.ChangePassword(ctx, form) })
	}
	form := validate.ProfileForm{Name: f.value(0), Email: f.value(1)}
	return run(s, "profile", func() error {
		_, err := s.ctl.UpdateProfile(ctx, form)
		return err
	})
}

func (s *accountScreen) view(f frame) string {
	if out, ok := statusView(f, s.ctl.Status(), "your account"); !ok {
		return out
	}
	th := f.theme
	p := s.ctl.Profile()

	var b strings.Builder
	b.WriteString(th.Title.Render("Account"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", th.Subtitle.Render("Name "), th.Bold.Render(p.Name))
	fmt.Fprintf(&b, "%s %s\n", th.Subtitle.Render("Email"), th.Bold.Render(p.Email))
	fmt.Fprintf(&b, "%s %s\n", th.Subtitle.Render("Plan "), th.Bold.Render(p.Plan.Label()))

	if s.form != nil {
		b.WriteString("\n" + s.form.view(th) + "\n")
	} else {
		b.WriteString("\n" + th.Subtitle.Render("e edit details · p change password · L log out") + "\n")
	}
	b.WriteString(messages(f, s.ctl.FormError(), s.ctl.Notice()))
	return b.String()
}
