package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
)

// statusView renders the loading and failed states. ok is false when the
// page content should not be drawn.
func statusView(f frame, st pages.Status, what string) (string, bool) {
	switch st.Phase {
	case pages.PhaseLoading, pages.PhaseIdle:
		return f.spinner + " Loading " + what + "…", false
	case pages.PhaseFailed:
		return f.theme.StatusError.Render(st.Message) + "\n" +
			f.theme.Subtitle.Render("r retry · x dismiss"), false
	}
	return "", true
}

// messages renders the inline form error and the last confirmation.
func messages(f frame, formErr, notice string) string {
	var lines []string
	if formErr != "" {
		lines = append(lines, f.theme.StatusError.Render(formErr))
	}
	if notice != "" {
		lines = append(lines, f.theme.StatusOK.Render(notice))
	}
	return strings.Join(lines, "\n")
}

func kindOptions() []option {
	return []option{
		{label: "Expense", value: string(model.KindExpense)},
		{label: "Income", value: string(model.KindIncome)},
	}
}

func categoryOptions(categories []model.Category) []option {
	opts := make([]option, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, option{label: c.Name, value: fmt.Sprint(c.ID)})
	}
	return opts
}

// cursor keeps a selection index inside a list of n rows.
type cursor int

func (c *cursor) move(msg tea.KeyMsg, keys KeyMap, n int) bool {
	switch {
	case key.Matches(msg, keys.Up):
		if *c > 0 {
			*c--
		}
		return true
	case key.Matches(msg, keys.Down):
		if int(*c) < n-1 {
			*c++
		}
		return true
	}
	return false
}

func (c *cursor) clamp(n int) int {
	if int(*c) >= n {
		*c = cursor(max(n-1, 0))
	}
	return int(*c)
}

type landingScreen struct {
	env *env
}

func newLandingScreen(e *env) *landingScreen {
	return &landingScreen{env: e}
}

func (s *landingScreen) init() tea.Cmd   { return nil }
func (s *landingScreen) capturing() bool { return false }
func (s *landingScreen) close()          {}

func (s *landingScreen) update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch k.String() {
	case "l", "enter":
		if s.env.state.Authenticated() {
			return navigate(string(pages.RouteDashboard), "")
		}
		return navigate(string(pages.RouteLogin), "")
	case "c":
		return navigate(string(pages.RouteRegister), "")
	}
	return nil
}

func (s *landingScreen) view(f frame) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		f.theme.Title.Render("Your savings, under control."),
		f.theme.Normal.Render("Record income and expenses, organize them by category and see where your money goes each month."),
		"",
		f.theme.Subtitle.Render("l log in · c create account · q quit"),
	)
}

// usersScreen is the protected user administration placeholder.
type usersScreen struct{}

func (s *usersScreen) init() tea.Cmd          { return nil }
func (s *usersScreen) update(tea.Msg) tea.Cmd { return nil }
func (s *usersScreen) capturing() bool        { return false }
func (s *usersScreen) close()                 {}

func (s *usersScreen) view(f frame) string {
	return f.theme.Title.Render("Users") + "\n" + f.theme.Subtitle.Render("User administration is not available yet.")
}

type plansScreen struct {
	env    *env
	ctl    *pages.Plans
	cur    cursor
	notice string
}

func newPlansScreen(e *env) *plansScreen {
	return &plansScreen{env: e, ctl: pages.NewPlans(e.state.User)}
}

func (s *plansScreen) init() tea.Cmd   { return nil }
func (s *plansScreen) capturing() bool { return false }
func (s *plansScreen) close()          {}

func (s *plansScreen) update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	plans := s.ctl.List()
	if s.cur.move(k, s.env.keys, len(plans)) {
		s.notice = ""
		return nil
	}
	if key.Matches(k, s.env.keys.Submit) {
		if p := plans[s.cur.clamp(len(plans))]; p.Upcoming && !p.Current {
			s.notice = pages.MsgCheckoutPending
		}
	}
	return nil
}

func (s *plansScreen) view(f frame) string {
	var b strings.Builder
	b.WriteString(f.theme.Title.Render("Plans"))
	b.WriteString("\n")
	if s.ctl.ShowUpgradeNotice() {
		b.WriteString(f.theme.Banner.Render("Upgrade to unlock more reports and tools."))
		b.WriteString("\n")
	}
	plans := s.ctl.List()
	sel := s.cur.clamp(len(plans))
	for i, p := range plans {
		tag := ""
		switch {
		case p.Current:
			tag = f.theme.StatusOK.Render(" (current)")
		case p.Upcoming:
			tag = f.theme.Subtitle.Render(" (coming soon)")
		}
		name := p.Name
		if i == sel {
			name = f.theme.Selected.Render(name)
		} else {
			name = f.theme.Bold.Render(name)
		}
		fmt.Fprintf(&b, "%s%s\n  %s\n", name, tag, f.theme.Subtitle.Render(p.Summary))
	}
	if s.notice != "" {
		b.WriteString("\n" + f.theme.StatusInfo.Render(s.notice))
	}
	return b.String()
}
