package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/pages"
)

var periods = []aggregate.PeriodKind{aggregate.PeriodDay, aggregate.PeriodMonth, aggregate.PeriodYear}

func nextPeriod(p aggregate.PeriodKind) aggregate.PeriodKind {
	for i, k := range periods {
		if k == p {
			return periods[(i+1)%len(periods)]
		}
	}
	return aggregate.PeriodMonth
}

type historyScreen struct {
	env *env
	ctl *pages.History
	ref *form
}

func newHistoryScreen(e *env) *historyScreen {
	return &historyScreen{env: e, ctl: pages.NewHistory(e.deps)}
}

func (s *historyScreen) init() tea.Cmd {
	ctx := s.env.ctx
	return run(s, "load", func() error { return s.ctl.Load(ctx) })
}

func (s *historyScreen) capturing() bool { return s.ref != nil }
func (s *historyScreen) close()          { s.ctl.Close() }

func (s *historyScreen) update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	keys := s.env.keys

	if s.ref != nil {
		switch {
		case key.Matches(k, keys.Cancel):
			s.ref = nil
		case key.Matches(k, keys.Submit):
			s.ctl.SetReference(s.ref.value(0))
			s.ref = nil
		default:
			_, cmd := s.ref.update(k)
			return cmd
		}
		return nil
	}

	c := s.ctl.Criteria()
	switch {
	case key.Matches(k, keys.Filter):
		s.ctl.SetKind(nextKindFilter(c.Kind))
	case key.Matches(k, keys.Period):
		s.ctl.SetPeriod(nextPeriod(c.Period))
	case k.String() == "/":
		s.ref = newForm("Reference ("+c.Period.Layout()+")", "Value").setValue(0, c.Reference)
	case key.Matches(k, keys.Refresh):
		return s.init()
	case key.Matches(k, keys.Dismiss):
		s.ctl.DismissError()
	}
	return nil
}

func (s *historyScreen) view(f frame) string {
	if out, ok := statusView(f, s.ctl.Status(), "your history"); !ok {
		return out
	}
	th := f.theme
	c := s.ctl.Criteria()

	var b strings.Builder
	b.WriteString(th.Title.Render("History"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		th.Subtitle.Render("kind"), th.Bold.Render(strings.ToLower(string(c.Kind))),
		th.Subtitle.Render("period"), th.Bold.Render(strings.ToLower(string(c.Period))),
		th.Subtitle.Render("reference"), th.Bold.Render(c.Reference))
	b.WriteString(th.Subtitle.Render(fmt.Sprintf("%d records", s.ctl.Count())))
	b.WriteString("\n\n")

	for _, t := range s.ctl.Visible() {
		signed, style := t.Amount, th.Income
		if t.IsExpense() {
			signed, style = signed.Neg(), th.Expense
		}
		fmt.Fprintf(&b, "%s  %-22s %-14s %s\n", t.Date, truncate(t.Description, 22),
			truncate(t.CategoryName, 14), style.Render(cli.FormatSigned(f.currency, signed)))
	}

	if s.ref != nil {
		b.WriteString("\n" + s.ref.view(th))
	} else {
		b.WriteString("\n" + th.Subtitle.Render("f kind · p period · / reference"))
	}
	return b.String()
}
