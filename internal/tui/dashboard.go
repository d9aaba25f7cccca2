package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
)

const (
	chartWidth = 40
	barWidth   = 24
)

// Quick entry fields.
const (
	entryKind = iota
	entryCategory
	entryAmount
	entryDate
	entryDescription
)

type dashboardScreen struct {
	env   *env
	ctl   *pages.Dashboard
	entry *form
}

func newDashboardScreen(e *env) *dashboardScreen {
	return &dashboardScreen{env: e, ctl: pages.NewDashboard(e.deps, e.chart)}
}

func (s *dashboardScreen) init() tea.Cmd {
	ctx := s.env.ctx
	return run(s, "load", func() error { return s.ctl.Load(ctx) })
}

func (s *dashboardScreen) capturing() bool { return s.entry != nil }
func (s *dashboardScreen) close()          { s.ctl.Close() }

func (s *dashboardScreen) openEntry() {
	s.entry = newForm("New movement", "Type", "Category", "Amount", "Date", "Description").
		setOptions(entryKind, kindOptions()).
		setValue(entryDate, model.NewDate(s.env.now()).String())
	s.refreshCategories()
}

func (s *dashboardScreen) refreshCategories() {
	kind := model.Kind(s.entry.value(entryKind))
	s.entry.setOptions(entryCategory, categoryOptions(s.ctl.QuickCategories(kind)))
}

func (s *dashboardScreen) update(msg tea.Msg) tea.Cmd {
	keys := s.env.keys
	switch msg := msg.(type) {
	case resultMsg:
		if msg.action == "save" && msg.err == nil {
			s.entry = nil
		}
		return nil

	case tea.KeyMsg:
		if s.entry != nil {
			switch {
			case key.Matches(msg, keys.Cancel):
				s.entry = nil
				s.ctl.DismissError()
				return nil
			case key.Matches(msg, keys.Submit):
				return s.submit()
			}
			changed, cmd := s.entry.update(msg)
			if changed && s.entry.focus == entryKind {
				s.refreshCategories()
			}
			return cmd
		}

		switch {
		case key.Matches(msg, keys.New):
			s.openEntry()
		case key.Matches(msg, keys.Refresh):
			return s.init()
		case key.Matches(msg, keys.Dismiss):
			s.ctl.DismissAlert()
			s.ctl.DismissError()
		case msg.String() == "u":
			s.ctl.DismissUpgrade()
		case msg.String() == "v":
			return navigate(string(pages.RoutePlans), "")
		}
	}
	return nil
}

func (s *dashboardScreen) submit() tea.Cmd {
	categoryID, _ := strconv.ParseInt(s.entry.value(entryCategory), 10, 64)
	form := validate.TransactionForm{
		Kind:        model.Kind(s.entry.value(entryKind)),
		CategoryID:  categoryID,
		Amount:      s.entry.value(entryAmount),
		Date:        s.entry.value(entryDate),
		Description: s.entry.value(entryDescription),
	}
	ctx := s.env.ctx
	return run(s, "save", func() error { return s.ctl.QuickEntry(ctx, form) })
}

func (s *dashboardScreen) view(f frame) string {
	v := s.ctl.View()
	if out, ok := statusView(f, v.Status, "your month"); !ok {
		return out
	}
	th := f.theme

	sections := []string{
		th.Title.Render(fmt.Sprintf("Hi, %s", v.User.Name)),
		totalsView(f, v),
	}
	if v.AlertVisible {
		sections = append(sections, th.Alert.Render(cli.WarningIcon+"  Your expenses exceed your income this month. (x dismiss)"))
	}
	if v.UpgradeVisible {
		sections = append(sections, th.Banner.Render("You are on "+v.User.Plan.Label()+". See the paid plans with v. (u dismiss)"))
	}

	if len(v.Segments) == 0 {
		sections = append(sections, th.Subtitle.Render("No expenses recorded this month."))
	} else {
		sections = append(sections,
			th.Bold.Render(cli.ChartIcon+" Expenses by category"),
			ringView(v.Segments, chartWidth),
			legendView(f, v.Segments),
			barsView(f, v.Bars),
		)
	}

	sections = append(sections, th.Bold.Render("Recent movements"), recentView(f, v.Recent))
	if s.entry != nil {
		sections = append(sections, s.entry.view(th))
	} else {
		sections = append(sections, th.Subtitle.Render("n new movement · r reload"))
	}
	if msg := messages(f, s.ctl.FormError(), s.ctl.Notice()); msg != "" {
		sections = append(sections, msg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func totalsView(f frame, v pages.DashboardView) string {
	th := f.theme
	card := func(label, value string, style lipgloss.Style) string {
		return th.RoundedBox.Width(24).Render(th.Subtitle.Render(label) + "\n" + style.Render(value))
	}
	balance := th.Income
	if v.Balance.IsNegative() {
		balance = th.Expense
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Income", cli.FormatMoney(f.currency, v.Totals.Income), th.Income),
		card("Expenses", cli.FormatMoney(f.currency, v.Totals.Expense), th.Expense),
		card("Balance", cli.FormatMoney(f.currency, v.Balance), balance),
	)
}

// ringView flattens the proportional chart into one stacked bar of width
// cells. Every segment with a positive span gets at least one cell.
func ringView(segments []aggregate.Segment, width int) string {
	var b strings.Builder
	used := 0
	for i, seg := range segments {
		cells := int(math.Round(seg.Span() / aggregate.FullCircle * float64(width)))
		if cells == 0 && seg.Span() > 0 {
			cells = 1
		}
		if i == len(segments)-1 {
			cells = max(width-used, 0)
		}
		if used+cells > width {
			cells = width - used
		}
		used += cells
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color)).Render(strings.Repeat("█", cells)))
	}
	return b.String()
}

func legendView(f frame, segments []aggregate.Segment) string {
	rows := make([]string, 0, len(segments))
	for _, seg := range segments {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("%s %s %s", dot, seg.Category, f.theme.Subtitle.Render(fmt.Sprintf("%.1f%%", seg.Percent))))
	}
	return strings.Join(rows, "\n")
}

func barsView(f frame, bars []pages.Bar) string {
	rows := make([]string, 0, len(bars))
	for _, bar := range bars {
		filled := int(math.Round(bar.Percent / 100 * barWidth))
		rows = append(rows, fmt.Sprintf("%-16s %s%s %s",
			truncate(bar.Category, 16),
			lipgloss.NewStyle().Foreground(f.theme.Primary).Render(strings.Repeat("█", filled)),
			f.theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled)),
			cli.FormatMoney(f.currency, bar.Total),
		))
	}
	return strings.Join(rows, "\n")
}

func recentView(f frame, recent []aggregate.Movement) string {
	if len(recent) == 0 {
		return f.theme.Subtitle.Render("Nothing recorded yet.")
	}
	rows := make([]string, 0, len(recent))
	for _, m := range recent {
		amount := f.theme.Income
		if m.SignedAmount.IsNegative() {
			amount = f.theme.Expense
		}
		rows = append(rows, fmt.Sprintf("%s  %-20s %-14s %s",
			m.Date, truncate(m.Title, 20), truncate(m.Category, 14),
			amount.Render(cli.FormatSigned(f.currency, m.SignedAmount))))
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
