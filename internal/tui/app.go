// Package tui is the interactive terminal client. Each route is a screen
// backed by a pages controller; network calls run inside tea.Cmd functions
// and report back with messages.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/session"
	"github.com/dmatrios/ahorrape-front/internal/tui/themes"
)

// Options configures the interactive client.
type Options struct {
	Theme    themes.Theme
	Deps     pages.Deps
	Chart    pages.ChartOptions
	Currency string
	// Start is the first path to open. Empty opens the dashboard.
	Start string
}

// screen is one route's view. Screens are pointers so that results can be
// matched to the screen that requested them.
type screen interface {
	init() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view(f frame) string
	// capturing reports whether keys go to a text field.
	capturing() bool
	close()
}

// env is shared by all screens of one program.
type env struct {
	ctx   context.Context
	deps  pages.Deps
	chart pages.ChartOptions
	keys  KeyMap
	state session.State
}

func (e *env) now() time.Time {
	if e.deps.Now != nil {
		return e.deps.Now()
	}
	return time.Now()
}

// frame carries what a screen needs to render.
type frame struct {
	theme    themes.Theme
	currency string
	spinner  string
	width    int
}

// navigateMsg asks the app to open path.
type navigateMsg struct {
	path   string
	notice string
}

// routeMsg is the outcome of a session check for a path.
type routeMsg struct {
	err    error
	state  session.State
	route  pages.Route
	notice string
}

// resultMsg reports a load or submission of a screen.
type resultMsg struct {
	err    error
	owner  screen
	action string
}

func navigate(path, notice string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path, notice: notice} }
}

func run(owner screen, action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{owner: owner, action: action, err: fn()}
	}
}

// Model is the root bubbletea model. It owns the router.
type Model struct {
	env      *env
	current  screen
	opts     Options
	spinner  spinner.Model
	help     help.Model
	notice   string
	lastErr  string
	route    pages.Route
	width    int
	quitting bool
}

// New creates the root model.
func New(ctx context.Context, opts Options) Model {
	if opts.Currency == "" {
		opts.Currency = cli.DefaultCurrency
	}
	if opts.Start == "" {
		opts.Start = string(pages.RouteDashboard)
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(opts.Theme.Primary)

	return Model{
		env: &env{
			ctx:   ctx,
			deps:  opts.Deps,
			chart: opts.Chart,
			keys:  DefaultKeyMap(),
		},
		opts:    opts,
		spinner: sp,
		help:    help.New(),
		width:   80,
	}
}

// Init checks the session for the start path.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.resolve(m.opts.Start, ""))
}

func (m Model) resolve(path, notice string) tea.Cmd {
	ctx, provider, logger := m.env.ctx, m.env.deps.Session, m.env.deps.Logger
	return func() tea.Msg {
		route, st, err := pages.Navigate(ctx, provider, path, logger)
		return routeMsg{route: route, state: st, err: err, notice: notice}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keys := m.env.keys
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case navigateMsg:
		return m, m.resolve(msg.path, msg.notice)

	case routeMsg:
		if msg.err != nil {
			m.lastErr = common.Describe(msg.err, "")
		}
		m.notice = msg.notice
		return m.open(msg.route, msg.state)

	case resultMsg:
		if msg.owner != m.current || errors.Is(msg.err, pages.ErrClosed) {
			return m, nil
		}
		if errors.Is(msg.err, common.ErrSessionExpired) || errors.Is(msg.err, common.ErrNotAuthenticated) {
			return m, navigate(string(pages.RouteLogin), common.MsgSessionMissing)
		}
		return m, m.current.update(msg)

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m.quit()
		}
		m.lastErr = ""
		if m.current == nil || m.current.capturing() {
			break
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if path, ok := m.shortcut(msg); ok {
			m.notice = ""
			return m, navigate(path, "")
		}
	}

	if m.current == nil {
		return m, nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
	}
	return m, m.current.update(msg)
}

func (m Model) shortcut(msg tea.KeyMsg) (string, bool) {
	if !m.env.state.Authenticated() {
		return "", false
	}
	keys := m.env.keys
	for _, s := range []struct {
		binding key.Binding
		route   pages.Route
	}{
		{keys.Dashboard, pages.RouteDashboard},
		{keys.Categories, pages.RouteCategories},
		{keys.Transactions, pages.RouteTransactions},
		{keys.History, pages.RouteHistory},
		{keys.Account, pages.RouteAccount},
		{keys.Plans, pages.RoutePlans},
	} {
		if key.Matches(msg, s.binding) {
			return string(s.route), true
		}
	}
	return "", false
}

func (m Model) open(route pages.Route, st session.State) (tea.Model, tea.Cmd) {
	if m.current != nil {
		m.current.close()
	}
	m.env.state = st
	m.route = route
	m.current = m.screenFor(route)
	return m, m.current.init()
}

func (m Model) screenFor(route pages.Route) screen {
	e := m.env
	switch route {
	case pages.RouteLogin:
		return newAuthScreen(e, false)
	case pages.RouteRegister:
		return newAuthScreen(e, true)
	case pages.RouteDashboard:
		return newDashboardScreen(e)
	case pages.RouteCategories:
		return newCategoriesScreen(e)
	case pages.RouteTransactions:
		return newTransactionsScreen(e)
	case pages.RouteHistory:
		return newHistoryScreen(e)
	case pages.RouteAccount:
		return newAccountScreen(e)
	case pages.RoutePlans:
		return newPlansScreen(e)
	case pages.RouteUsers:
		return &usersScreen{}
	default:
		return newLandingScreen(e)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.current != nil {
		m.current.close()
	}
	m.quitting = true
	return m, tea.Quit
}

// Route returns the route on screen.
func (m Model) Route() pages.Route {
	return m.route
}

// View renders the active screen with the navigation bar and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	f := frame{
		theme:    m.opts.Theme,
		currency: m.opts.Currency,
		spinner:  m.spinner.View(),
		width:    m.width,
	}

	var b strings.Builder
	b.WriteString(m.tabs(f))
	b.WriteString("\n\n")
	if m.current == nil {
		b.WriteString(f.spinner + " Checking session…")
	} else {
		b.WriteString(m.current.view(f))
	}
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString("\n" + f.theme.StatusInfo.Render(m.notice))
	}
	if m.lastErr != "" {
		b.WriteString("\n" + f.theme.StatusError.Render(m.lastErr))
	}
	b.WriteString("\n" + m.help.View(m.env.keys))
	return b.String()
}

func (m Model) tabs(f frame) string {
	title := f.theme.Title.UnsetMargins().Render(cli.MoneyIcon + " AhorraPE")
	if !m.env.state.Authenticated() {
		return title
	}
	items := []struct {
		label string
		route pages.Route
	}{
		{"1 Dashboard", pages.RouteDashboard},
		{"2 Categories", pages.RouteCategories},
		{"3 Movements", pages.RouteTransactions},
		{"4 History", pages.RouteHistory},
		{"5 Account", pages.RouteAccount},
		{"6 Plans", pages.RoutePlans},
	}
	parts := []string{title}
	for _, it := range items {
		style := f.theme.Tab
		if it.route == m.route {
			style = f.theme.ActiveTab
		}
		parts = append(parts, style.Render(it.label))
	}
	user := m.env.state.User
	parts = append(parts, f.theme.Subtitle.Render(fmt.Sprintf("%s · %s", user.Name, user.Plan.Label())))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
