// Package themes holds the color schemes of the interactive client.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	Inactive    lipgloss.Style
	RoundedBox  lipgloss.Style
	Alert       lipgloss.Style
	Banner      lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Income      lipgloss.Style
	Expense     lipgloss.Style
	StatusError lipgloss.Style
	StatusOK    lipgloss.Style
	StatusInfo  lipgloss.Style
	BarEmpty    lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color
	Success     lipgloss.Color
}

func build(primary, success, warning, danger, info, muted, border, fg lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,
		Warning: warning,
		Error:   danger,
		Success: success,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#0b1f17")).
			Bold(true),
		Inactive: lipgloss.NewStyle().
			Foreground(muted).
			Strikethrough(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warning).
			Foreground(warning).
			Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(info).
			Foreground(info).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		Income:      lipgloss.NewStyle().Foreground(success),
		Expense:     lipgloss.NewStyle().Foreground(danger),
		StatusError: lipgloss.NewStyle().Foreground(danger).Bold(true),
		StatusOK:    lipgloss.NewStyle().Foreground(success).Bold(true),
		StatusInfo:  lipgloss.NewStyle().Foreground(info),
		BarEmpty:    lipgloss.NewStyle().Foreground(border),
	}
}

// Default is the emerald dark theme.
var Default = build(
	lipgloss.Color("#1CAC78"),
	lipgloss.Color("#50C878"),
	lipgloss.Color("#fb923c"),
	lipgloss.Color("#f97373"),
	lipgloss.Color("#40E0D0"),
	lipgloss.Color("#94a3b8"),
	lipgloss.Color("#334155"),
	lipgloss.Color("#f8fafc"),
)

// Light suits terminals with a light background.
var Light = build(
	lipgloss.Color("#047857"),
	lipgloss.Color("#15803d"),
	lipgloss.Color("#c2410c"),
	lipgloss.Color("#b91c1c"),
	lipgloss.Color("#0e7490"),
	lipgloss.Color("#475569"),
	lipgloss.Color("#cbd5e1"),
	lipgloss.Color("#0f172a"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "light":
		return Light
	default:
		return Default
	}
}
