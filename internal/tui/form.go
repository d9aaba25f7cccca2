package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmatrios/ahorrape-front/internal/tui/themes"
)

type option struct {
	label string
	value string
}

// field is a text input, or a selector when options is non-nil.
type field struct {
	label   string
	input   textinput.Model
	options []option
	choice  int
}

// form is a vertical list of fields with one focused at a time.
type form struct {
	title  string
	fields []field
	focus  int
}

func newForm(title string, labels ...string) *form {
	f := &form{title: title}
	for _, label := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		in.Width = 32
		f.fields = append(f.fields, field{label: label, input: in})
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *form) password(i int) *form {
	f.fields[i].input.EchoMode = textinput.EchoPassword
	f.fields[i].input.EchoCharacter = '•'
	return f
}

func (f *form) setValue(i int, v string) *form {
	f.fields[i].input.SetValue(v)
	return f
}

// setOptions turns field i into a selector. The current choice is kept when
// its value is still offered.
func (f *form) setOptions(i int, opts []option) *form {
	fl := &f.fields[i]
	current := f.value(i)
	fl.options = opts
	if fl.options == nil {
		fl.options = []option{}
	}
	fl.choice = 0
	for j, o := range opts {
		if o.value == current {
			fl.choice = j
			break
		}
	}
	return f
}

func (f *form) selectValue(i int, v string) *form {
	for j, o := range f.fields[i].options {
		if o.value == v {
			f.fields[i].choice = j
		}
	}
	return f
}

func (f *form) value(i int) string {
	fl := f.fields[i]
	if fl.options != nil {
		if len(fl.options) == 0 {
			return ""
		}
		return fl.options[fl.choice].value
	}
	return strings.TrimSpace(fl.input.Value())
}

func (f *form) move(delta int) tea.Cmd {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].input.Focus()
}

// update handles a key for the focused field. changed is true when a
// selector moved.
func (f *form) update(msg tea.KeyMsg) (changed bool, cmd tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return false, f.move(1)
	case "shift+tab", "up":
		return false, f.move(-1)
	}

	fl := &f.fields[f.focus]
	if fl.options != nil {
		n := len(fl.options)
		if n == 0 {
			return false, nil
		}
		switch msg.String() {
		case "left", "h":
			fl.choice = (fl.choice - 1 + n) % n
			return true, nil
		case "right", "l", " ":
			fl.choice = (fl.choice + 1) % n
			return true, nil
		}
		return false, nil
	}

	fl.input, cmd = fl.input.Update(msg)
	return false, cmd
}

func (f *form) view(th themes.Theme) string {
	var b strings.Builder
	b.WriteString(th.Bold.Render(f.title))
	b.WriteString("\n")
	for i, fl := range f.fields {
		label := lipgloss.NewStyle().Width(14).Render(fl.label)
		if i == f.focus {
			label = th.Selected.Width(14).Render(fl.label)
		}
		b.WriteString(label + " ")
		if fl.options != nil {
			b.WriteString(renderChoice(th, fl, i == f.focus))
		} else {
			b.WriteString(fl.input.View())
		}
		b.WriteString("\n")
	}
	b.WriteString(th.Subtitle.Render("Tab next · ←/→ choose · Enter save · Esc cancel"))
	return th.RoundedBox.Render(b.String())
}

func renderChoice(th themes.Theme, fl field, focused bool) string {
	if len(fl.options) == 0 {
		return th.Subtitle.Render("(no options)")
	}
	text := fl.options[fl.choice].label
	if focused {
		return "◀ " + th.Bold.Render(text) + " ▶"
	}
	return text
}
