package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
)

type categoriesScreen struct {
	env     *env
	ctl     *pages.Categories
	form    *form
	cur     cursor
	editing int64
}

func newCategoriesScreen(e *env) *categoriesScreen {
	return &categoriesScreen{env: e, ctl: pages.NewCategories(e.deps)}
}

func (s *categoriesScreen) init() tea.Cmd {
	ctx := s.env.ctx
	return run(s, "load", func() error { return s.ctl.Load(ctx) })
}

func (s *categoriesScreen) capturing() bool { return s.form != nil }
func (s *categoriesScreen) close()          { s.ctl.Close() }

func categoryKindOptions() []option {
	return []option{
		{label: "Expense", value: string(model.CategoryExpense)},
		{label: "Income", value: string(model.CategoryIncome)},
		{label: "Both", value: string(model.CategoryBoth)},
	}
}

func (s *categoriesScreen) openForm(c *model.Category) {
	title := "New category"
	if c != nil {
		title = "Edit category"
	}
	s.form = newForm(title, "Name", "Description", "Type").setOptions(2, categoryKindOptions())
	s.editing = 0
	if c != nil {
		s.editing = c.ID
		s.form.setValue(0, c.Name).setValue(1, c.DescriptionText()).selectValue(2, string(c.Kind))
	}
}

func (s *categoriesScreen) update(msg tea.Msg) tea.Cmd {
	keys := s.env.keys
	switch msg := msg.(type) {
	case resultMsg:
		if msg.action == "save" && msg.err == nil {
			s.form = nil
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

		list := s.ctl.Categories()
		if s.cur.move(msg, keys, len(list)) {
			return nil
		}
		switch {
		case key.Matches(msg, keys.New):
			s.openForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(list) > 0 {
				c := list[s.cur.clamp(len(list))]
				s.openForm(&c)
			}
		case key.Matches(msg, keys.Toggle):
			if len(list) > 0 {
				id := list[s.cur.clamp(len(list))].ID
				ctx := s.env.ctx
				return run(s, "toggle", func() error {
					err := s.ctl.Toggle(ctx, id)
					if errors.Is(err, pages.ErrToggleInFlight) {
						return nil
					}
					return err
				})
			}
		case key.Matches(msg, keys.Refresh):
			return s.init()
		case key.Matches(msg, keys.Dismiss):
			s.ctl.DismissError()
		}
	}
	return nil
}

func (s *categoriesScreen) submit() tea.Cmd {
	form := validate.CategoryForm{
		Name:        s.form.value(0),
		Description: s.form.value(1),
		Kind:        model.CategoryKind(s.form.value(2)),
	}
	ctx, id := s.env.ctx, s.editing
	return run(s, "save", func() error {
		if id != 0 {
			return s.ctl.Update(ctx, id, form)
		}
		return s.ctl.Create(ctx, form)
	})
}

func kindLabel(k model.CategoryKind) string {
	switch k {
	case model.CategoryIncome:
		return "Income"
	case model.CategoryExpense:
		return "Expense"
	case model.CategoryBoth:
		return "Both"
	}
	return string(k)
}

func (s *categoriesScreen) view(f frame) string {
	if out, ok := statusView(f, s.ctl.Status(), "categories"); !ok {
		return out
	}
	th := f.theme
	counts := s.ctl.Counts()

	var b strings.Builder
	b.WriteString(th.Title.Render("Categories"))
	b.WriteString("\n")
	b.WriteString(th.Subtitle.Render(fmt.Sprintf("%d total · %d active · %d income · %d expense · %d both",
		counts.Total, counts.Active, counts.Income, counts.Expense, counts.Both)))
	b.WriteString("\n\n")

	list := s.ctl.Categories()
	if len(list) == 0 {
		b.WriteString(th.Subtitle.Render("No categories yet. Press n to create one."))
		b.WriteString("\n")
	}
	sel := s.cur.clamp(len(list))
	for i, c := range list {
		state := th.StatusOK.Render("active  ")
		if !c.Active {
			state = th.Subtitle.Render("inactive")
		}
		if s.ctl.Toggling(c.ID) {
			state = f.spinner + " saving"
		}
		name := fmt.Sprintf("%-20s", truncate(c.Name, 20))
		switch {
		case i == sel:
			name = th.Selected.Render(name)
		case !c.Active:
			name = th.Inactive.Render(name)
		}
		fmt.Fprintf(&b, "%s %-8s %s %s\n", name, kindLabel(c.Kind), state, th.Subtitle.Render(truncate(c.DescriptionText(), 30)))
	}

	if s.form != nil {
		b.WriteString("\n" + s.form.view(th) + "\n")
	} else {
		b.WriteString("\n" + th.Subtitle.Render("n new · e edit · Space activate/deactivate") + "\n")
	}
	b.WriteString(messages(f, s.ctl.FormError(), s.ctl.Notice()))
	return b.String()
}
