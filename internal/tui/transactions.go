package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/cli"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/validate"
)

var kindFilters = []aggregate.KindFilter{aggregate.KindAll, aggregate.KindIncome, aggregate.KindExpense}

func nextKindFilter(f aggregate.KindFilter) aggregate.KindFilter {
	for i, k := range kindFilters {
		if k == f {
			return kindFilters[(i+1)%len(kindFilters)]
		}
	}
	return aggregate.KindAll
}

type transactionsScreen struct {
	env     *env
	ctl     *pages.Transactions
	form    *form
	cur     cursor
	editing int64
}

func newTransactionsScreen(e *env) *transactionsScreen {
	return &transactionsScreen{env: e, ctl: pages.NewTransactions(e.deps)}
}

func (s *transactionsScreen) init() tea.Cmd {
	ctx := s.env.ctx
	return run(s, "load", func() error { return s.ctl.Load(ctx) })
}

func (s *transactionsScreen) capturing() bool {
	_, deleting := s.ctl.PendingDelete()
	return s.form != nil || deleting
}

func (s *transactionsScreen) close() { s.ctl.Close() }

func (s *transactionsScreen) openForm(t *model.Transaction) {
	if t == nil {
		s.editing = 0
		s.form = newForm("New movement", "Type", "Category", "Amount", "Date", "Description").
			setOptions(entryKind, kindOptions()).
			setValue(entryDate, model.NewDate(s.env.now()).String())
		s.refreshCategories()
		return
	}
	s.editing = t.ID
	s.form = newForm("Edit movement", "Type", "Category", "Amount", "Date", "Description").
		setOptions(entryKind, []option{{label: kindName(t.Kind), value: string(t.Kind)}}).
		setValue(entryAmount, t.Amount.StringFixed(2)).
		setValue(entryDate, t.Date.String()).
		setValue(entryDescription, t.Description)
	s.refreshCategories()
	s.form.selectValue(entryCategory, strconv.FormatInt(t.CategoryID, 10))
}

func (s *transactionsScreen) refreshCategories() {
	kind := model.Kind(s.form.value(entryKind))
	s.form.setOptions(entryCategory, categoryOptions(s.ctl.SelectableCategories(kind)))
}

func kindName(k model.Kind) string {
	if k == model.KindIncome {
		return "Income"
	}
	return "Expense"
}

func (s *transactionsScreen) update(msg tea.Msg) tea.Cmd {
	keys := s.env.keys
	switch msg := msg.(type) {
	case resultMsg:
		if msg.action == "save" && msg.err == nil {
			s.form = nil
		}
		return nil

	case tea.KeyMsg:
		if _, ok := s.ctl.PendingDelete(); ok {
			switch {
			case key.Matches(msg, keys.Confirm):
				ctx := s.env.ctx
				return run(s, "delete", func() error { return s.ctl.ConfirmDelete(ctx) })
			case key.Matches(msg, keys.Cancel), msg.String() == "n":
				s.ctl.CancelDelete()
			}
			return nil
		}

		if s.form != nil {
			switch {
			case key.Matches(msg, keys.Cancel):
				s.form = nil
				s.ctl.DismissError()
				return nil
			case key.Matches(msg, keys.Submit):
				return s.submit()
			}
			changed, cmd := s.form.update(msg)
			if changed && s.form.focus == entryKind {
				s.refreshCategories()
			}
			return cmd
		}

		list := s.ctl.Visible()
		if s.cur.move(msg, keys, len(list)) {
			return nil
		}
		switch {
		case key.Matches(msg, keys.New):
			s.openForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(list) > 0 {
				t := list[s.cur.clamp(len(list))]
				s.openForm(&t)
			}
		case key.Matches(msg, keys.Delete):
			if len(list) > 0 {
				s.ctl.AskDelete(list[s.cur.clamp(len(list))].ID)
			}
		case key.Matches(msg, keys.Filter):
			s.ctl.SetKindFilter(nextKindFilter(s.ctl.KindFilter()))
		case key.Matches(msg, keys.Refresh):
			return s.init()
		case key.Matches(msg, keys.Dismiss):
			s.ctl.DismissError()
		}
	}
	return nil
}

func (s *transactionsScreen) submit() tea.Cmd {
	categoryID, _ := strconv.ParseInt(s.form.value(entryCategory), 10, 64)
	form := validate.TransactionForm{
		Kind:        model.Kind(s.form.value(entryKind)),
		CategoryID:  categoryID,
		Amount:      s.form.value(entryAmount),
		Date:        s.form.value(entryDate),
		Description: s.form.value(entryDescription),
	}
	ctx, id := s.env.ctx, s.editing
	return run(s, "save", func() error {
		if id != 0 {
			return s.ctl.Update(ctx, id, form)
		}
		return s.ctl.Create(ctx, form)
	})
}

func (s *transactionsScreen) view(f frame) string {
	if out, ok := statusView(f, s.ctl.Status(), "your movements"); !ok {
		return out
	}
	th := f.theme

	var b strings.Builder
	b.WriteString(th.Title.Render("Movements"))
	b.WriteString("\n")
	if s.ctl.MonthTotals().OverBudget() {
		b.WriteString(th.Alert.Render(cli.WarningIcon + "  This month your expenses are above your income."))
		b.WriteString("\n")
	}
	b.WriteString(th.Subtitle.Render("Showing: " + strings.ToLower(string(s.ctl.KindFilter())) + " (f to change)"))
	b.WriteString("\n\n")

	list := s.ctl.Visible()
	if len(list) == 0 {
		b.WriteString(th.Subtitle.Render("No movements to show."))
		b.WriteString("\n")
	}
	sel := s.cur.clamp(len(list))
	for i, t := range list {
		row := fmt.Sprintf("%s  %-22s %-14s", t.Date, truncate(t.Description, 22), truncate(t.CategoryName, 14))
		if i == sel {
			row = th.Selected.Render(row)
		}
		signed := t.Amount
		style := th.Income
		if t.IsExpense() {
			signed = signed.Neg()
			style = th.Expense
		}
		b.WriteString(row + " " + style.Render(cli.FormatSigned(f.currency, signed)) + "\n")
	}

	switch pending, ok := s.ctl.PendingDelete(); {
	case ok:
		b.WriteString("\n" + th.Alert.Render(fmt.Sprintf("Delete %q of %s? y confirm · n cancel",
			pending.Description, cli.FormatMoney(f.currency, pending.Amount))) + "\n")
	case s.form != nil:
		b.WriteString("\n" + s.form.view(th) + "\n")
	default:
		b.WriteString("\n" + th.Subtitle.Render("n new · e edit · d delete · f filter") + "\n")
	}
	b.WriteString(messages(f, s.ctl.FormError(), s.ctl.Notice()))
	return b.String()
}
