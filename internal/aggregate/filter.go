package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/model"
)

// PeriodKind selects the date granularity of a period filter.
type PeriodKind string

const (
	PeriodDay   PeriodKind = "DAY"
	PeriodMonth PeriodKind = "MONTH"
	PeriodYear  PeriodKind = "YEAR"
)

// Layout returns the reference format expected for the period.
func (p PeriodKind) Layout() string {
	switch p {
	case PeriodDay:
		return "2006-01-02"
	case PeriodMonth:
		return "2006-01"
	case PeriodYear:
		return "2006"
	}
	return ""
}

// Reference formats t as a reference value for the period.
func (p PeriodKind) Reference(t time.Time) string {
	if l := p.Layout(); l != "" {
		return t.Format(l)
	}
	return ""
}

// ParsePeriodKind accepts DAY, MONTH or YEAR in any case.
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch p := PeriodKind(strings.ToUpper(s)); p {
	case PeriodDay, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// KindFilter restricts transactions by kind.
type KindFilter string

const (
	KindAll     KindFilter = "ALL"
	KindIncome  KindFilter = "INCOME"
	KindExpense KindFilter = "EXPENSE"
)

// ParseKindFilter accepts ALL (or TODOS), INCOME and EXPENSE in any case.
// The empty string means ALL.
func ParseKindFilter(s string) (KindFilter, error) {
	switch strings.ToUpper(s) {
	case "", "ALL", "TODOS":
		return KindAll, nil
	case "INCOME":
		return KindIncome, nil
	case "EXPENSE":
		return KindExpense, nil
	}
	return "", fmt.Errorf("unknown kind filter %q", s)
}

// Matches reports whether a transaction of kind k passes the filter.
func (f KindFilter) Matches(k model.Kind) bool {
	switch f {
	case KindIncome:
		return k == model.KindIncome
	case KindExpense:
		return k == model.KindExpense
	}
	return true
}

// FilterByKind keeps the transactions whose kind passes f.
func FilterByKind(txns []model.Transaction, f KindFilter) []model.Transaction {
	return keep(txns, func(t model.Transaction) bool { return f.Matches(t.Kind) })
}

// FilterByPeriod keeps the transactions whose date falls in the period
// named by ref. An empty ref keeps everything. Transactions with malformed
// dates never match a non-empty ref, and neither does anything when ref
// itself is malformed.
func FilterByPeriod(txns []model.Transaction, period PeriodKind, ref string) []model.Transaction {
	match := periodMatcher(period, ref)
	return keep(txns, func(t model.Transaction) bool { return match(t.Date) })
}

func periodMatcher(period PeriodKind, ref string) func(model.Date) bool {
	ref = strings.TrimSpace(ref)
	layout := period.Layout()
	if ref == "" || layout == "" {
		return func(model.Date) bool { return true }
	}
	want, err := time.Parse(layout, ref)
	if err != nil {
		return func(model.Date) bool { return false }
	}
	return func(d model.Date) bool {
		day, err := d.Time()
		if err != nil {
			return false
		}
		return day.Format(layout) == want.Format(layout)
	}
}

// Criteria combines a kind filter with a period filter.
type Criteria struct {
	Kind      KindFilter
	Period    PeriodKind
	Reference string
}

// Filter applies both predicates of c. The order of application does not
// affect the result.
func Filter(txns []model.Transaction, c Criteria) []model.Transaction {
	match := periodMatcher(c.Period, c.Reference)
	return keep(txns, func(t model.Transaction) bool {
		return c.Kind.Matches(t.Kind) && match(t.Date)
	})
}

func keep(txns []model.Transaction, pred func(model.Transaction) bool) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
