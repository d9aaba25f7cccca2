package pages

import (
	"context"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/model"
)

// History backs the filtered movement history. Each period granularity
// keeps its own reference, starting at today.
type History struct {
	page
	transactions []model.Transaction
	kind         aggregate.KindFilter
	period       aggregate.PeriodKind
	refs         map[aggregate.PeriodKind]string
}

// NewHistory creates a History controller filtered to the current month.
func NewHistory(deps Deps) *History {
	h := &History{
		kind:   aggregate.KindAll,
		period: aggregate.PeriodMonth,
	}
	h.init(deps)

	today := deps.now()
	h.refs = map[aggregate.PeriodKind]string{
		aggregate.PeriodDay:   aggregate.PeriodDay.Reference(today),
		aggregate.PeriodMonth: aggregate.PeriodMonth.Reference(today),
		aggregate.PeriodYear:  aggregate.PeriodYear.Reference(today),
	}
	return h
}

// Load fetches the user's transactions.
func (h *History) Load(ctx context.Context) error {
	user, err := h.sessionUser(ctx)
	if err != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.failLoad(err, MsgLoadTransactions)
		return err
	}

	h.beginLoad()
	ctx, done := h.life.Bind(ctx)
	defer done()

	txns, err := h.deps.API.ListTransactions(ctx, user.ID)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		h.failLoad(err, MsgLoadTransactions)
		return err
	}
	h.transactions = txns
	h.status = Status{Phase: PhaseReady}
	return nil
}

// SetKind changes the kind filter.
func (h *History) SetKind(f aggregate.KindFilter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.kind = f
}

// SetPeriod switches the period granularity. The reference last used for
// that granularity is kept.
func (h *History) SetPeriod(p aggregate.PeriodKind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.period = p
}

// SetReference sets the reference of the current period. An empty reference
// disables the period filter.
func (h *History) SetReference(ref string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refs[h.period] = ref
}

// Criteria returns the active filters.
func (h *History) Criteria() aggregate.Criteria {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.criteriaLocked()
}

func (h *History) criteriaLocked() aggregate.Criteria {
	return aggregate.Criteria{
		Kind:      h.kind,
		Period:    h.period,
		Reference: h.refs[h.period],
	}
}

// Visible returns the transactions passing both filters.
func (h *History) Visible() []model.Transaction {
	h.mu.Lock()
	defer h.mu.Unlock()
	return aggregate.Filter(h.transactions, h.criteriaLocked())
}

// Count returns how many transactions pass the filters.
func (h *History) Count() int {
	return len(h.Visible())
}
