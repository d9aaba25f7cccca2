package pages

import (
	"context"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"golang.org/x/sync/errgroup"
)

// Confirmations shown after a transaction change.
const (
	MsgTransactionCreated = "Movement saved."
	MsgTransactionUpdated = "Movement updated."
	MsgTransactionDeleted = "Movement deleted."
)

// Transactions backs the movement list with its create, edit and delete
// forms.
type Transactions struct {
	page
	user          *model.User
	transactions  []model.Transaction
	categories    []model.Category
	kind          aggregate.KindFilter
	pendingDelete int64
}

// NewTransactions creates a Transactions controller.
func NewTransactions(deps Deps) *Transactions {
	t := &Transactions{kind: aggregate.KindAll}
	t.init(deps)
	return t
}

// Load fetches the user's transactions and the categories together. Either
// failure fails the page and cancels the other request.
func (t *Transactions) Load(ctx context.Context) error {
	user, err := t.sessionUser(ctx)
	if err != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.failLoad(err, MsgLoadTransactions)
		return err
	}

	t.beginLoad()
	ctx, done := t.life.Bind(ctx)
	defer done()

	var (
		txns       []model.Transaction
		categories []model.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = t.deps.API.ListTransactions(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = t.deps.API.ListCategories(gctx)
		return err
	})
	err = g.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		t.failLoad(err, MsgLoadTransactions)
		return err
	}
	t.user = user
	t.transactions = txns
	t.categories = categories
	t.status = Status{Phase: PhaseReady}
	return nil
}

// reloadTransactions refreshes the list after a change.
func (t *Transactions) reloadTransactions(ctx context.Context, userID int64) error {
	ctx, done := t.life.Bind(ctx)
	defer done()

	txns, err := t.deps.API.ListTransactions(ctx, userID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		t.failLoad(err, MsgLoadTransactions)
		return err
	}
	t.transactions = txns
	return nil
}

// SetKindFilter changes which kinds are listed.
func (t *Transactions) SetKindFilter(f aggregate.KindFilter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.kind = f
}

// KindFilter returns the current kind filter.
func (t *Transactions) KindFilter() aggregate.KindFilter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.kind
}

// Visible returns the transactions that pass the kind filter.
func (t *Transactions) Visible() []model.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return aggregate.FilterByKind(t.transactions, t.kind)
}

// Get returns the loaded transaction with id.
func (t *Transactions) Get(id int64) (model.Transaction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.findLocked(id)
}

func (t *Transactions) findLocked(id int64) (model.Transaction, bool) {
	for _, txn := range t.transactions {
		if txn.ID == id {
			return txn, true
		}
	}
	return model.Transaction{}, false
}

// MonthTotals sums the loaded transactions of the current month.
func (t *Transactions) MonthTotals() aggregate.Totals {
	now := t.deps.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	return aggregate.MonthTotals(t.transactions, now.Year(), int(now.Month()))
}

// SelectableCategories lists the categories a transaction of kind k may use.
func (t *Transactions) SelectableCategories(k model.Kind) []model.Category {
	t.mu.Lock()
	defer t.mu.Unlock()
	return aggregate.CategoriesFor(t.categories, k)
}

// Create validates and records a transaction, then reloads the list.
func (t *Transactions) Create(ctx context.Context, form validate.TransactionForm) error {
	t.beginSubmit()

	t.mu.Lock()
	user := t.user
	choices := aggregate.CategoriesFor(t.categories, form.Kind)
	t.mu.Unlock()

	if user == nil {
		return t.reject(common.ErrNotAuthenticated, "")
	}
	in, err := form.Validate(choices)
	if err != nil {
		return t.reject(err, "")
	}

	bound, done := t.life.Bind(ctx)
	_, err = t.deps.API.CreateTransaction(bound, api.CreateTransactionRequest{
		UserID:      user.ID,
		CategoryID:  in.CategoryID,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	})
	done()
	if t.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		return t.reject(err, MsgSaveTransaction)
	}

	t.mu.Lock()
	t.notice = MsgTransactionCreated
	t.mu.Unlock()
	return t.reloadTransactions(ctx, user.ID)
}

// Update edits category, amount, date and description of a transaction.
// The kind cannot change, so the form's kind is replaced by the stored one
// and the category must accept it.
func (t *Transactions) Update(ctx context.Context, id int64, form validate.TransactionForm) error {
	t.beginSubmit()

	t.mu.Lock()
	user := t.user
	current, ok := t.findLocked(id)
	categories := append([]model.Category(nil), t.categories...)
	t.mu.Unlock()

	if user == nil {
		return t.reject(common.ErrNotAuthenticated, "")
	}
	if !ok {
		return t.reject(common.ErrNotFound, MsgSaveTransaction)
	}

	form.Kind = current.Kind
	in, err := form.Validate(categories)
	if err != nil {
		return t.reject(err, "")
	}

	bound, done := t.life.Bind(ctx)
	_, err = t.deps.API.UpdateTransaction(bound, id, api.UpdateTransactionRequest{
		CategoryID:  &in.CategoryID,
		Amount:      &in.Amount,
		Date:        &in.Date,
		Description: &in.Description,
	})
	done()
	if t.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		return t.reject(err, MsgSaveTransaction)
	}

	t.mu.Lock()
	t.notice = MsgTransactionUpdated
	t.mu.Unlock()
	return t.reloadTransactions(ctx, user.ID)
}

// AskDelete marks a transaction for deletion pending confirmation.
func (t *Transactions) AskDelete(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingDelete = id
}

// PendingDelete returns the transaction awaiting confirmation, if any.
func (t *Transactions) PendingDelete() (model.Transaction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pendingDelete == 0 {
		return model.Transaction{}, false
	}
	return t.findLocked(t.pendingDelete)
}

// CancelDelete drops the pending deletion.
func (t *Transactions) CancelDelete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingDelete = 0
}

// ConfirmDelete deletes the pending transaction and reloads the list.
// Without a pending deletion it does nothing.
func (t *Transactions) ConfirmDelete(ctx context.Context) error {
	t.beginSubmit()

	t.mu.Lock()
	id := t.pendingDelete
	user := t.user
	t.pendingDelete = 0
	t.mu.Unlock()

	if id == 0 {
		return nil
	}
	if user == nil {
		return t.reject(common.ErrNotAuthenticated, "")
	}

	bound, done := t.life.Bind(ctx)
	err := t.deps.API.DeleteTransaction(bound, id)
	done()
	if t.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		return t.reject(err, MsgDeleteTransaction)
	}

	t.mu.Lock()
	t.notice = MsgTransactionDeleted
	t.mu.Unlock()
	return t.reloadTransactions(ctx, user.ID)
}
