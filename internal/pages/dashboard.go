package pages

import (
	"context"
	"strings"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RecentCount is how many movements the dashboard lists.
const RecentCount = 4

// MsgMovementSaved confirms a quick entry.
const MsgMovementSaved = "Movement saved."

// Chart grouping modes.
const (
	GroupByName = "name"
	GroupByID   = "id"
)

// ChartOptions controls how expenses are grouped and colored.
type ChartOptions struct {
	GroupBy string
	Palette []string
}

// Bar is one row of the per-category expense bars.
type Bar struct {
	aggregate.CategoryTotal
	Percent float64
}

// DashboardView is a consistent copy of everything the dashboard renders.
type DashboardView struct {
	Status         Status
	User           model.User
	Totals         aggregate.Totals
	Balance        decimal.Decimal
	Segments       []aggregate.Segment
	Bars           []Bar
	Recent         []aggregate.Movement
	AlertVisible   bool
	UpgradeVisible bool
}

// Dashboard backs the monthly overview.
type Dashboard struct {
	page
	opts           ChartOptions
	user           model.User
	summary        *model.Summary
	categories     []model.Category
	alertVisible   bool
	upgradeVisible bool
}

// NewDashboard creates a Dashboard controller.
func NewDashboard(deps Deps, opts ChartOptions) *Dashboard {
	d := &Dashboard{opts: opts}
	d.init(deps)
	return d
}

// Load fetches the current month's summary and the category list together.
// The page is ready only when both have resolved. A failed category fetch
// leaves the quick entry without choices but does not fail the page.
func (d *Dashboard) Load(ctx context.Context) error {
	user, err := d.sessionUser(ctx)
	if err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.failLoad(err, MsgLoadSummary)
		return err
	}

	d.beginLoad()
	ctx, done := d.life.Bind(ctx)
	defer done()

	now := d.deps.now()
	var (
		summary    *model.Summary
		categories []model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := d.deps.API.MonthlySummary(gctx, user.ID, now.Year(), now.Month())
		if err != nil {
			return err
		}
		summary = s
		return nil
	})
	g.Go(func() error {
		c, err := d.deps.API.ListCategories(gctx)
		if err != nil {
			d.deps.logger().Warn("Failed to load categories for quick entry", "error", err)
			return nil
		}
		categories = c
		return nil
	})
	err = g.Wait()

	upgrade := false
	if err == nil && user.IsFree() {
		upgrade = d.upgradePending(ctx, user.ID)
	}

	d.mu.Lock()
	if d.life.Closed() {
		d.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		d.failLoad(err, MsgLoadSummary)
		d.mu.Unlock()
		return err
	}

	d.user = *user
	d.summary = summary
	d.categories = categories
	d.alertVisible = aggregate.IsOverBudget(summary.TotalIncome, summary.TotalExpense)
	d.upgradeVisible = d.upgradeVisible || upgrade
	d.status = Status{Phase: PhaseReady}
	d.mu.Unlock()

	// Recorded only once the prompt is part of the page state.
	if upgrade {
		if err := d.deps.Session.MarkUpgradePromptShown(ctx, user.ID); err != nil {
			d.deps.logger().Warn("Failed to record upgrade prompt", "error", err)
		}
	}
	return nil
}

// upgradePending reports whether the upgrade prompt has not been shown to
// the user yet.
func (d *Dashboard) upgradePending(ctx context.Context, userID int64) bool {
	shown, err := d.deps.Session.UpgradePromptShown(ctx, userID)
	return err == nil && !shown
}

// View derives the chart, bars and recent movements from the loaded data.
func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()

	view := DashboardView{
		Status:         d.status,
		User:           d.user,
		AlertVisible:   d.alertVisible,
		UpgradeVisible: d.upgradeVisible,
		Totals:         aggregate.Totals{Income: decimal.Zero, Expense: decimal.Zero},
		Balance:        decimal.Zero,
	}
	if d.summary == nil {
		return view
	}

	view.Totals = aggregate.Totals{Income: d.summary.TotalIncome, Expense: d.summary.TotalExpense}
	view.Balance = d.summary.Balance

	totals := d.expenseTotals(d.summary.TransactionsOfMonth)
	view.Segments = aggregate.ProportionalSegments(totals, d.opts.Palette)
	for i, pct := range aggregate.RelativeToMax(totals) {
		view.Bars = append(view.Bars, Bar{CategoryTotal: totals[i], Percent: pct})
	}
	view.Recent = aggregate.Recent(aggregate.SignedMovements(d.summary.TransactionsOfMonth, aggregate.DefaultSigns), RecentCount)
	return view
}

func (d *Dashboard) expenseTotals(txns []model.Transaction) []aggregate.CategoryTotal {
	if strings.EqualFold(d.opts.GroupBy, GroupByID) {
		return aggregate.ExpenseByCategoryID(txns)
	}
	return aggregate.ExpenseByCategory(txns)
}

// DismissAlert hides the over-budget alert until the next load.
func (d *Dashboard) DismissAlert() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alertVisible = false
}

// DismissUpgrade hides the upgrade prompt.
func (d *Dashboard) DismissUpgrade() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.upgradeVisible = false
}

// QuickCategories lists the categories a quick entry of kind k may use.
func (d *Dashboard) QuickCategories(k model.Kind) []model.Category {
	d.mu.Lock()
	defer d.mu.Unlock()
	return aggregate.CategoriesFor(d.categories, k)
}

// QuickEntry validates and records a movement, then reloads the summary.
func (d *Dashboard) QuickEntry(ctx context.Context, form validate.TransactionForm) error {
	d.beginSubmit()

	d.mu.Lock()
	choices := aggregate.CategoriesFor(d.categories, form.Kind)
	userID := d.user.ID
	d.mu.Unlock()

	in, err := form.Validate(choices)
	if err != nil {
		return d.reject(err, "")
	}

	bound, done := d.life.Bind(ctx)
	_, err = d.deps.API.CreateTransaction(bound, api.CreateTransactionRequest{
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	})
	done()
	if d.life.Closed() {
		return ErrClosed
	}
	if err != nil {
		return d.reject(err, MsgSaveTransaction)
	}

	d.mu.Lock()
	d.notice = MsgMovementSaved
	d.mu.Unlock()
	return d.Load(ctx)
}
