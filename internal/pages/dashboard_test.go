package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/session"
	"github.com/dmatrios/ahorrape-front/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryOf(txns []model.Transaction) *model.Summary {
	totals := aggregate.MonthTotals(txns, 2025, 1)
	var month []model.Transaction
	for _, t := range txns {
		if string(t.Date) >= "2025-01-01" {
			month = append(month, t)
		}
	}
	return &model.Summary{
		TotalIncome:         totals.Income,
		TotalExpense:        totals.Expense,
		Balance:             totals.Balance(),
		TransactionsOfMonth: month,
	}
}

func TestDashboard_Load(t *testing.T) {
	ctx := context.Background()
	fake := newFakeAPI()
	fake.categories = sampleCategories()
	fake.summary = summaryOf(sampleTransactions())
	deps, _ := loggedIn(t, fake, testUser)

	d := NewDashboard(deps, ChartOptions{})
	require.NoError(t, d.Load(ctx))

	view := d.View()
	assert.Equal(t, PhaseReady, view.Status.Phase)
	assert.True(t, dec("1000").Equal(view.Totals.Income))
	assert.True(t, dec("80").Equal(view.Totals.Expense))
	assert.True(t, dec("920").Equal(view.Balance))
	assert.False(t, view.AlertVisible)

	require.Len(t, view.Segments, 1)
	assert.Equal(t, "Food", view.Segments[0].Category)
	assert.InDelta(t, 0, view.Segments[0].StartAngle, 1e-9)
	assert.InDelta(t, 360, view.Segments[0].EndAngle, 1e-9)

	require.Len(t, view.Bars, 1)
	assert.InDelta(t, 100, view.Bars[0].Percent, 1e-9)

	require.Len(t, view.Recent, 3)
	assert.Equal(t, "lunch", view.Recent[0].Title)
	assert.True(t, dec("-50").Equal(view.Recent[0].SignedAmount))
	assert.True(t, view.Balance.Equal(aggregate.Sum(aggregate.SignedMovements(fake.summary.TransactionsOfMonth, aggregate.DefaultSigns))))

	assert.ElementsMatch(t, []string{"MonthlySummary", "ListCategories"}, fake.Calls())
}

func TestDashboard_OverBudgetAlert(t *testing.T) {
	fake := newFakeAPI()
	fake.summary = &model.Summary{TotalIncome: dec("100"), TotalExpense: dec("100.01"), Balance: dec("-0.01")}
	deps, _ := loggedIn(t, fake, testUser)

	d := NewDashboard(deps, ChartOptions{})
	require.NoError(t, d.Load(context.Background()))
	assert.True(t, d.View().AlertVisible)

	d.DismissAlert()
	assert.False(t, d.View().AlertVisible)

	require.NoError(t, d.Load(context.Background()))
	assert.True(t, d.View().AlertVisible, "alert comes back on reload")
}

func TestDashboard_UpgradePromptOncePerUser(t *testing.T) {
	ctx := context.Background()
	fake := newFakeAPI()
	deps, store := loggedIn(t, fake, testUser)

	first := NewDashboard(deps, ChartOptions{})
	require.NoError(t, first.Load(ctx))
	assert.True(t, first.View().UpgradeVisible)
	first.DismissUpgrade()
	assert.False(t, first.View().UpgradeVisible)

	second := NewDashboard(deps, ChartOptions{})
	require.NoError(t, second.Load(ctx))
	assert.False(t, second.View().UpgradeVisible)

	other := testUser
	other.ID = 8
	require.NoError(t, store.Save(ctx, "opaque-token", other))
	third := NewDashboard(deps, ChartOptions{})
	require.NoError(t, third.Load(ctx))
	assert.True(t, third.View().UpgradeVisible)
}

// closingSession closes the page while the upgrade flag is being read.
type closingSession struct {
	*session.Store
	onCheck func()
}

func (c *closingSession) UpgradePromptShown(ctx context.Context, userID int64) (bool, error) {
	c.onCheck()
	return c.Store.UpgradePromptShown(ctx, userID)
}

func TestDashboard_ClosedPageKeepsUpgradePrompt(t *testing.T) {
	ctx := context.Background()
	fake := newFakeAPI()
	deps, store := loggedIn(t, fake, testUser)

	d := NewDashboard(deps, ChartOptions{})
	deps.Session = &closingSession{Store: store, onCheck: d.Close}
	d.deps = deps
	assert.ErrorIs(t, d.Load(ctx), ErrClosed)

	shown, err := store.UpgradePromptShown(ctx, testUser.ID)
	require.NoError(t, err)
	assert.False(t, shown, "prompt not recorded for a page that never rendered")

	next := NewDashboard(Deps{API: fake, Session: store, Now: deps.Now}, ChartOptions{})
	require.NoError(t, next.Load(ctx))
	assert.True(t, next.View().UpgradeVisible)
}

func TestDashboard_NoUpgradePromptForPaidPlans(t *testing.T) {
	pro := testUser
	pro.Plan = model.PlanPro
	deps, _ := loggedIn(t, newFakeAPI(), pro)

	d := NewDashboard(deps, ChartOptions{})
	require.NoError(t, d.Load(context.Background()))
	assert.False(t, d.View().UpgradeVisible)
}

func TestDashboard_LoadFailures(t *testing.T) {
	t.Run("summary failure fails the page", func(t *testing.T) {
		fake := newFakeAPI()
		fake.errSummary = errors.New("connection refused")
		deps, _ := loggedIn(t, fake, testUser)

		d := NewDashboard(deps, ChartOptions{})
		require.Error(t, d.Load(context.Background()))
		st := d.Status()
		assert.Equal(t, PhaseFailed, st.Phase)
		assert.Equal(t, common.MsgConnection, st.Message)

		d.DismissError()
		assert.Equal(t, PhaseIdle, d.Status().Phase)
	})

	t.Run("category failure leaves quick entry empty", func(t *testing.T) {
		fake := newFakeAPI()
		fake.errListCategories = errors.New("boom")
		deps, _ := loggedIn(t, fake, testUser)

		d := NewDashboard(deps, ChartOptions{})
		require.NoError(t, d.Load(context.Background()))
		assert.Empty(t, d.QuickCategories(model.KindExpense))
	})

	t.Run("no session", func(t *testing.T) {
		fake := newFakeAPI()
		deps, _ := anonymous(fake)

		d := NewDashboard(deps, ChartOptions{})
		err := d.Load(context.Background())
		require.ErrorIs(t, err, common.ErrNotAuthenticated)
		assert.Empty(t, fake.Calls())
	})
}

func TestDashboard_GroupByID(t *testing.T) {
	fake := newFakeAPI()
	fake.summary = &model.Summary{
		TotalIncome:  dec("0"),
		TotalExpense: dec("30"),
		Balance:      dec("-30"),
		TransactionsOfMonth: []model.Transaction{
			{ID: 1, CategoryID: 1, CategoryName: "Misc", Kind: model.KindExpense, Amount: dec("10"), Date: "2025-01-02"},
			{ID: 2, CategoryID: 2, CategoryName: "Misc", Kind: model.KindExpense, Amount: dec("20"), Date: "2025-01-03"},
		},
	}
	deps, _ := loggedIn(t, fake, testUser)

	byName := NewDashboard(deps, ChartOptions{GroupBy: GroupByName})
	require.NoError(t, byName.Load(context.Background()))
	assert.Len(t, byName.View().Bars, 1)

	byID := NewDashboard(deps, ChartOptions{GroupBy: GroupByID})
	require.NoError(t, byID.Load(context.Background()))
	assert.Len(t, byID.View().Bars, 2)
}

func TestDashboard_QuickEntry(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Dashboard, *fakeAPI) {
		fake := newFakeAPI()
		fake.categories = sampleCategories()
		deps, _ := loggedIn(t, fake, testUser)
		d := NewDashboard(deps, ChartOptions{})
		require.NoError(t, d.Load(ctx))
		return d, fake
	}

	t.Run("categories follow the kind", func(t *testing.T) {
		d, _ := setup(t)
		names := func(cats []model.Category) []string {
			var out []string
			for _, c := range cats {
				out = append(out, c.Name)
			}
			return out
		}
		assert.Equal(t, []string{"Food", "Gifts"}, names(d.QuickCategories(model.KindExpense)))
		assert.Equal(t, []string{"Salary", "Gifts"}, names(d.QuickCategories(model.KindIncome)))
	})

	for _, amount := range []string{"0", "-5", "abc", ""} {
		t.Run("rejects amount "+amount, func(t *testing.T) {
			d, fake := setup(t)
			err := d.QuickEntry(ctx, validate.TransactionForm{Kind: model.KindExpense, CategoryID: 1, Amount: amount, Date: "2025-01-15"})
			require.ErrorIs(t, err, validate.ErrValidation)
			assert.Equal(t, validate.MsgInvalidAmount, d.FormError())
			assert.Zero(t, fake.count("CreateTransaction"))
		})
	}

	t.Run("rejects incompatible category", func(t *testing.T) {
		d, fake := setup(t)
		err := d.QuickEntry(ctx, validate.TransactionForm{Kind: model.KindIncome, CategoryID: 1, Amount: "10", Date: "2025-01-15"})
		require.Error(t, err)
		assert.Zero(t, fake.count("CreateTransaction"))
	})

	t.Run("saves and reloads", func(t *testing.T) {
		d, fake := setup(t)
		err := d.QuickEntry(ctx, validate.TransactionForm{Kind: model.KindExpense, CategoryID: 1, Amount: "12,50", Date: "2025-01-15", Description: " taxi "})
		require.NoError(t, err)

		require.Len(t, fake.created, 1)
		assert.Equal(t, int64(7), fake.created[0].UserID)
		assert.True(t, dec("12.5").Equal(fake.created[0].Amount))
		assert.Equal(t, "taxi", fake.created[0].Description)
		assert.Equal(t, 2, fake.count("MonthlySummary"))
		assert.Equal(t, MsgMovementSaved, d.Notice())
	})
}

func TestDashboard_CloseDiscardsLateResults(t *testing.T) {
	fake := newFakeAPI()
	fake.block = make(chan struct{})
	deps, _ := loggedIn(t, fake, testUser)
	d := NewDashboard(deps, ChartOptions{})

	errc := make(chan error, 1)
	go func() { errc <- d.Load(context.Background()) }()

	require.Eventually(t, func() bool { return fake.count("MonthlySummary") == 1 }, time.Second, time.Millisecond)
	d.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("load did not abort after Close")
	}
	assert.NotEqual(t, PhaseReady, d.View().Status.Phase)
	assert.Empty(t, d.View().Segments)
}
