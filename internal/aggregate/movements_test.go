package aggregate

import (
	"testing"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedMovements(t *testing.T) {
	txns := []model.Transaction{
		income(1, "Salary", "1000", "2025-01-02"),
		expense(2, "Food", "50", "2025-01-03"),
		{ID: 3, CategoryName: "", Kind: model.KindExpense, Amount: dec("5"), Date: "2025-01-04"},
	}
	txns[1].Description = "  groceries  "

	got := SignedMovements(txns, DefaultSigns)
	require.Len(t, got, 3)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Salary", got[0].Title)
	assert.True(t, got[0].SignedAmount.Equal(dec("1000")))

	assert.Equal(t, "groceries", got[1].Title)
	assert.Equal(t, "Food", got[1].Category)
	assert.True(t, got[1].SignedAmount.Equal(dec("-50")))
	assert.Equal(t, model.Date("2025-01-03"), got[1].Date)

	assert.Equal(t, PlaceholderTitle, got[2].Title)
	assert.True(t, got[2].SignedAmount.Equal(dec("-5")))
}

func TestSignedMovements_SumMatchesBalance(t *testing.T) {
	lists := [][]model.Transaction{
		nil,
		{income(1, "Salary", "1000", "2025-01-01")},
		{expense(1, "Food", "0.10", "2025-01-01"), expense(2, "Food", "0.20", "2025-01-01")},
		{
			income(1, "Salary", "2500.75", "2025-01-01"),
			expense(2, "Rent", "1200", "2025-01-02"),
			expense(3, "Food", "333.33", "2025-01-03"),
			income(4, "Gift", "99.99", "2025-01-04"),
		},
	}

	for _, txns := range lists {
		totals := MonthTotals(txns, 2025, 1)
		sum := Sum(SignedMovements(txns, DefaultSigns))
		assert.True(t, sum.Equal(totals.Balance()), "sum %s balance %s", sum, totals.Balance())
	}
}

func TestSignedMovements_CustomConvention(t *testing.T) {
	txns := []model.Transaction{income(1, "Salary", "10", "2025-01-01"), expense(2, "Food", "4", "2025-01-01")}

	got := SignedMovements(txns, SignConvention{Income: -1, Expense: 1})
	assert.True(t, got[0].SignedAmount.Equal(dec("-10")))
	assert.True(t, got[1].SignedAmount.Equal(dec("4")))
}

func TestRecent(t *testing.T) {
	movements := SignedMovements([]model.Transaction{
		income(1, "A", "1", "2025-01-01"),
		income(2, "B", "1", "2025-01-01"),
		income(3, "C", "1", "2025-01-01"),
	}, DefaultSigns)

	assert.Len(t, Recent(movements, 2), 2)
	assert.Len(t, Recent(movements, 4), 3)
	assert.Empty(t, Recent(movements, -1))
	assert.Equal(t, int64(1), Recent(movements, 1)[0].ID)
}
