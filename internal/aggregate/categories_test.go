package aggregate

import (
	"testing"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseByCategory(t *testing.T) {
	t.Run("sums expenses per name", func(t *testing.T) {
		txns := []model.Transaction{
			expense(1, "Food", "50", "2025-01-01"),
			expense(2, "Food", "30", "2025-01-02"),
			income(3, "Salary", "1000", "2025-01-03"),
		}

		got := ExpenseByCategory(txns)
		require.Len(t, got, 1)
		assert.Equal(t, "Food", got[0].Category)
		assert.True(t, got[0].Total.Equal(dec("80")))
	})

	t.Run("keeps first-seen order", func(t *testing.T) {
		txns := []model.Transaction{
			expense(1, "Transport", "5", "2025-01-01"),
			expense(2, "Food", "10", "2025-01-01"),
			expense(3, "Transport", "7", "2025-01-01"),
			expense(4, "Rent", "500", "2025-01-01"),
		}

		got := ExpenseByCategory(txns)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Transport", "Food", "Rent"}, []string{got[0].Category, got[1].Category, got[2].Category})
		assert.True(t, got[0].Total.Equal(dec("12")))
	})

	t.Run("ignores income", func(t *testing.T) {
		txns := []model.Transaction{
			income(1, "Food", "999", "2025-01-01"),
			expense(2, "Food", "1", "2025-01-01"),
		}

		got := ExpenseByCategory(txns)
		require.Len(t, got, 1)
		assert.True(t, got[0].Total.Equal(dec("1")))
	})

	t.Run("no expenses", func(t *testing.T) {
		assert.Empty(t, ExpenseByCategory(nil))
		assert.Empty(t, ExpenseByCategory([]model.Transaction{income(1, "Salary", "10", "2025-01-01")}))
	})

	t.Run("merges distinct categories sharing a name", func(t *testing.T) {
		a := expense(1, "Food", "10", "2025-01-01")
		b := expense(2, "Food", "15", "2025-01-01")
		require.NotEqual(t, a.CategoryID, b.CategoryID)

		got := ExpenseByCategory([]model.Transaction{a, b})
		require.Len(t, got, 1)
		assert.True(t, got[0].Total.Equal(dec("25")))
	})
}

func TestExpenseByCategoryID(t *testing.T) {
	a := expense(1, "Food", "10", "2025-01-01")
	b := expense(2, "Food", "15", "2025-01-01")
	c := expense(3, "Food", "5", "2025-01-01")
	c.CategoryID = a.CategoryID

	got := ExpenseByCategoryID([]model.Transaction{a, b, c})
	require.Len(t, got, 2)
	assert.Equal(t, a.CategoryID, got[0].CategoryID)
	assert.True(t, got[0].Total.Equal(dec("15")))
	assert.True(t, got[1].Total.Equal(dec("15")))
}

func TestRelativeToMax(t *testing.T) {
	totals := []CategoryTotal{
		{Category: "Food", Total: dec("50")},
		{Category: "Rent", Total: dec("200")},
		{Category: "Fun", Total: dec("0")},
	}

	got := RelativeToMax(totals)
	assert.InDeltaSlice(t, []float64{25, 100, 0}, got, 1e-9)
	assert.Equal(t, []float64{}, RelativeToMax(nil))
}

func TestCategoriesFor(t *testing.T) {
	cats := []model.Category{
		{ID: 1, Name: "Salary", Kind: model.CategoryIncome, Active: true},
		{ID: 2, Name: "Food", Kind: model.CategoryExpense, Active: true},
		{ID: 3, Name: "Misc", Kind: model.CategoryBoth, Active: true},
		{ID: 4, Name: "Old", Kind: model.CategoryExpense, Active: false},
	}

	ids := func(cs []model.Category) []int64 {
		var out []int64
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 3}, ids(CategoriesFor(cats, model.KindIncome)))
	assert.Equal(t, []int64{2, 3}, ids(CategoriesFor(cats, model.KindExpense)))

	counts := CountCategories(cats)
	assert.Equal(t, CategoryCounts{Total: 4, Active: 3, Income: 1, Expense: 2, Both: 1}, counts)
}
