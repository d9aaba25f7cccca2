package aggregate

import (
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed expense of one category.
type CategoryTotal struct {
	Category   string
	Total      decimal.Decimal
	CategoryID int64
}

// ExpenseByCategory sums expenses per category name. Buckets appear in the
// order their name is first seen. Distinct categories that share a display
// name land in the same bucket.
func ExpenseByCategory(txns []model.Transaction) []CategoryTotal {
	return groupExpenses(txns, func(t model.Transaction) any { return t.CategoryName })
}

// ExpenseByCategoryID sums expenses per category identifier and labels each
// bucket with the first name seen for it.
func ExpenseByCategoryID(txns []model.Transaction) []CategoryTotal {
	return groupExpenses(txns, func(t model.Transaction) any { return t.CategoryID })
}

func groupExpenses(txns []model.Transaction, key func(model.Transaction) any) []CategoryTotal {
	index := make(map[any]int)
	var out []CategoryTotal
	for _, t := range txns {
		if t.Kind != model.KindExpense {
			continue
		}
		k := key(t)
		if i, ok := index[k]; ok {
			out[i].Total = out[i].Total.Add(t.Amount)
			continue
		}
		index[k] = len(out)
		out = append(out, CategoryTotal{
			Category:   t.CategoryName,
			CategoryID: t.CategoryID,
			Total:      t.Amount,
		})
	}
	return out
}

// GrandTotal adds all category totals.
func GrandTotal(totals []CategoryTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, ct := range totals {
		sum = sum.Add(ct.Total)
	}
	return sum
}

// RelativeToMax returns each total as a percentage (0-100) of the largest
// total, for bar widths. A list whose largest total is zero yields zeros.
func RelativeToMax(totals []CategoryTotal) []float64 {
	largest := decimal.Zero
	for _, ct := range totals {
		if ct.Total.GreaterThan(largest) {
			largest = ct.Total
		}
	}
	out := make([]float64, len(totals))
	if !largest.IsPositive() {
		return out
	}
	for i, ct := range totals {
		out[i] = ct.Total.Div(largest).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return out
}

// CategoriesFor returns the active categories a transaction of kind k may
// reference, in input order.
func CategoriesFor(categories []model.Category, k model.Kind) []model.Category {
	var out []model.Category
	for _, c := range categories {
		if c.Active && c.Accepts(k) {
			out = append(out, c)
		}
	}
	return out
}

// CategoryCounts summarizes a category list for the categories page header.
type CategoryCounts struct {
	Total   int
	Active  int
	Income  int
	Expense int
	Both    int
}

// CountCategories tallies categories by state and kind.
func CountCategories(categories []model.Category) CategoryCounts {
	c := CategoryCounts{Total: len(categories)}
	for _, cat := range categories {
		if cat.Active {
			c.Active++
		}
		switch cat.Kind {
		case model.CategoryIncome:
			c.Income++
		case model.CategoryExpense:
			c.Expense++
		case model.CategoryBoth:
			c.Both++
		}
	}
	return c
}
