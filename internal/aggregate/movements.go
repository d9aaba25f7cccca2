// Package aggregate turns transaction lists into display-ready values:
// signed movements, per-category expense totals, chart segments, budget
// flags and period filters. Every function is pure.
package aggregate

import (
	"strings"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/shopspring/decimal"
)

// PlaceholderTitle is used when a movement has neither a description nor a
// category name.
const PlaceholderTitle = "Movement"

// SignConvention maps a transaction kind to the sign applied to its amount.
type SignConvention struct {
	Income  int
	Expense int
}

// DefaultSigns makes expenses negative so that movements add up to the
// balance.
var DefaultSigns = SignConvention{Income: 1, Expense: -1}

func (c SignConvention) sign(k model.Kind) decimal.Decimal {
	s := c.Income
	if k == model.KindExpense {
		s = c.Expense
	}
	return decimal.NewFromInt(int64(s))
}

// Movement is a transaction prepared for a list row.
type Movement struct {
	Date         model.Date
	Title        string
	Category     string
	SignedAmount decimal.Decimal
	ID           int64
}

// SignedMovements maps each transaction to a Movement, preserving order.
func SignedMovements(txns []model.Transaction, conv SignConvention) []Movement {
	out := make([]Movement, 0, len(txns))
	for _, t := range txns {
		out = append(out, Movement{
			ID:           t.ID,
			Title:        movementTitle(t),
			Category:     t.CategoryName,
			SignedAmount: t.Amount.Mul(conv.sign(t.Kind)),
			Date:         t.Date,
		})
	}
	return out
}

func movementTitle(t model.Transaction) string {
	if d := strings.TrimSpace(t.Description); d != "" {
		return d
	}
	if t.CategoryName != "" {
		return t.CategoryName
	}
	return PlaceholderTitle
}

// Recent returns at most n movements from the head of the list.
func Recent(movements []Movement, n int) []Movement {
	if n < 0 {
		n = 0
	}
	if len(movements) <= n {
		return movements
	}
	return movements[:n]
}

// Sum adds the signed amounts of all movements.
func Sum(movements []Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.SignedAmount)
	}
	return total
}
