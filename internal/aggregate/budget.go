package aggregate

import (
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/shopspring/decimal"
)

// IsOverBudget reports whether expenses strictly exceed income.
func IsOverBudget(totalIncome, totalExpense decimal.Decimal) bool {
	return totalExpense.GreaterThan(totalIncome)
}

// Totals holds income and expense sums for a set of transactions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance returns Income - Expense.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// OverBudget applies IsOverBudget to the totals.
func (t Totals) OverBudget() bool {
	return IsOverBudget(t.Income, t.Expense)
}

// MonthTotals sums the transactions dated in the given year and month.
// Transactions with malformed dates are skipped.
func MonthTotals(txns []model.Transaction, year, month int) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txns {
		day, err := t.Date.Time()
		if err != nil || day.Year() != year || int(day.Month()) != month {
			continue
		}
		switch t.Kind {
		case model.KindIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case model.KindExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	return totals
}
