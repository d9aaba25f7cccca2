package sheets

import (
	"fmt"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/aggregate"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/shopspring/decimal"
)

// Report is one user's month, ready to be laid out.
type Report struct {
	Owner      string
	Totals     aggregate.Totals
	Balance    decimal.Decimal
	ByCategory []aggregate.CategoryTotal
	Movements  []aggregate.Movement
	Year       int
	Month      time.Month
}

// NewReport derives the report from a monthly summary. groupByID selects
// identifier grouping for the category breakdown.
func NewReport(user model.User, year int, month time.Month, summary model.Summary, groupByID bool) Report {
	byCategory := aggregate.ExpenseByCategory(summary.TransactionsOfMonth)
	if groupByID {
		byCategory = aggregate.ExpenseByCategoryID(summary.TransactionsOfMonth)
	}
	return Report{
		Owner:      user.Name,
		Year:       year,
		Month:      month,
		Totals:     aggregate.Totals{Income: summary.TotalIncome, Expense: summary.TotalExpense},
		Balance:    summary.Balance,
		ByCategory: byCategory,
		Movements:  aggregate.SignedMovements(summary.TransactionsOfMonth, aggregate.DefaultSigns),
	}
}

// Period formats the report month, e.g. "January 2025".
func (r Report) Period() string {
	return fmt.Sprintf("%s %d", r.Month, r.Year)
}

// Rows holds the cell values of each tab.
type Rows struct {
	Summary    [][]any
	ByCategory [][]any
	Movements  [][]any
}

// PrepareRows lays the report out as cell values. Amounts are numbers so
// that the spreadsheet can format and sum them.
func PrepareRows(r Report, currency string) Rows {
	overBudget := "No"
	if r.Totals.OverBudget() {
		overBudget = "Yes"
	}

	summary := [][]any{
		{"AhorraPE monthly report", r.Period()},
		{},
		{"Owner", r.Owner},
		{"Currency", currency},
		{"Total income", cell(r.Totals.Income)},
		{"Total expense", cell(r.Totals.Expense)},
		{"Balance", cell(r.Balance)},
		{"Over budget", overBudget},
		{"Movements", len(r.Movements)},
	}

	byCategory := make([][]any, 0, len(r.ByCategory)+2)
	byCategory = append(byCategory, []any{"Category", "Amount", "Share %"})
	segments := aggregate.ProportionalSegments(r.ByCategory, nil)
	for i, ct := range r.ByCategory {
		share := 0.0
		if i < len(segments) {
			share = round2(segments[i].Percent)
		}
		byCategory = append(byCategory, []any{ct.Category, cell(ct.Total), share})
	}
	byCategory = append(byCategory, []any{"Total", cell(aggregate.GrandTotal(r.ByCategory)), ""})

	movements := make([][]any, 0, len(r.Movements)+1)
	movements = append(movements, []any{"Date", "Description", "Category", "Amount"})
	for _, m := range r.Movements {
		movements = append(movements, []any{m.Date.String(), m.Title, m.Category, cell(m.SignedAmount)})
	}

	return Rows{Summary: summary, ByCategory: byCategory, Movements: movements}
}

func cell(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
