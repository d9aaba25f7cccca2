package model

import "github.com/shopspring/decimal"

// Summary is the server-computed monthly view for one user.
type Summary struct {
	TotalIncome         decimal.Decimal `json:"totalIncome"`
	TotalExpense        decimal.Decimal `json:"totalExpense"`
	Balance             decimal.Decimal `json:"balance"`
	TransactionsOfMonth []Transaction   `json:"transactionsOfMonth"`
}

// Consistent reports whether Balance equals TotalIncome - TotalExpense.
func (s Summary) Consistent() bool {
	return s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpense))
}
