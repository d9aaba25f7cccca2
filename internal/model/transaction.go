package model

import "github.com/shopspring/decimal"

// Transaction is a single income or expense owned by one user.
type Transaction struct {
	Date         Date            `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryName string          `json:"categoryName"`
	Description  string          `json:"description"`
	Kind         Kind            `json:"kind"`
	UserName     string          `json:"userName,omitempty"`
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	CategoryID   int64           `json:"categoryId"`
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}
