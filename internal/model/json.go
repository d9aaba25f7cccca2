package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Number encodes d as a bare JSON number, the form the backend reads.
// decimal.Decimal quotes itself by default.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// MarshalJSON writes the amount as a JSON number.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain: plain(t), Amount: Number(t.Amount)})
}

// MarshalJSON writes the totals as JSON numbers.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	return json.Marshal(struct {
		plain
		TotalIncome  json.Number `json:"totalIncome"`
		TotalExpense json.Number `json:"totalExpense"`
		Balance      json.Number `json:"balance"`
	}{
		plain:        plain(s),
		TotalIncome:  Number(s.TotalIncome),
		TotalExpense: Number(s.TotalExpense),
		Balance:      Number(s.Balance),
	})
}
