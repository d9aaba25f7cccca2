package aggregate

import (
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(id int64, category string, amount string, date model.Date) model.Transaction {
	return model.Transaction{
		ID:           id,
		CategoryID:   id * 10,
		CategoryName: category,
		Kind:         model.KindExpense,
		Amount:       dec(amount),
		Date:         date,
	}
}

func income(id int64, category string, amount string, date model.Date) model.Transaction {
	return model.Transaction{
		ID:           id,
		CategoryID:   id * 10,
		CategoryName: category,
		Kind:         model.KindIncome,
		Amount:       dec(amount),
		Date:         date,
	}
}
