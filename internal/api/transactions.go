package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body of POST /transactions.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        model.Date      `json:"date"`
	Description string          `json:"description"`
	Kind        model.Kind      `json:"kind"`
	UserID      int64           `json:"userId"`
	CategoryID  int64           `json:"categoryId"`
}

// UpdateTransactionRequest is a partial update; nil fields are left
// unchanged. The kind of a transaction cannot be changed.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *model.Date      `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *int64           `json:"categoryId,omitempty"`
}

// MarshalJSON writes the amount as a JSON number.
func (r CreateTransactionRequest) MarshalJSON() ([]byte, error) {
	type plain CreateTransactionRequest
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain: plain(r), Amount: model.Number(r.Amount)})
}

// MarshalJSON writes the amount, when set, as a JSON number.
func (r UpdateTransactionRequest) MarshalJSON() ([]byte, error) {
	type plain UpdateTransactionRequest
	out := struct {
		plain
		Amount *json.Number `json:"amount,omitempty"`
	}{plain: plain(r)}
	if r.Amount != nil {
		n := model.Number(*r.Amount)
		out.Amount = &n
	}
	return json.Marshal(out)
}

// ListTransactions returns the transactions of a user.
func (c *Client) ListTransactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/user/%d", userID), nil, nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*model.Transaction, error) {
	var txn model.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateTransaction applies a partial update and returns the stored
// transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, req UpdateTransactionRequest) (*model.Transaction, error) {
	var txn model.Transaction
	if err := c.do(ctx, http.MethodPut, transactionPath(id), nil, req, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// DeleteTransaction removes a transaction. The backend is expected to soft
// delete it.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, transactionPath(id), nil, nil, nil)
}

func transactionPath(id int64) string {
	return fmt.Sprintf("/transactions/%d", id)
}
