package api

import (
	"context"
	"fmt"
	"net/http"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

func (c *Client) LoadTransactions(ctx context.Context, token string) ([]core.Transaction, error) {
	var envelope listEnvelope[core.Transaction]
	err := c.do(ctx, call{
		resource: "transactions",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/transactions",
		token:    token,
		fallback: "Failed to load transactions. Please try again.",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) CreateTransaction(ctx context.Context, token string, form core.TransactionForm) error {
	return c.do(ctx, call{
		resource: "transactions",
		action:   log.OpCreate,
		method:   http.MethodPost,
		path:     "/transactions",
		token:    token,
		body:     form,
		fallback: "Failed to save transaction.",
	}, nil)
}

func (c *Client) UpdateTransaction(ctx context.Context, token string, id int64, form core.TransactionForm) error {
	return c.do(ctx, call{
		resource: "transactions",
		action:   log.OpUpdate,
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/transactions/%d", id),
		token:    token,
		body:     form,
		fallback: "Failed to save transaction.",
	}, nil)
}

func (c *Client) DeleteTransaction(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{
		resource: "transactions",
		action:   log.OpDelete,
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/transactions/%d", id),
		token:    token,
		fallback: "Failed to delete transaction. Please try again.",
	}, nil)
}
