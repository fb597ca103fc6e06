package api

import (
	"context"
	"fmt"
	"net/http"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

func (c *Client) LoadCurrencies(ctx context.Context, token string) ([]core.Currency, error) {
	var envelope listEnvelope[core.Currency]
	err := c.do(ctx, call{
		resource: "currencies",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/currencies",
		token:    token,
		fallback: "Failed to load currencies. Please try again.",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) CreateCurrency(ctx context.Context, token string, form core.CurrencyForm) error {
	return c.do(ctx, call{
		resource: "currencies",
		action:   log.OpCreate,
		method:   http.MethodPost,
		path:     "/currencies",
		token:    token,
		body:     form,
		fallback: "Failed to save currency.",
	}, nil)
}

func (c *Client) UpdateCurrency(ctx context.Context, token string, id int64, form core.CurrencyForm) error {
	return c.do(ctx, call{
		resource: "currencies",
		action:   log.OpUpdate,
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/currencies/%d", id),
		token:    token,
		body:     form,
		fallback: "Failed to save currency.",
	}, nil)
}

func (c *Client) DeleteCurrency(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{
		resource: "currencies",
		action:   log.OpDelete,
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/currencies/%d", id),
		token:    token,
		fallback: "Failed to delete currency. Please try again.",
	}, nil)
}
