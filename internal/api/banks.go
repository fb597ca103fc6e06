package api

import (
	"context"
	"fmt"
	"net/http"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

func (c *Client) LoadBanks(ctx context.Context, token string) ([]core.Bank, error) {
	var envelope listEnvelope[core.Bank]
	err := c.do(ctx, call{
		resource: "banks",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/banks",
		token:    token,
		fallback: "Failed to load banks. Please try again.",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) CreateBank(ctx context.Context, token string, form core.BankForm) error {
	return c.do(ctx, call{
		resource: "banks",
		action:   log.OpCreate,
		method:   http.MethodPost,
		path:     "/banks",
		token:    token,
		body:     form,
		fallback: "Failed to save bank.",
	}, nil)
}

func (c *Client) UpdateBank(ctx context.Context, token string, id int64, form core.BankForm) error {
	return c.do(ctx, call{
		resource: "banks",
		action:   log.OpUpdate,
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/banks/%d", id),
		token:    token,
		body:     form,
		fallback: "Failed to save bank.",
	}, nil)
}

func (c *Client) DeleteBank(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{
		resource: "banks",
		action:   log.OpDelete,
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/banks/%d", id),
		token:    token,
		fallback: "Failed to delete bank. Please try again.",
	}, nil)
}
