package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

// LoadGroupedAccounts fetches the pre-aggregated balances for one
// organizational tab (e.g. "secretariat" or "project"). The backend keys the
// payload by the requested category.
func (c *Client) LoadGroupedAccounts(ctx context.Context, token, categoryKey string) (core.GroupedAccounts, error) {
	var payload map[string]core.GroupedAccounts
	err := c.do(ctx, call{
		resource: "dashboard",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/dashboard/grouped-accounts/" + url.PathEscape(categoryKey),
		token:    token,
		fallback: "Failed to load dashboard data. Please try again.",
	}, &payload)
	if err != nil {
		return nil, err
	}
	return payload[categoryKey], nil
}

// LoadAccountSummary fetches the server-computed aggregate for one account
// over a date range. direction is optional; when set it restricts the
// summary to inflow or outflow.
func (c *Client) LoadAccountSummary(ctx context.Context, token string, accountID int64, startDate, endDate, direction string) (core.AccountSummary, error) {
	query := url.Values{}
	query.Set("accountId", strconv.FormatInt(accountID, 10))
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	if direction != "" {
		query.Set("type", direction)
	}

	var envelope struct {
		Data core.AccountSummary `json:"data"`
	}
	err := c.do(ctx, call{
		resource: "dashboard",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/dashboard/account-summary",
		token:    token,
		query:    query,
		fallback: "Failed to load account summary. Please try again.",
	}, &envelope)
	if err != nil {
		return core.AccountSummary{}, err
	}
	return envelope.Data, nil
}
