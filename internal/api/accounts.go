package api

import (
	"context"
	"fmt"
	"net/http"

	"fundboard/internal/core"
	"fundboard/internal/log"

	"golang.org/x/sync/errgroup"
)

func (c *Client) LoadAccounts(ctx context.Context, token string) ([]core.Account, error) {
	var envelope listEnvelope[core.Account]
	err := c.do(ctx, call{
		resource: "accounts",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/accounts",
		token:    token,
		fallback: "Failed to load accounts. Please try again.",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) CreateAccount(ctx context.Context, token string, form core.AccountForm) error {
	return c.do(ctx, call{
		resource: "accounts",
		action:   log.OpCreate,
		method:   http.MethodPost,
		path:     "/accounts",
		token:    token,
		body:     form,
		fallback: "Failed to save account.",
	}, nil)
}

func (c *Client) UpdateAccount(ctx context.Context, token string, id int64, form core.AccountForm) error {
	return c.do(ctx, call{
		resource: "accounts",
		action:   log.OpUpdate,
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/accounts/%d", id),
		token:    token,
		body:     form,
		fallback: "Failed to save account.",
	}, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{
		resource: "accounts",
		action:   log.OpDelete,
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/accounts/%d", id),
		token:    token,
		fallback: "Failed to delete account. Please try again.",
	}, nil)
}

// AccountRefs bundles the reference lists the account form needs. The screen
// owns its own copies; nothing is shared or cached across screens.
type AccountRefs struct {
	Banks      []core.Bank
	Currencies []core.Currency
	Categories []core.Category
}

// FetchAccountRefs loads banks, currencies and categories concurrently. The
// first failure cancels the remaining fetches.
func (c *Client) FetchAccountRefs(ctx context.Context, token string) (AccountRefs, error) {
	var refs AccountRefs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		banks, err := c.LoadBanks(gctx, token)
		refs.Banks = banks
		return err
	})
	g.Go(func() error {
		currencies, err := c.LoadCurrencies(gctx, token)
		refs.Currencies = currencies
		return err
	})
	g.Go(func() error {
		categories, err := c.LoadCategories(gctx, token)
		refs.Categories = categories
		return err
	})
	if err := g.Wait(); err != nil {
		return AccountRefs{}, err
	}
	return refs, nil
}
