package api

import (
	"context"
	"fmt"
	"net/http"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

func (c *Client) LoadCategories(ctx context.Context, token string) ([]core.Category, error) {
	var envelope listEnvelope[core.Category]
	err := c.do(ctx, call{
		resource: "categories",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/categories",
		token:    token,
		fallback: "Failed to load categories. Please try again.",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, form core.CategoryForm) error {
	return c.do(ctx, call{
		resource: "categories",
		action:   log.OpCreate,
		method:   http.MethodPost,
		path:     "/categories",
		token:    token,
		body:     form,
		fallback: "Failed to save category.",
	}, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int64, form core.CategoryForm) error {
	return c.do(ctx, call{
		resource: "categories",
		action:   log.OpUpdate,
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/categories/%d", id),
		token:    token,
		body:     form,
		fallback: "Failed to save category.",
	}, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{
		resource: "categories",
		action:   log.OpDelete,
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/categories/%d", id),
		token:    token,
		fallback: "Failed to delete category. Please try again.",
	}, nil)
}
