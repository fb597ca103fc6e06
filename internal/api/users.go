package api

import (
	"context"
	"fmt"
	"net/http"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

func (c *Client) LoadUsers(ctx context.Context, token string) ([]core.User, error) {
	var envelope listEnvelope[core.User]
	err := c.do(ctx, call{
		resource: "users",
		action:   log.OpList,
		method:   http.MethodGet,
		path:     "/users",
		token:    token,
		fallback: "Failed to load users. Please try again.",
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, form core.UserForm) error {
	return c.do(ctx, call{
		resource: "users",
		action:   log.OpCreate,
		method:   http.MethodPost,
		path:     "/users",
		token:    token,
		body:     form,
		fallback: "Failed to save user.",
	}, nil)
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, form core.UserForm) error {
	// The password field is omitted from the payload when empty.
	return c.do(ctx, call{
		resource: "users",
		action:   log.OpUpdate,
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/users/%d", id),
		token:    token,
		body:     form,
		fallback: "Failed to save user.",
	}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, call{
		resource: "users",
		action:   log.OpDelete,
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/users/%d", id),
		token:    token,
		fallback: "Failed to delete user. Please try again.",
	}, nil)
}
