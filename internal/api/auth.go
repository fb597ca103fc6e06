package api

import (
	"context"
	"net/http"

	"fundboard/internal/core"
	"fundboard/internal/log"
)

// LoginResult is the credential exchange outcome: an opaque bearer token and
// the profile it was issued for.
type LoginResult struct {
	Token string
	User  core.User
}

// Login exchanges credentials for a token and profile. There is no retry and
// no lockout; a rejected login just carries the backend's message.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	// Some deployments of the backend name the token field access_token.
	var resp struct {
		Token       string    `json:"token"`
		AccessToken string    `json:"access_token"`
		User        core.User `json:"user"`
	}
	err := c.do(ctx, call{
		resource: "auth",
		action:   log.OpLogin,
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     body,
		fallback: "Login failed",
	}, &resp)
	if err != nil {
		return LoginResult{}, err
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return LoginResult{}, &Error{Kind: KindDecode, Message: MsgInvalidResponse}
	}
	return LoginResult{Token: token, User: resp.User}, nil
}
